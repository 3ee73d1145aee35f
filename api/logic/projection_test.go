/* projection_test.go
 * Contains unit tests for the what-if projection simulator
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scorecast/api/shared"
)

func scheduledMatch(id string, stage shared.Stage) shared.Match {
	return shared.Match{
		ID:         id,
		Stage:      stage,
		KickoffUTC: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		Status:     shared.StatusScheduled,
		Home:       shared.Team{Code: "BRA", Name: "Brazil"},
		Away:       shared.Team{Code: "ARG", Name: "Argentina"},
	}
}

func rankedEntries() []shared.LeaderboardEntry {
	return []shared.LeaderboardEntry{
		{Member: shared.Member{ID: "alice"}, TotalPoints: 10},
		{Member: shared.Member{ID: "bob"}, TotalPoints: 8},
	}
}

// TestProject_EmptyOutcomes tests that no simulation leaves every rank and total unchanged
func TestProject_EmptyOutcomes(t *testing.T) {
	rows, rejected := Project(rankedEntries(), []shared.Match{scheduledMatch("m1", shared.StageGroup)}, nil, testConfig(), nil)

	assert.Empty(t, rejected)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, row.CurrentRank, row.ProjectedRank)
		assert.Equal(t, row.CurrentPoints, row.ProjectedPoints)
		assert.Equal(t, 0, row.ProjectedDelta)
	}
}

// TestProject_OverlayReordersRanks tests an overlay that flips the top two members
func TestProject_OverlayReordersRanks(t *testing.T) {
	matches := []shared.Match{scheduledMatch("m1", shared.StageGroup)}
	picks := []shared.Pick{
		{MatchID: "m1", UserID: "bob", HomeScore: intp(2), AwayScore: intp(1)},
		{MatchID: "m1", UserID: "alice", HomeScore: intp(0), AwayScore: intp(2)},
	}
	outcomes := map[string]Hypothetical{"m1": {HomeScore: 2, AwayScore: 1}}

	rows, rejected := Project(rankedEntries(), matches, picks, testConfig(), outcomes)

	assert.Empty(t, rejected)
	// bob gains 5 (exact both + result) and overtakes alice, who gains nothing.
	assert.Equal(t, "bob", rows[0].Member.ID)
	assert.Equal(t, 13, rows[0].ProjectedPoints)
	assert.Equal(t, 5, rows[0].ProjectedDelta)
	assert.Equal(t, 2, rows[0].CurrentRank)
	assert.Equal(t, 1, rows[0].ProjectedRank)

	assert.Equal(t, "alice", rows[1].Member.ID)
	assert.Equal(t, 10, rows[1].ProjectedPoints)
	assert.Equal(t, 1, rows[1].CurrentRank)
	assert.Equal(t, 2, rows[1].ProjectedRank)
}

// TestProject_TiedKnockoutOutcomeArmsBonus tests that a simulated shootout triggers the knockout bonus
func TestProject_TiedKnockoutOutcomeArmsBonus(t *testing.T) {
	matches := []shared.Match{scheduledMatch("ko", shared.StageR16)}
	picks := []shared.Pick{
		{MatchID: "ko", UserID: "alice", HomeScore: intp(1), AwayScore: intp(1), Advances: shared.SideHome},
	}
	outcomes := map[string]Hypothetical{"ko": {HomeScore: 1, AwayScore: 1, Advances: shared.SideHome}}

	rows, rejected := Project(rankedEntries(), matches, picks, testConfig(), outcomes)

	assert.Empty(t, rejected)
	// Exact both (3) + draw result (2) + knockout bonus (1).
	assert.Equal(t, 6, rows[0].ProjectedDelta)
	assert.Equal(t, "alice", rows[0].Member.ID)
}

// TestProject_RejectsMalformedOutcomes tests rejected-input reporting without aborting the rest
func TestProject_RejectsMalformedOutcomes(t *testing.T) {
	matches := []shared.Match{
		scheduledMatch("bad", shared.StageGroup),
		scheduledMatch("tie", shared.StageR16),
		scheduledMatch("ok", shared.StageGroup),
	}
	picks := []shared.Pick{
		{MatchID: "ok", UserID: "alice", HomeScore: intp(1), AwayScore: intp(0)},
	}
	outcomes := map[string]Hypothetical{
		"bad": {HomeScore: -1, AwayScore: 0},
		"tie": {HomeScore: 0, AwayScore: 0}, // knockout tie with no advancing side
		"ok":  {HomeScore: 1, AwayScore: 0},
	}

	rows, rejected := Project(rankedEntries(), matches, picks, testConfig(), outcomes)

	assert.Equal(t, []string{"bad", "tie"}, rejected)
	assert.Equal(t, 5, rows[0].ProjectedDelta)
	assert.Equal(t, "alice", rows[0].Member.ID)
}

// TestProject_IgnoresFinishedMatches tests that finished matches cannot be double counted
func TestProject_IgnoresFinishedMatches(t *testing.T) {
	done := scheduledMatch("done", shared.StageGroup)
	done.Status = shared.StatusFinished
	done.Score = &shared.Score{Home: 2, Away: 1}
	picks := []shared.Pick{
		{MatchID: "done", UserID: "alice", HomeScore: intp(2), AwayScore: intp(1)},
	}
	outcomes := map[string]Hypothetical{"done": {HomeScore: 2, AwayScore: 1}}

	rows, rejected := Project(rankedEntries(), []shared.Match{done}, picks, testConfig(), outcomes)

	assert.Empty(t, rejected)
	assert.Equal(t, 0, rows[0].ProjectedDelta)
}

// TestProject_DoesNotMutateInputs tests the pure-function guarantee
func TestProject_DoesNotMutateInputs(t *testing.T) {
	match := scheduledMatch("m1", shared.StageGroup)
	matches := []shared.Match{match}
	entries := rankedEntries()
	picks := []shared.Pick{
		{MatchID: "m1", UserID: "alice", HomeScore: intp(1), AwayScore: intp(0)},
	}

	Project(entries, matches, picks, testConfig(), map[string]Hypothetical{"m1": {HomeScore: 1, AwayScore: 0}})

	assert.Equal(t, shared.StatusScheduled, matches[0].Status)
	assert.Nil(t, matches[0].Score)
	assert.Equal(t, 10, entries[0].TotalPoints)
	assert.Equal(t, 8, entries[1].TotalPoints)
}
