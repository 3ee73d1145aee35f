/* swing_test.go
 * Contains unit tests for the swing/consensus analyzer
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scorecast/api/shared"
)

func openMatch(id string, kickoff time.Time) shared.Match {
	return shared.Match{
		ID:         id,
		Stage:      shared.StageGroup,
		KickoffUTC: kickoff,
		Status:     shared.StatusScheduled,
		Home:       shared.Team{Code: "BRA", Name: "Brazil"},
		Away:       shared.Team{Code: "ARG", Name: "Argentina"},
	}
}

func sidePick(matchID, userID string, home, away int) shared.Pick {
	return shared.Pick{MatchID: matchID, UserID: userID, HomeScore: intp(home), AwayScore: intp(away)}
}

// TestSwingReport_ZeroPicks tests that an unvoted match scores zero despite maximal disagreement
func TestSwingReport_ZeroPicks(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	report := SwingReport([]shared.Match{openMatch("m1", now.Add(24*time.Hour))}, nil, now)

	assert.Len(t, report, 1)
	assert.Equal(t, 0.0, report[0].SampleWeight)
	assert.Equal(t, 1.0, report[0].Disagreement)
	assert.Equal(t, 0.0, report[0].SwingScore)
	assert.Nil(t, report[0].ConsensusPct)
	assert.Equal(t, shared.SideHome, report[0].Consensus)
}

// TestSwingReport_SplitVote tests the formula on an evenly split match
func TestSwingReport_SplitVote(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	matches := []shared.Match{openMatch("m1", now.Add(24 * time.Hour))}
	picks := []shared.Pick{
		sidePick("m1", "u1", 2, 0),
		sidePick("m1", "u2", 0, 2),
		sidePick("m1", "u3", 1, 0),
		sidePick("m1", "u4", 0, 1),
		// Draw and incomplete picks stay out of the tally.
		sidePick("m1", "u5", 1, 1),
		{MatchID: "m1", UserID: "u6"},
	}

	report := SwingReport(matches, picks, now)

	assert.Len(t, report, 1)
	opp := report[0]
	assert.Equal(t, 2, opp.HomeVotes)
	assert.Equal(t, 2, opp.AwayVotes)
	assert.Equal(t, 4, opp.TotalVotes)
	assert.Equal(t, 1.0, opp.Disagreement)
	assert.Equal(t, 0.5, opp.SampleWeight) // 4 / (4 + 4)
	assert.Equal(t, 0.5, opp.SwingScore)
	assert.Equal(t, shared.SideHome, opp.Consensus) // home wins ties
	if assert.NotNil(t, opp.ConsensusPct) {
		assert.Equal(t, 50, *opp.ConsensusPct)
	}
}

// TestSwingReport_LopsidedVote tests a one-sided consensus
func TestSwingReport_LopsidedVote(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	matches := []shared.Match{openMatch("m1", now.Add(24 * time.Hour))}
	picks := []shared.Pick{
		sidePick("m1", "u1", 0, 1),
		sidePick("m1", "u2", 0, 2),
		sidePick("m1", "u3", 1, 2),
	}

	report := SwingReport(matches, picks, now)

	opp := report[0]
	assert.Equal(t, shared.SideAway, opp.Consensus)
	assert.Equal(t, 100, *opp.ConsensusPct)
	assert.Equal(t, 0.0, opp.Disagreement)
	assert.Equal(t, 0.0, opp.SwingScore)
}

// TestSwingReport_ExcludesLockedAndFinished tests the open-match filter
func TestSwingReport_ExcludesLockedAndFinished(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	open := openMatch("open", now.Add(2*time.Hour))
	locked := openMatch("locked", now.Add(10*time.Minute))
	finished := openMatch("finished", now.Add(24*time.Hour))
	finished.Status = shared.StatusFinished

	report := SwingReport([]shared.Match{locked, finished, open}, nil, now)

	assert.Len(t, report, 1)
	assert.Equal(t, "open", report[0].Match.ID)
}

// TestSwingReport_Ordering tests swing-score descending with kickoff ascending tie break
func TestSwingReport_Ordering(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	early := openMatch("early", now.Add(24*time.Hour))
	late := openMatch("late", now.Add(48*time.Hour))
	contested := openMatch("contested", now.Add(72*time.Hour))

	picks := []shared.Pick{
		// contested: 2v2 split, swing 0.5
		sidePick("contested", "u1", 1, 0), sidePick("contested", "u2", 0, 1),
		sidePick("contested", "u3", 2, 0), sidePick("contested", "u4", 0, 2),
		// early and late: identical 1v1 splits, swing 1 * 2/6
		sidePick("early", "u1", 1, 0), sidePick("early", "u2", 0, 1),
		sidePick("late", "u1", 1, 0), sidePick("late", "u2", 0, 1),
	}

	report := SwingReport([]shared.Match{late, contested, early}, picks, now)

	assert.Equal(t, "contested", report[0].Match.ID)
	assert.Equal(t, "early", report[1].Match.ID)
	assert.Equal(t, "late", report[2].Match.ID)
	assert.Equal(t, 0.3333, report[1].SwingScore) // rounded to 4 places
}

// TestSwingReport_TiedKnockoutPickCountsAdvances tests that tie-break picks vote for the advancing side
func TestSwingReport_TiedKnockoutPickCountsAdvances(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	match := openMatch("ko", now.Add(24*time.Hour))
	match.Stage = shared.StageR16
	tied := shared.Pick{MatchID: "ko", UserID: "u1", HomeScore: intp(1), AwayScore: intp(1), Advances: shared.SideAway}

	report := SwingReport([]shared.Match{match}, []shared.Pick{tied}, now)

	assert.Equal(t, 1, report[0].AwayVotes)
	assert.Equal(t, 0, report[0].HomeVotes)
}
