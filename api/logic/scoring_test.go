/* scoring_test.go
 * Contains unit tests for the scoring rules engine
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scorecast/api/shared"
)

func intp(n int) *int { return &n }

func testConfig() shared.ScoringConfig {
	return shared.ScoringConfig{
		Group: shared.RuleSet{ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2},
		Knockout: map[shared.Stage]shared.RuleSet{
			shared.StageR16: {ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2, KnockoutWinner: 1},
			shared.StageQF:  {ExactScoreBoth: 4, ExactScoreOne: 2, Result: 3, KnockoutWinner: 2},
		},
	}
}

func finishedGroupMatch(home, away int) shared.Match {
	return shared.Match{
		ID:         "m1",
		Stage:      shared.StageGroup,
		Group:      "A",
		KickoffUTC: time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC),
		Status:     shared.StatusFinished,
		Home:       shared.Team{Code: "BRA", Name: "Brazil"},
		Away:       shared.Team{Code: "ARG", Name: "Argentina"},
		Score:      &shared.Score{Home: home, Away: away},
	}
}

func pick(home, away int) *shared.Pick {
	return &shared.Pick{MatchID: "m1", UserID: "u1", HomeScore: intp(home), AwayScore: intp(away)}
}

// TestScorePick_ExactBoth tests full exact-score credit plus the result points
func TestScorePick_ExactBoth(t *testing.T) {
	pts := ScorePick(finishedGroupMatch(2, 1), pick(2, 1), testConfig())

	assert.Equal(t, Points{Exact: 3, Result: 2, Knockout: 0, Total: 5}, pts)
}

// TestScorePick_ExactOne tests single-side exact credit with correct outcome
func TestScorePick_ExactOne(t *testing.T) {
	pts := ScorePick(finishedGroupMatch(2, 1), pick(2, 0), testConfig())

	assert.Equal(t, Points{Exact: 1, Result: 2, Knockout: 0, Total: 3}, pts)
}

// TestScorePick_WrongOutcome tests that a fully wrong pick scores zero
func TestScorePick_WrongOutcome(t *testing.T) {
	pts := ScorePick(finishedGroupMatch(2, 1), pick(0, 2), testConfig())

	assert.Equal(t, Points{}, pts)
}

// TestScorePick_ResultOnly tests outcome credit without any exact score match
func TestScorePick_ResultOnly(t *testing.T) {
	pts := ScorePick(finishedGroupMatch(2, 1), pick(3, 0), testConfig())

	assert.Equal(t, Points{Exact: 0, Result: 2, Knockout: 0, Total: 2}, pts)
}

// TestScorePick_UnfinishedMatchScoresZero tests that non-finished matches never score
func TestScorePick_UnfinishedMatchScoresZero(t *testing.T) {
	for _, status := range []shared.MatchStatus{shared.StatusScheduled, shared.StatusInProgress} {
		match := finishedGroupMatch(2, 1)
		match.Status = status

		assert.Equal(t, Points{}, ScorePick(match, pick(2, 1), testConfig()))
	}
}

// TestScorePick_IncompletePickScoresZero tests that incomplete picks score zero on finished matches
func TestScorePick_IncompletePickScoresZero(t *testing.T) {
	match := finishedGroupMatch(2, 1)

	assert.Equal(t, Points{}, ScorePick(match, nil, testConfig()))
	assert.Equal(t, Points{}, ScorePick(match, &shared.Pick{MatchID: "m1", HomeScore: intp(2)}, testConfig()))
	assert.Equal(t, Points{}, ScorePick(match, &shared.Pick{MatchID: "m1", HomeScore: intp(-1), AwayScore: intp(1)}, testConfig()))
}

// TestScorePick_Idempotent tests that identical inputs always yield identical output
func TestScorePick_Idempotent(t *testing.T) {
	match := finishedGroupMatch(2, 1)
	p := pick(2, 1)
	cfg := testConfig()

	first := ScorePick(match, p, cfg)
	second := ScorePick(match, p, cfg)

	assert.Equal(t, first, second)
}

// TestScorePick_KnockoutBonusPens tests the knockout bonus on a penalty shootout
func TestScorePick_KnockoutBonusPens(t *testing.T) {
	match := finishedGroupMatch(1, 1)
	match.Stage = shared.StageR16
	match.Group = ""
	match.Winner = shared.SideHome
	match.DecidedBy = shared.DecidedPens

	tied := pick(1, 1)
	tied.Advances = shared.SideHome
	pts := ScorePick(match, tied, testConfig())
	// Exact both + correct draw outcome + knockout bonus.
	assert.Equal(t, Points{Exact: 3, Result: 2, Knockout: 1, Total: 6}, pts)

	wrongSide := pick(1, 1)
	wrongSide.Advances = shared.SideAway
	pts = ScorePick(match, wrongSide, testConfig())
	assert.Equal(t, Points{Exact: 3, Result: 2, Knockout: 0, Total: 5}, pts)

	// A tied knockout pick with no advancing side is incomplete.
	assert.Equal(t, Points{}, ScorePick(match, pick(1, 1), testConfig()))
}

// TestScorePick_KnockoutBonusET tests the bonus on extra-time wins with a decisive pick
func TestScorePick_KnockoutBonusET(t *testing.T) {
	match := finishedGroupMatch(2, 1)
	match.Stage = shared.StageQF
	match.Group = ""
	match.Winner = shared.SideHome
	match.DecidedBy = shared.DecidedET

	pts := ScorePick(match, pick(2, 1), testConfig())

	assert.Equal(t, Points{Exact: 4, Result: 3, Knockout: 2, Total: 9}, pts)
}

// TestScorePick_RegulationKnockoutNoBonus tests that regulation knockout wins never award the bonus
func TestScorePick_RegulationKnockoutNoBonus(t *testing.T) {
	match := finishedGroupMatch(2, 1)
	match.Stage = shared.StageR16
	match.Group = ""
	match.Winner = shared.SideHome
	match.DecidedBy = shared.DecidedRegular

	pts := ScorePick(match, pick(2, 1), testConfig())

	assert.Equal(t, 0, pts.Knockout)
	assert.Equal(t, Points{Exact: 3, Result: 2, Knockout: 0, Total: 5}, pts)
}

// TestScorePick_MissingStageRules tests that an unconfigured stage scores zero rather than erroring
func TestScorePick_MissingStageRules(t *testing.T) {
	match := finishedGroupMatch(2, 1)
	match.Stage = shared.StageFinal
	match.Group = ""

	assert.Equal(t, Points{}, ScorePick(match, pick(2, 1), testConfig()))
}
