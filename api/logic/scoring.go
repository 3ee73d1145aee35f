/* scoring.go
 * Contains the scoring rules engine. One match, one pick and the scoring config go in, an
 * itemized point breakdown comes out. The what-if simulator and the live leaderboard both
 * call ScorePick so real and hypothetical results always follow the same rules
 */

package logic

import (
	"scorecast/api/shared"
)

// Points is the itemized result of scoring one pick against one match.
type Points struct {
	Exact    int `json:"exactPoints"`
	Result   int `json:"resultPoints"`
	Knockout int `json:"knockoutPoints"`
	Total    int `json:"total"`
}

// ScorePick scores a single pick against a finished match. Unfinished matches
// and incomplete picks score zero across the board; that is incomplete input,
// not an error.
//
// The three categories are independent:
//   - exact: ExactScoreBoth when both predicted scores match, ExactScoreOne
//     when exactly one side matches, else zero. No further partial credit.
//   - result: Result when the predicted win/draw/loss (relative to the home
//     team) matches the final score's outcome.
//   - knockout: KnockoutWinner when a knockout match went to extra time or
//     penalties and the pick's tie-break-aware winner matches the recorded
//     winner. A knockout match settled in regulation never awards this bonus;
//     that outcome is already captured by the result category.
func ScorePick(match shared.Match, pick *shared.Pick, cfg shared.ScoringConfig) Points {
	if match.Status != shared.StatusFinished || match.Score == nil {
		return Points{}
	}
	if !IsPickComplete(match, pick) {
		return Points{}
	}
	rules, ok := ruleSetFor(cfg, match.Stage)
	if !ok {
		// No rules configured for this stage; treated as data absence.
		return Points{}
	}

	var pts Points

	homeExact := *pick.HomeScore == match.Score.Home
	awayExact := *pick.AwayScore == match.Score.Away
	switch {
	case homeExact && awayExact:
		pts.Exact = rules.ExactScoreBoth
	case homeExact || awayExact:
		pts.Exact = rules.ExactScoreOne
	}

	predicted, _ := PickOutcome(pick)
	if predicted == matchOutcome(match) {
		pts.Result = rules.Result
	}

	if match.Stage.IsKnockout() && decidedBeyondRegulation(match) && match.Winner != "" {
		if winner, ok := PredictedWinner(pick); ok && winner == match.Winner {
			pts.Knockout = rules.KnockoutWinner
		}
	}

	pts.Total = pts.Exact + pts.Result + pts.Knockout
	return pts
}

// ruleSetFor selects the stage's rule set: the group rules for the group
// stage, otherwise the per-stage knockout entry.
func ruleSetFor(cfg shared.ScoringConfig, stage shared.Stage) (shared.RuleSet, bool) {
	if stage == shared.StageGroup {
		return cfg.Group, true
	}
	rules, ok := cfg.Knockout[stage]
	return rules, ok
}

// matchOutcome derives the actual win/draw/loss from the final score.
func matchOutcome(match shared.Match) shared.Outcome {
	switch {
	case match.Score.Home > match.Score.Away:
		return shared.OutcomeWin
	case match.Score.Home < match.Score.Away:
		return shared.OutcomeLoss
	default:
		return shared.OutcomeDraw
	}
}

func decidedBeyondRegulation(match shared.Match) bool {
	return match.DecidedBy == shared.DecidedET || match.DecidedBy == shared.DecidedPens
}
