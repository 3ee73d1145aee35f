/* pick.go
 * Contains the pick validation primitives: completeness checking and the outcome/winner a
 * pick implies. These are the building blocks for scoring and the swing analyzer
 */

package logic

import (
	"scorecast/api/shared"
)

// IsPickComplete reports whether a pick is resolvable for the given match.
// A pick is incomplete if it is nil or either score is missing or negative.
// For knockout matches a level predicted score additionally needs an advancing
// side, otherwise the pick cannot be settled.
func IsPickComplete(match shared.Match, pick *shared.Pick) bool {
	if pick == nil || pick.HomeScore == nil || pick.AwayScore == nil {
		return false
	}
	if *pick.HomeScore < 0 || *pick.AwayScore < 0 {
		return false
	}
	if match.Stage.IsKnockout() && *pick.HomeScore == *pick.AwayScore {
		return pick.Advances == shared.SideHome || pick.Advances == shared.SideAway
	}
	return true
}

// PickOutcome derives the predicted result relative to the home team. The
// second return value is false when either score is missing.
func PickOutcome(pick *shared.Pick) (shared.Outcome, bool) {
	if pick == nil || pick.HomeScore == nil || pick.AwayScore == nil {
		return "", false
	}
	switch {
	case *pick.HomeScore > *pick.AwayScore:
		return shared.OutcomeWin, true
	case *pick.HomeScore < *pick.AwayScore:
		return shared.OutcomeLoss, true
	default:
		return shared.OutcomeDraw, true
	}
}

// PredictedWinner derives which side the pick expects to win (or advance).
// When the predicted scores differ, the higher scoring side wins; when level,
// the tie-break selection decides. The second return value is false when no
// winner can be derived (missing scores, or a level score with no tie-break).
func PredictedWinner(pick *shared.Pick) (shared.Side, bool) {
	if pick == nil || pick.HomeScore == nil || pick.AwayScore == nil {
		return "", false
	}
	switch {
	case *pick.HomeScore > *pick.AwayScore:
		return shared.SideHome, true
	case *pick.HomeScore < *pick.AwayScore:
		return shared.SideAway, true
	case pick.Advances == shared.SideHome || pick.Advances == shared.SideAway:
		return pick.Advances, true
	default:
		return "", false
	}
}
