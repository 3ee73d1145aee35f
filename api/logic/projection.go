/* projection.go
 * Contains the what-if projection simulator. Hypothetical outcomes for unfinished matches are
 * turned into synthetic finished matches, rescored with the same rules engine the live
 * leaderboard uses, and overlaid additively on the real totals. Nothing real is mutated
 */

package logic

import (
	"sort"

	"scorecast/api/shared"
)

// Hypothetical is one simulated outcome for an unfinished match. Advances is
// required when the score is level on a knockout match.
type Hypothetical struct {
	HomeScore int         `json:"homeScore"`
	AwayScore int         `json:"awayScore"`
	Advances  shared.Side `json:"advances,omitempty"`
}

// ProjectedRow is one member's position under the simulated outcomes.
type ProjectedRow struct {
	Member          shared.Member `json:"member"`
	CurrentRank     int           `json:"currentRank"`
	CurrentPoints   int           `json:"currentPoints"`
	ProjectedRank   int           `json:"projectedRank"`
	ProjectedPoints int           `json:"projectedPoints"`
	ProjectedDelta  int           `json:"projectedDelta"`
}

// Project re-runs the scoring engine under hypothetical outcomes and returns
// the projected ranking plus the IDs of rejected hypotheticals.
//
// entries must be the real, already-ranked leaderboard; a member's current
// rank is their position in it. Simulated matches are currently unfinished and
// so contributed zero real points, which is what makes the overlay additive:
// each member's projected total is their real total plus the points their
// picks would earn on the simulated matches alone. Hypotheticals are rejected
// (skipped, ID reported) when a score is negative or a level knockout score
// carries no advancing side; hypotheticals for already-finished matches are
// ignored since their points are in the real totals already.
func Project(entries []shared.LeaderboardEntry, matches []shared.Match, picks []shared.Pick, cfg shared.ScoringConfig, outcomes map[string]Hypothetical) ([]ProjectedRow, []string) {
	matchByID := make(map[string]shared.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}

	var rejected []string
	simulated := make([]shared.Match, 0, len(outcomes))
	for matchID, outcome := range outcomes {
		match, ok := matchByID[matchID]
		if !ok || match.Status == shared.StatusFinished {
			continue
		}
		sim, ok := synthesizeFinished(match, outcome)
		if !ok {
			rejected = append(rejected, matchID)
			continue
		}
		simulated = append(simulated, sim)
	}
	sort.Strings(rejected)

	picksByUser := make(map[string]map[string]*shared.Pick)
	for i := range picks {
		p := &picks[i]
		if picksByUser[p.UserID] == nil {
			picksByUser[p.UserID] = make(map[string]*shared.Pick)
		}
		picksByUser[p.UserID][p.MatchID] = p
	}

	rows := make([]ProjectedRow, 0, len(entries))
	for i, entry := range entries {
		key := IdentityKey(entry.Member)
		delta := 0
		for _, sim := range simulated {
			delta += ScorePick(sim, picksByUser[key][sim.ID], cfg).Total
		}
		rows = append(rows, ProjectedRow{
			Member:          entry.Member,
			CurrentRank:     i + 1,
			CurrentPoints:   entry.TotalPoints,
			ProjectedPoints: entry.TotalPoints + delta,
			ProjectedDelta:  delta,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProjectedPoints > rows[j].ProjectedPoints
	})
	for i := range rows {
		rows[i].ProjectedRank = i + 1
	}
	return rows, rejected
}

// synthesizeFinished builds the finished match record a hypothetical outcome
// implies. A decisive score wins in regulation; a level score advances the
// supplied side via penalties, which is what arms the knockout bonus rule for
// non-group matches.
func synthesizeFinished(match shared.Match, outcome Hypothetical) (shared.Match, bool) {
	if outcome.HomeScore < 0 || outcome.AwayScore < 0 {
		return shared.Match{}, false
	}
	match.Status = shared.StatusFinished
	match.Score = &shared.Score{Home: outcome.HomeScore, Away: outcome.AwayScore}
	switch {
	case outcome.HomeScore > outcome.AwayScore:
		match.Winner = shared.SideHome
		match.DecidedBy = shared.DecidedRegular
	case outcome.HomeScore < outcome.AwayScore:
		match.Winner = shared.SideAway
		match.DecidedBy = shared.DecidedRegular
	case outcome.Advances == shared.SideHome || outcome.Advances == shared.SideAway:
		match.Winner = outcome.Advances
		match.DecidedBy = shared.DecidedPens
	case match.Stage.IsKnockout():
		// A drawn knockout score with no advancing side cannot be settled.
		return shared.Match{}, false
	default:
		// Group-stage draw: no winner to record.
		match.Winner = ""
		match.DecidedBy = shared.DecidedRegular
	}
	return match, true
}
