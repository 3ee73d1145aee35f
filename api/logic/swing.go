/* swing.go
 * Contains the swing/consensus analyzer: ranking open matches by how much member disagreement,
 * discounted by sample size, makes them worth a second look before they lock
 */

package logic

import (
	"math"
	"sort"
	"time"

	"scorecast/api/shared"
)

// sampleWeightPrior dampens the sample weight so a single-vote "tie" does not
// score as maximally swingy.
const sampleWeightPrior = 4

// SwingOpportunity is one open match's consensus tally and swing score.
type SwingOpportunity struct {
	Match        shared.Match `json:"match"`
	HomeVotes    int          `json:"homeVotes"`
	AwayVotes    int          `json:"awayVotes"`
	TotalVotes   int          `json:"totalVotes"`
	Disagreement float64      `json:"disagreement"`
	SampleWeight float64      `json:"sampleWeight"`
	SwingScore   float64      `json:"swingScore"`
	Consensus    shared.Side  `json:"consensus"`
	ConsensusPct *int         `json:"consensusPct,omitempty"`
}

// SwingReport tallies every member's predicted winner for each unresolved,
// unlocked match and ranks the matches by swing score (descending), ties
// broken by earlier kickoff. Draw predictions and incomplete picks are
// excluded from the tally.
func SwingReport(matches []shared.Match, picks []shared.Pick, now time.Time) []SwingOpportunity {
	picksByMatch := make(map[string][]shared.Pick)
	for _, p := range picks {
		picksByMatch[p.MatchID] = append(picksByMatch[p.MatchID], p)
	}

	var report []SwingOpportunity
	for _, m := range matches {
		if m.Status == shared.StatusFinished || IsMatchLocked(m.KickoffUTC, now) {
			continue
		}
		report = append(report, analyzeMatch(m, picksByMatch[m.ID]))
	}

	sort.SliceStable(report, func(i, j int) bool {
		if report[i].SwingScore != report[j].SwingScore {
			return report[i].SwingScore > report[j].SwingScore
		}
		return report[i].Match.KickoffUTC.Before(report[j].Match.KickoffUTC)
	})
	return report
}

func analyzeMatch(match shared.Match, picks []shared.Pick) SwingOpportunity {
	opp := SwingOpportunity{Match: match, Consensus: shared.SideHome}
	for i := range picks {
		winner, ok := PredictedWinner(&picks[i])
		if !ok {
			continue
		}
		switch winner {
		case shared.SideHome:
			opp.HomeVotes++
		case shared.SideAway:
			opp.AwayVotes++
		}
	}
	opp.TotalVotes = opp.HomeVotes + opp.AwayVotes

	// Margin defaults to 1 (total agreement) when nobody has voted, but the
	// zero sample weight keeps unvoted matches at a zero swing score.
	margin := 1.0
	if opp.TotalVotes > 0 {
		margin = math.Abs(float64(opp.HomeVotes-opp.AwayVotes)) / float64(opp.TotalVotes)
		opp.SampleWeight = float64(opp.TotalVotes) / float64(opp.TotalVotes+sampleWeightPrior)
	}
	opp.Disagreement = math.Max(0, 1-margin)
	opp.SwingScore = round4(opp.Disagreement * opp.SampleWeight)

	// Home wins consensus ties.
	top := opp.HomeVotes
	if opp.AwayVotes > opp.HomeVotes {
		opp.Consensus = shared.SideAway
		top = opp.AwayVotes
	}
	if opp.TotalVotes > 0 {
		pct := int(math.Round(float64(top) / float64(opp.TotalVotes) * 100))
		opp.ConsensusPct = &pct
	}
	return opp
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
