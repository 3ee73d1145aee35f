/* models.go
 * This file contains the wire types returned by the results feed, and their mapping onto the
 * domain model. Feed rows are kept separate from shared.Match so feed format drift stays
 * contained in this package
 */

package external

import (
	"fmt"
	"time"

	"scorecast/api/shared"
)

// feedMatch is one fixture row as the results feed serves it.
type feedMatch struct {
	ID         string `json:"id"`
	Stage      string `json:"stage"`
	Group      string `json:"group,omitempty"`
	KickoffUTC string `json:"kickoffUtc"`
	Status     string `json:"status"`
	HomeCode   string `json:"homeCode"`
	HomeName   string `json:"homeName"`
	AwayCode   string `json:"awayCode"`
	AwayName   string `json:"awayName"`
	HomeGoals  *int   `json:"homeGoals,omitempty"`
	AwayGoals  *int   `json:"awayGoals,omitempty"`
	Winner     string `json:"winner,omitempty"`
	DecidedBy  string `json:"decidedBy,omitempty"`
}

// toMatch maps a feed row onto the domain model. Score, winner and decidedBy
// are only carried over for finished fixtures; the feed sometimes includes
// provisional goals on in-progress rows and those must not leak into scoring.
func (f feedMatch) toMatch() (shared.Match, error) {
	kickoff, err := time.Parse(time.RFC3339, f.KickoffUTC)
	if err != nil {
		return shared.Match{}, fmt.Errorf("match %s has unparseable kickoff %q: %w", f.ID, f.KickoffUTC, err)
	}

	m := shared.Match{
		ID:         f.ID,
		Stage:      shared.Stage(f.Stage),
		Group:      f.Group,
		KickoffUTC: kickoff.UTC(),
		Status:     shared.MatchStatus(f.Status),
		Home:       shared.Team{Code: f.HomeCode, Name: f.HomeName},
		Away:       shared.Team{Code: f.AwayCode, Name: f.AwayName},
	}

	if m.Status == shared.StatusFinished && f.HomeGoals != nil && f.AwayGoals != nil {
		m.Score = &shared.Score{Home: *f.HomeGoals, Away: *f.AwayGoals}
		m.Winner = shared.Side(f.Winner)
		m.DecidedBy = shared.DecidedBy(f.DecidedBy)
		if m.DecidedBy == "" {
			m.DecidedBy = shared.DecidedRegular
		}
	}
	return m, nil
}
