/* models.go
 * This file contains the view models returned to api consumers (bot and web). They are
 * read-only from the caller's perspective; nothing in here feeds back into scoring
 */

package api

import (
	"scorecast/api/shared"
)

// RankedEntry is one leaderboard row with its 1-based rank and movement since
// the previous ranking baseline (positive = moved up).
type RankedEntry struct {
	Rank     int                     `json:"rank"`
	Movement int                     `json:"movement"`
	Entry    shared.LeaderboardEntry `json:"entry"`
}

// LeaderboardView is the ranked leaderboard plus the stamp it was computed at.
type LeaderboardView struct {
	LastUpdated string        `json:"lastUpdated"`
	Entries     []RankedEntry `json:"entries"`
}

// MatchdayGroup is one calendar day's fixtures, used for display grouping.
type MatchdayGroup struct {
	DateKey string         `json:"dateKey"`
	Matches []shared.Match `json:"matches"`
}
