/* models.go
 * This file contains the document structs persisted by this package. Snapshot documents embed
 * their collection's data plus the ISO-8601 lastUpdated stamp that consumers use for cache
 * invalidation and rank-movement baselines
 */

package store

import (
	"scorecast/api/shared"
)

// MatchSnapshot holds the full fixture list for one mode.
type MatchSnapshot struct {
	Mode        shared.Mode    `bson:"mode"`
	LastUpdated string         `bson:"lastUpdated"`
	Matches     []shared.Match `bson:"matches"`
}

// ScoringSnapshot holds the scoring configuration for one mode.
type ScoringSnapshot struct {
	Mode        shared.Mode          `bson:"mode"`
	LastUpdated string               `bson:"lastUpdated"`
	Config      shared.ScoringConfig `bson:"config"`
}

// MemberSnapshot holds the league roster for one mode, in display order. The
// leaderboard's documented tie behaviour (stable on input order) makes this
// ordering part of the data.
type MemberSnapshot struct {
	Mode        shared.Mode     `bson:"mode"`
	LastUpdated string          `bson:"lastUpdated"`
	Members     []shared.Member `bson:"members"`
}

// LeaderboardSnapshot holds the computed leaderboard for one mode.
type LeaderboardSnapshot struct {
	Mode        shared.Mode               `bson:"mode"`
	LastUpdated string                    `bson:"lastUpdated"`
	Entries     []shared.LeaderboardEntry `bson:"entries"`
}

// BracketPointsSnapshot holds per-member bracket points keyed by identity
// key. These are graded by the bracket scorer outside this app and only
// consumed here when building the leaderboard.
type BracketPointsSnapshot struct {
	Mode        shared.Mode    `bson:"mode"`
	LastUpdated string         `bson:"lastUpdated"`
	Points      map[string]int `bson:"points"`
}

// pickDoc wraps a Pick with the mode it belongs to. Picks are stored one
// document per (mode, user, match) rather than as a snapshot because members
// update them individually.
type pickDoc struct {
	Mode shared.Mode `bson:"mode"`
	Pick shared.Pick `bson:",inline"`
}

// bracketDoc wraps a BracketPrediction with its mode.
type bracketDoc struct {
	Mode       shared.Mode              `bson:"mode"`
	Prediction shared.BracketPrediction `bson:",inline"`
}

// rankSnapshotDoc wraps the persisted rank baseline with its mode.
type rankSnapshotDoc struct {
	Mode     shared.Mode         `bson:"mode"`
	Snapshot shared.RankSnapshot `bson:"snapshot"`
}
