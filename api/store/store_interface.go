/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"scorecast/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	FetchMatches() ([]shared.Match, string, error)
	StoreMatches(matches []shared.Match) (string, error)

	StorePick(pick shared.Pick) error
	FetchPicks() ([]shared.Pick, string, error)
	FetchUserPicks(userID string) (map[string]shared.Pick, error)

	FetchScoring() (shared.ScoringConfig, string, error)
	StoreScoring(cfg shared.ScoringConfig) error

	FetchMembers() ([]shared.Member, string, error)
	StoreMembers(members []shared.Member) error

	FetchLeaderboard() ([]shared.LeaderboardEntry, string, error)
	StoreLeaderboard(entries []shared.LeaderboardEntry) (string, error)

	GetBracketPrediction(userID string) (*shared.BracketPrediction, error)
	FetchBracketPredictions() ([]shared.BracketPrediction, string, error)
	StoreBracketPrediction(pred shared.BracketPrediction) error

	FetchBracketPoints() (map[string]int, error)
	StoreBracketPoints(points map[string]int) error

	LoadRankSnapshot() (*shared.RankSnapshot, error)
	SaveRankSnapshot(snapshot shared.RankSnapshot) error

	// Getter methods for accessing fields
	GetMode() shared.Mode
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetMode returns the operating mode the store was constructed with
func (s *Store) GetMode() shared.Mode {
	return s.Mode
}

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
