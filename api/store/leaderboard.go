/* leaderboard.go
 * Contains the methods for interacting with the leaderboards collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"scorecast/api/shared"
)

// FetchLeaderboard returns the stored leaderboard entries and their
// lastUpdated stamp. No stored leaderboard yet is data absence, not failure.
func (s *Store) FetchLeaderboard() ([]shared.LeaderboardEntry, string, error) {
	var snap LeaderboardSnapshot
	err := s.Collections.Leaderboards.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}
	return snap.Entries, snap.LastUpdated, nil
}

// StoreLeaderboard replaces the computed leaderboard for this mode and returns
// the lastUpdated stamp written.
func (s *Store) StoreLeaderboard(entries []shared.LeaderboardEntry) (string, error) {
	snap := LeaderboardSnapshot{Mode: s.Mode, LastUpdated: nowStamp(), Entries: entries}

	// Attempt to find an existing document
	var existing LeaderboardSnapshot
	err := s.Collections.Leaderboards.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return "", fmt.Errorf("lookup for existing leaderboard failed: %w", err)
	}

	if notFound {
		if _, err := s.Collections.Leaderboards.InsertOne(context.TODO(), snap); err != nil {
			return "", fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return snap.LastUpdated, nil
	}
	if _, err := s.Collections.Leaderboards.UpdateOne(context.TODO(), bson.M{"mode": s.Mode}, bson.D{{Key: "$set", Value: snap}}); err != nil {
		return "", fmt.Errorf("leaderboard update failed: %w", err)
	}
	return snap.LastUpdated, nil
}
