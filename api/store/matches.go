/* matches.go
 * Contains the methods for interacting with the matches collection
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

// FetchMatches returns the stored fixture list and its lastUpdated stamp.
// An absent snapshot is data absence, not failure: it returns an empty slice.
func (s *Store) FetchMatches() ([]shared.Match, string, error) {
	var snap MatchSnapshot
	err := s.Collections.Matches.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to fetch matches from database: %w", err)
	}
	return snap.Matches, snap.LastUpdated, nil
}

// StoreMatches replaces the fixture snapshot for this mode and stamps it with
// the current time. Returns the stamp written.
func (s *Store) StoreMatches(matches []shared.Match) (string, error) {
	snap := MatchSnapshot{
		Mode:        s.Mode,
		LastUpdated: nowStamp(),
		Matches:     matches,
	}

	// Attempt to find an existing document
	var existing MatchSnapshot
	err := s.Collections.Matches.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return "", fmt.Errorf("lookup for existing match snapshot failed: %w", err)
	}

	if notFound {
		if _, err := s.Collections.Matches.InsertOne(context.TODO(), snap); err != nil {
			return "", fmt.Errorf("match snapshot insert failed: %w", err)
		}
		return snap.LastUpdated, nil
	}

	update := bson.D{{Key: "$set", Value: snap}}
	if _, err := s.Collections.Matches.UpdateOne(context.TODO(), bson.M{"mode": s.Mode}, update); err != nil {
		return "", fmt.Errorf("match snapshot update failed: %w", err)
	}
	return snap.LastUpdated, nil
}
