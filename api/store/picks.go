/* picks.go
 * Contains the methods for interacting with the picks collection. Picks are upserted per
 * (mode, user, match); they are never deleted, only overwritten
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"scorecast/api/shared"
)

// StorePick inserts or updates a member's pick for one match. A new pick gets
// a fresh document ID and CreatedAt; an existing one keeps both and refreshes
// UpdatedAt.
func (s *Store) StorePick(pick shared.Pick) error {
	if pick.UserID == "" || pick.MatchID == "" {
		return fmt.Errorf("pick requires userId and matchId")
	}
	filter := bson.M{"mode": s.Mode, "userId": pick.UserID, "matchId": pick.MatchID}

	// Attempt to find an existing document
	var existing pickDoc
	err := s.Collections.Picks.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing pick failed: %w", err)
	}

	now := time.Now().UTC()
	if notFound {
		pick.ID = uuid.NewString()
		pick.CreatedAt = now
		pick.UpdatedAt = now
		if _, err := s.Collections.Picks.InsertOne(context.TODO(), pickDoc{Mode: s.Mode, Pick: pick}); err != nil {
			return fmt.Errorf("failed to insert new pick: %w", err)
		}
		return nil
	}

	pick.ID = existing.Pick.ID
	pick.CreatedAt = existing.Pick.CreatedAt
	pick.UpdatedAt = now
	update := bson.M{"$set": pickDoc{Mode: s.Mode, Pick: pick}}
	if _, err := s.Collections.Picks.UpdateOne(context.TODO(), filter, update); err != nil {
		return fmt.Errorf("failed to update existing pick: %w", err)
	}
	return nil
}

// FetchPicks returns every member's picks for this mode plus a lastUpdated
// stamp derived from the newest pick. No picks yet is not an error.
func (s *Store) FetchPicks() ([]shared.Pick, string, error) {
	cursor, err := s.Collections.Picks.Find(context.TODO(), bson.M{"mode": s.Mode})
	if err != nil {
		return nil, "", fmt.Errorf("error fetching picks from db: %w", err)
	}

	var docs []pickDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, "", fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
	}

	picks := make([]shared.Pick, 0, len(docs))
	var newest time.Time
	for _, doc := range docs {
		picks = append(picks, doc.Pick)
		if doc.Pick.UpdatedAt.After(newest) {
			newest = doc.Pick.UpdatedAt
		}
	}
	stamp := ""
	if !newest.IsZero() {
		stamp = newest.Format(time.RFC3339)
	}
	return picks, stamp, nil
}

// FetchUserPicks returns one member's picks keyed by match ID.
func (s *Store) FetchUserPicks(userID string) (map[string]shared.Pick, error) {
	cursor, err := s.Collections.Picks.Find(context.TODO(), bson.M{"mode": s.Mode, "userId": userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user picks from db: %w", err)
	}

	var docs []pickDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
	}

	picks := make(map[string]shared.Pick, len(docs))
	for _, doc := range docs {
		picks[doc.Pick.MatchID] = doc.Pick
	}
	return picks, nil
}
