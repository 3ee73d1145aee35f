/* brackets.go
 * Contains the methods for interacting with the bracket_predictions collection. Writes use
 * merge-on-write semantics: fields present in the incoming document overlay the stored one,
 * unspecified fields are retained
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

// GetBracketPrediction returns one user's persisted bracket document, or
// (nil, nil) when none exists.
func (s *Store) GetBracketPrediction(userID string) (*shared.BracketPrediction, error) {
	var doc bracketDoc
	err := s.Collections.Brackets.FindOne(context.TODO(), bson.M{"mode": s.Mode, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bracket prediction from database: %w", err)
	}
	return &doc.Prediction, nil
}

// FetchBracketPredictions returns every user's bracket document plus a
// lastUpdated stamp from the newest document.
func (s *Store) FetchBracketPredictions() ([]shared.BracketPrediction, string, error) {
	cursor, err := s.Collections.Brackets.Find(context.TODO(), bson.M{"mode": s.Mode})
	if err != nil {
		return nil, "", fmt.Errorf("error fetching bracket predictions from db: %w", err)
	}

	var docs []bracketDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, "", fmt.Errorf("error unpacking cursor into slice of bracket predictions: %w", err)
	}

	preds := make([]shared.BracketPrediction, 0, len(docs))
	newest := ""
	for _, doc := range docs {
		preds = append(preds, doc.Prediction)
		if doc.Prediction.UpdatedAt > newest {
			newest = doc.Prediction.UpdatedAt
		}
	}
	return preds, newest, nil
}

// FetchBracketPoints returns per-member bracket points keyed by identity key.
// None graded yet means an empty map, not an error.
func (s *Store) FetchBracketPoints() (map[string]int, error) {
	var snap BracketPointsSnapshot
	err := s.Collections.BracketPoints.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("failed to fetch bracket points from database: %w", err)
	}
	if snap.Points == nil {
		snap.Points = map[string]int{}
	}
	return snap.Points, nil
}

// StoreBracketPoints replaces the graded bracket points for this mode.
func (s *Store) StoreBracketPoints(points map[string]int) error {
	snap := BracketPointsSnapshot{Mode: s.Mode, LastUpdated: nowStamp(), Points: points}
	filter := bson.M{"mode": s.Mode}
	if _, err := s.Collections.BracketPoints.UpdateOne(context.TODO(), filter, bson.M{"$set": snap}, optionsUpsert()); err != nil {
		return fmt.Errorf("bracket points upsert failed: %w", err)
	}
	return nil
}

// StoreBracketPrediction upserts a user's bracket document. Only the sections
// present in the incoming document are overlaid; a write carrying just
// knockout picks leaves stored group picks untouched.
func (s *Store) StoreBracketPrediction(pred shared.BracketPrediction) error {
	if pred.UserID == "" {
		return fmt.Errorf("bracket prediction requires userId")
	}
	pred.UpdatedAt = nowStamp()

	set := bson.M{
		"mode":      s.Mode,
		"userId":    pred.UserID,
		"updatedAt": pred.UpdatedAt,
	}
	if pred.Groups != nil {
		set["groups"] = pred.Groups
	}
	if pred.BestThirds != nil {
		set["bestThirds"] = pred.BestThirds
	}
	if pred.Knockout != nil {
		set["knockout"] = pred.Knockout
	}

	filter := bson.M{"mode": s.Mode, "userId": pred.UserID}
	opts := optionsUpsert()
	if _, err := s.Collections.Brackets.UpdateOne(context.TODO(), filter, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("bracket prediction upsert failed: %w", err)
	}
	return nil
}
