/* snapshots.go
 * Contains the methods for interacting with the rank_snapshots collection: the persisted
 * previous-ranking baseline that movement arrows are computed from
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scorecast/api/shared"
)

// LoadRankSnapshot returns the stored rank baseline, or nil when none exists.
// A document that fails to decode is treated as absent rather than fatal; a
// corrupt snapshot only costs the movement arrows for one load.
func (s *Store) LoadRankSnapshot() (*shared.RankSnapshot, error) {
	var doc rankSnapshotDoc
	err := s.Collections.RankSnapshots.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Println("rank snapshot unreadable, treating as absent:", err)
		return nil, nil
	}
	if doc.Snapshot.Ranks == nil {
		return nil, nil
	}
	return &doc.Snapshot, nil
}

// SaveRankSnapshot upserts the rank baseline for this mode.
func (s *Store) SaveRankSnapshot(snapshot shared.RankSnapshot) error {
	doc := rankSnapshotDoc{Mode: s.Mode, Snapshot: snapshot}
	filter := bson.M{"mode": s.Mode}
	if _, err := s.Collections.RankSnapshots.UpdateOne(context.TODO(), filter, bson.M{"$set": doc}, optionsUpsert()); err != nil {
		return fmt.Errorf("rank snapshot upsert failed: %w", err)
	}
	return nil
}

// optionsUpsert is shared by the upserting collections.
func optionsUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}
