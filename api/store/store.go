/* store.go
 * Contains the Store struct and NewStore function. The methods for this package are split across
 * matches.go, picks.go, scoring.go, leaderboard.go, brackets.go and snapshots.go, one file per
 * collection
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scorecast/api/shared"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Mode        shared.Mode
	Collections struct {
		Matches       *mongo.Collection
		Picks         *mongo.Collection
		Scoring       *mongo.Collection
		Members       *mongo.Collection
		Leaderboards  *mongo.Collection
		Brackets      *mongo.Collection
		BracketPoints *mongo.Collection
		RankSnapshots *mongo.Collection
	}
}

// NewStore initialises the db connection and binds the collections. The mode
// is fixed at construction; demo and live data never share documents because
// every filter carries it.
func NewStore(dbName string, mongoURI string, mode shared.Mode) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	if mode != shared.ModeDefault && mode != shared.ModeDemo {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		Mode:     mode,
	}
	s.Collections.Matches = db.Collection("matches")
	s.Collections.Picks = db.Collection("picks")
	s.Collections.Scoring = db.Collection("scoring_config")
	s.Collections.Members = db.Collection("members")
	s.Collections.Leaderboards = db.Collection("leaderboards")
	s.Collections.Brackets = db.Collection("bracket_predictions")
	s.Collections.BracketPoints = db.Collection("bracket_points")
	s.Collections.RankSnapshots = db.Collection("rank_snapshots")
	return s, nil
}

// nowStamp is the ISO-8601 lastUpdated stamp written with every snapshot.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
