/* scoring.go
 * Contains the methods for interacting with the scoring_config and members collections
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

// DefaultScoringConfig is seeded on first run so a fresh database scores
// sensibly: 3/1/2 in the groups, rising exact values through the knockouts
// with a winner bonus once matches can go beyond regulation.
func DefaultScoringConfig() shared.ScoringConfig {
	return shared.ScoringConfig{
		Group: shared.RuleSet{ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2},
		Knockout: map[shared.Stage]shared.RuleSet{
			shared.StageR32:   {ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2, KnockoutWinner: 1},
			shared.StageR16:   {ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2, KnockoutWinner: 1},
			shared.StageQF:    {ExactScoreBoth: 4, ExactScoreOne: 2, Result: 3, KnockoutWinner: 2},
			shared.StageSF:    {ExactScoreBoth: 4, ExactScoreOne: 2, Result: 3, KnockoutWinner: 2},
			shared.StageThird: {ExactScoreBoth: 4, ExactScoreOne: 2, Result: 3, KnockoutWinner: 2},
			shared.StageFinal: {ExactScoreBoth: 5, ExactScoreOne: 2, Result: 4, KnockoutWinner: 3},
		},
	}
}

// FetchScoring returns the scoring configuration and its lastUpdated stamp.
// A fresh database falls back to the default config with an empty stamp.
func (s *Store) FetchScoring() (shared.ScoringConfig, string, error) {
	var snap ScoringSnapshot
	err := s.Collections.Scoring.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return DefaultScoringConfig(), "", nil
		}
		return shared.ScoringConfig{}, "", fmt.Errorf("failed to fetch scoring config from database: %w", err)
	}
	return snap.Config, snap.LastUpdated, nil
}

// StoreScoring replaces the scoring configuration for this mode.
func (s *Store) StoreScoring(cfg shared.ScoringConfig) error {
	snap := ScoringSnapshot{Mode: s.Mode, LastUpdated: nowStamp(), Config: cfg}

	var existing ScoringSnapshot
	err := s.Collections.Scoring.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing scoring config failed: %w", err)
	}

	if notFound {
		if _, err := s.Collections.Scoring.InsertOne(context.TODO(), snap); err != nil {
			return fmt.Errorf("scoring config insert failed: %w", err)
		}
		return nil
	}
	if _, err := s.Collections.Scoring.UpdateOne(context.TODO(), bson.M{"mode": s.Mode}, bson.D{{Key: "$set", Value: snap}}); err != nil {
		return fmt.Errorf("scoring config update failed: %w", err)
	}
	return nil
}

// FetchMembers returns the league roster in stored order. The order matters:
// leaderboard ties keep it.
func (s *Store) FetchMembers() ([]shared.Member, string, error) {
	var snap MemberSnapshot
	err := s.Collections.Members.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to fetch members from database: %w", err)
	}
	return snap.Members, snap.LastUpdated, nil
}

// StoreMembers replaces the league roster for this mode.
func (s *Store) StoreMembers(members []shared.Member) error {
	snap := MemberSnapshot{Mode: s.Mode, LastUpdated: nowStamp(), Members: members}

	var existing MemberSnapshot
	err := s.Collections.Members.FindOne(context.TODO(), bson.M{"mode": s.Mode}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing member roster failed: %w", err)
	}

	if notFound {
		if _, err := s.Collections.Members.InsertOne(context.TODO(), snap); err != nil {
			return fmt.Errorf("member roster insert failed: %w", err)
		}
		return nil
	}
	if _, err := s.Collections.Members.UpdateOne(context.TODO(), bson.M{"mode": s.Mode}, bson.D{{Key: "$set", Value: snap}}); err != nil {
		return fmt.Errorf("member roster update failed: %w", err)
	}
	return nil
}
