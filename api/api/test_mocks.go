/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"
	"fmt"
	"time"

	"scorecast/api/shared"
	"scorecast/api/store"
)

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Matches            []shared.Match
	MatchesUpdated     string
	Picks              []shared.Pick
	ScoringConfig      *shared.ScoringConfig
	Members            []shared.Member
	Leaderboard        []shared.LeaderboardEntry
	LeaderboardUpdated string
	Brackets           map[string]*shared.BracketPrediction
	BracketPoints      map[string]int
	RankSnapshot       *shared.RankSnapshot
	Mode               shared.Mode

	// Error injection for testing error paths
	FetchMatchesError     error
	FetchPicksError       error
	FetchLeaderboardError error
	StorePickError        error
	StoreBracketError     error
}

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		Brackets:      make(map[string]*shared.BracketPrediction),
		BracketPoints: make(map[string]int),
		Mode:          shared.ModeDefault,
	}
}

func (m *MockStore) FetchMatches() ([]shared.Match, string, error) {
	if m.FetchMatchesError != nil {
		return nil, "", m.FetchMatchesError
	}
	return m.Matches, m.MatchesUpdated, nil
}

func (m *MockStore) StoreMatches(matches []shared.Match) (string, error) {
	m.Matches = matches
	m.MatchesUpdated = time.Now().UTC().Format(time.RFC3339)
	return m.MatchesUpdated, nil
}

func (m *MockStore) StorePick(pick shared.Pick) error {
	if m.StorePickError != nil {
		return m.StorePickError
	}
	now := time.Now().UTC()
	for i, existing := range m.Picks {
		if existing.UserID == pick.UserID && existing.MatchID == pick.MatchID {
			pick.ID = existing.ID
			pick.CreatedAt = existing.CreatedAt
			pick.UpdatedAt = now
			m.Picks[i] = pick
			return nil
		}
	}
	pick.ID = fmt.Sprintf("pick-%d", len(m.Picks)+1)
	pick.CreatedAt = now
	pick.UpdatedAt = now
	m.Picks = append(m.Picks, pick)
	return nil
}

func (m *MockStore) FetchPicks() ([]shared.Pick, string, error) {
	if m.FetchPicksError != nil {
		return nil, "", m.FetchPicksError
	}
	return m.Picks, "", nil
}

func (m *MockStore) FetchUserPicks(userID string) (map[string]shared.Pick, error) {
	picks := make(map[string]shared.Pick)
	for _, p := range m.Picks {
		if p.UserID == userID {
			picks[p.MatchID] = p
		}
	}
	return picks, nil
}

func (m *MockStore) FetchScoring() (shared.ScoringConfig, string, error) {
	if m.ScoringConfig != nil {
		return *m.ScoringConfig, "", nil
	}
	return shared.ScoringConfig{
		Group: shared.RuleSet{ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2},
		Knockout: map[shared.Stage]shared.RuleSet{
			shared.StageR16: {ExactScoreBoth: 3, ExactScoreOne: 1, Result: 2, KnockoutWinner: 1},
		},
	}, "", nil
}

func (m *MockStore) StoreScoring(cfg shared.ScoringConfig) error {
	m.ScoringConfig = &cfg
	return nil
}

func (m *MockStore) FetchMembers() ([]shared.Member, string, error) {
	return m.Members, "", nil
}

func (m *MockStore) StoreMembers(members []shared.Member) error {
	m.Members = members
	return nil
}

func (m *MockStore) FetchLeaderboard() ([]shared.LeaderboardEntry, string, error) {
	if m.FetchLeaderboardError != nil {
		return nil, "", m.FetchLeaderboardError
	}
	return m.Leaderboard, m.LeaderboardUpdated, nil
}

func (m *MockStore) StoreLeaderboard(entries []shared.LeaderboardEntry) (string, error) {
	m.Leaderboard = entries
	m.LeaderboardUpdated = time.Now().UTC().Format(time.RFC3339)
	return m.LeaderboardUpdated, nil
}

func (m *MockStore) GetBracketPrediction(userID string) (*shared.BracketPrediction, error) {
	return m.Brackets[userID], nil
}

func (m *MockStore) FetchBracketPredictions() ([]shared.BracketPrediction, string, error) {
	var preds []shared.BracketPrediction
	for _, p := range m.Brackets {
		preds = append(preds, *p)
	}
	return preds, "", nil
}

func (m *MockStore) StoreBracketPrediction(pred shared.BracketPrediction) error {
	if m.StoreBracketError != nil {
		return m.StoreBracketError
	}
	stored := pred
	m.Brackets[pred.UserID] = &stored
	return nil
}

func (m *MockStore) FetchBracketPoints() (map[string]int, error) {
	return m.BracketPoints, nil
}

func (m *MockStore) StoreBracketPoints(points map[string]int) error {
	m.BracketPoints = points
	return nil
}

func (m *MockStore) LoadRankSnapshot() (*shared.RankSnapshot, error) {
	return m.RankSnapshot, nil
}

func (m *MockStore) SaveRankSnapshot(snapshot shared.RankSnapshot) error {
	m.RankSnapshot = &snapshot
	return nil
}

// GetMode returns the mock's operating mode
func (m *MockStore) GetMode() shared.Mode {
	return m.Mode
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// GetDatabase returns a stub database handle
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: "test_db"}
}

// mockClient implements the minimal client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(context.Context) error { return nil }

// GetClient returns a stub client handle
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}
