/* bracket_test.go
 * Contains unit tests for bracket resolution and the slot mutation rules
 */

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scorecast/api/shared"
)

// TestResolveBracket_RemoteWins tests that a persisted remote document beats the cache
func TestResolveBracket_RemoteWins(t *testing.T) {
	remote := &shared.BracketPrediction{
		Groups: map[string]shared.GroupPrediction{"A": {First: "BRA"}},
	}
	cached := &shared.BracketPrediction{
		Groups: map[string]shared.GroupPrediction{"A": {First: "ARG"}},
	}

	resolved := ResolveBracket("u1", remote, cached, nil)

	assert.Equal(t, "u1", resolved.UserID)
	assert.Equal(t, "BRA", resolved.Groups["A"].First)
	assert.Len(t, resolved.BestThirds, shared.BestThirdsSlots)
}

// TestResolveBracket_CacheNeedsSelection tests that an empty cache falls through to seeds
func TestResolveBracket_CacheNeedsSelection(t *testing.T) {
	empty := &shared.BracketPrediction{Groups: map[string]shared.GroupPrediction{"A": {}}}
	seeds := []shared.BracketPrediction{
		{UserID: "other", Groups: map[string]shared.GroupPrediction{"A": {First: "FRA"}}},
		{UserID: "u1", Groups: map[string]shared.GroupPrediction{"A": {First: "GER"}}},
	}

	resolved := ResolveBracket("u1", nil, empty, seeds)
	assert.Equal(t, "GER", resolved.Groups["A"].First)

	// Without a matching seed the first available one is used.
	resolved = ResolveBracket("u2", nil, empty, seeds)
	assert.Equal(t, "FRA", resolved.Groups["A"].First)
	assert.Equal(t, "u2", resolved.UserID)
}

// TestResolveBracket_CachedSelectionWins tests that a cache with any real pick beats seeds
func TestResolveBracket_CachedSelectionWins(t *testing.T) {
	cached := &shared.BracketPrediction{BestThirds: []string{"", "JPN"}}
	seeds := []shared.BracketPrediction{{UserID: "u1", Groups: map[string]shared.GroupPrediction{"A": {First: "GER"}}}}

	resolved := ResolveBracket("u1", nil, cached, seeds)

	assert.Equal(t, "JPN", resolved.BestThirds[1])
	assert.Empty(t, resolved.Groups["A"].First)
}

// TestResolveBracket_NothingAvailable tests the empty canonical document fallback
func TestResolveBracket_NothingAvailable(t *testing.T) {
	resolved := ResolveBracket("u1", nil, nil, nil)

	assert.Equal(t, "u1", resolved.UserID)
	assert.NotNil(t, resolved.Groups)
	assert.NotNil(t, resolved.Knockout)
	assert.Len(t, resolved.BestThirds, shared.BestThirdsSlots)
}

// TestSetGroupPick_ClearsOpposingSlot tests that both slots can never hold the same team
func TestSetGroupPick_ClearsOpposingSlot(t *testing.T) {
	pred := shared.BracketPrediction{}
	SetGroupPick(&pred, "A", GroupSlotFirst, "BRA")
	SetGroupPick(&pred, "A", GroupSlotSecond, "ARG")

	// Moving BRA to second must clear first.
	SetGroupPick(&pred, "A", GroupSlotSecond, "BRA")
	assert.Equal(t, "", pred.Groups["A"].First)
	assert.Equal(t, "BRA", pred.Groups["A"].Second)

	SetGroupPick(&pred, "A", GroupSlotFirst, "BRA")
	assert.Equal(t, "BRA", pred.Groups["A"].First)
	assert.Equal(t, "", pred.Groups["A"].Second)
}

// TestSetBestThird_ClearsDuplicateSlot tests that a team occupies at most one slot
func TestSetBestThird_ClearsDuplicateSlot(t *testing.T) {
	pred := shared.BracketPrediction{}
	SetBestThird(&pred, 0, "JPN")
	SetBestThird(&pred, 3, "KOR")

	SetBestThird(&pred, 5, "JPN")

	assert.Equal(t, "", pred.BestThirds[0])
	assert.Equal(t, "KOR", pred.BestThirds[3])
	assert.Equal(t, "JPN", pred.BestThirds[5])
	assert.Len(t, pred.BestThirds, shared.BestThirdsSlots)

	// Out-of-range slots are ignored.
	SetBestThird(&pred, shared.BestThirdsSlots, "MEX")
	assert.NotContains(t, pred.BestThirds, "MEX")
}

// TestNormalizeBestThirds_RoundTrip tests that normalization preserves slot positions
func TestNormalizeBestThirds_RoundTrip(t *testing.T) {
	in := []string{"JPN", "", "KOR"}

	out := NormalizeBestThirds(in)
	assert.Len(t, out, shared.BestThirdsSlots)
	assert.Equal(t, "JPN", out[0])
	assert.Equal(t, "KOR", out[2])

	// Normalizing again changes nothing.
	again := NormalizeBestThirds(out)
	assert.Equal(t, out, again)

	// Longer-than-slate input is truncated.
	long := make([]string, shared.BestThirdsSlots+3)
	long[0] = "JPN"
	assert.Len(t, NormalizeBestThirds(long), shared.BestThirdsSlots)
}

// TestSetKnockoutPick tests recording a knockout winner
func TestSetKnockoutPick(t *testing.T) {
	pred := shared.BracketPrediction{}

	SetKnockoutPick(&pred, shared.StageR16, "m40", shared.SideAway)

	assert.Equal(t, shared.SideAway, pred.Knockout[shared.StageR16]["m40"])
}

// TestHasSelection tests the any-actual-pick detection used by the cache resolution step
func TestHasSelection(t *testing.T) {
	assert.False(t, HasSelection(nil))
	assert.False(t, HasSelection(&shared.BracketPrediction{}))
	assert.False(t, HasSelection(&shared.BracketPrediction{BestThirds: make([]string, 8)}))
	assert.True(t, HasSelection(&shared.BracketPrediction{BestThirds: []string{"", "JPN"}}))
	assert.True(t, HasSelection(&shared.BracketPrediction{Groups: map[string]shared.GroupPrediction{"A": {Second: "ARG"}}}))
}
