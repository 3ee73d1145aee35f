/* timing_test.go
 * Contains unit tests for lock times and matchday keys
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scorecast/api/shared"
)

// TestLockTime tests the 30 minute lock window
func TestLockTime(t *testing.T) {
	kickoff := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 6, 11, 17, 30, 0, 0, time.UTC), LockTime(kickoff))
}

// TestIsMatchLocked tests the locked/open boundary
func TestIsMatchLocked(t *testing.T) {
	kickoff := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)

	assert.False(t, IsMatchLocked(kickoff, kickoff.Add(-31*time.Minute)))
	// Exactly at lock time counts as locked.
	assert.True(t, IsMatchLocked(kickoff, kickoff.Add(-30*time.Minute)))
	assert.True(t, IsMatchLocked(kickoff, kickoff))
	assert.True(t, IsMatchLocked(kickoff, kickoff.Add(time.Hour)))
}

// TestGroupOutcomesLockTime tests that group predictions lock at the first group kickoff
func TestGroupOutcomesLockTime(t *testing.T) {
	first := time.Date(2026, 6, 11, 16, 0, 0, 0, time.UTC)
	matches := []shared.Match{
		{ID: "m2", Stage: shared.StageGroup, KickoffUTC: first.Add(3 * time.Hour)},
		{ID: "ko", Stage: shared.StageR32, KickoffUTC: first.Add(-24 * time.Hour)},
		{ID: "m1", Stage: shared.StageGroup, KickoffUTC: first},
	}

	lock, ok := GroupOutcomesLockTime(matches)

	assert.True(t, ok)
	assert.Equal(t, first, lock)
}

// TestGroupOutcomesLockTime_NoGroupMatches tests the absent case
func TestGroupOutcomesLockTime_NoGroupMatches(t *testing.T) {
	_, ok := GroupOutcomesLockTime([]shared.Match{{ID: "ko", Stage: shared.StageSF}})

	assert.False(t, ok)
}

// TestDateKey tests calendar-day bucketing across a timezone boundary
func TestDateKey(t *testing.T) {
	// 02:00 UTC on the 12th is still the 11th in New York.
	kickoff := time.Date(2026, 6, 12, 2, 0, 0, 0, time.UTC)
	ny, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	assert.Equal(t, "2026-06-12", DateKey(kickoff, time.UTC))
	assert.Equal(t, "2026-06-11", DateKey(kickoff, ny))
	assert.Equal(t, "2026-06-12", DateKey(kickoff, nil))
}
