/* timing.go
 * Contains the lock-time calculations. Picks close a fixed window before kickoff, and group
 * outcome predictions close when the first group-stage match begins
 */

package logic

import (
	"time"

	"scorecast/api/shared"
)

// LockWindow is how long before kickoff a match locks for pick changes.
const LockWindow = 30 * time.Minute

// LockTime returns the instant after which picks for the match can no longer
// be changed.
func LockTime(kickoffUTC time.Time) time.Time {
	return kickoffUTC.Add(-LockWindow)
}

// IsMatchLocked reports whether the match is locked at the reference time.
func IsMatchLocked(kickoffUTC time.Time, now time.Time) bool {
	return !now.Before(LockTime(kickoffUTC))
}

// GroupOutcomesLockTime returns the earliest kickoff among group-stage
// matches. Group and best-thirds predictions lock at that instant. The second
// return value is false when the slice contains no group-stage matches.
func GroupOutcomesLockTime(matches []shared.Match) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, m := range matches {
		if m.Stage != shared.StageGroup {
			continue
		}
		if !found || m.KickoffUTC.Before(earliest) {
			earliest = m.KickoffUTC
			found = true
		}
	}
	return earliest, found
}

// DateKey buckets a kickoff into a calendar day in the given location,
// producing a stable key for grouping fixtures into matchdays. Used for
// display grouping only; it carries no scoring meaning.
func DateKey(kickoffUTC time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return kickoffUTC.In(loc).Format("2006-01-02")
}
