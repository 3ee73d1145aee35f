/* leaderboard.go
 * Contains the leaderboard aggregation: summing every member's pick scores across every match,
 * ranking by total, and diffing against a persisted rank snapshot for movement arrows
 */

package logic

import (
	"sort"
	"strings"

	"scorecast/api/shared"
)

// IdentityKey resolves a stable key for a member across data sources that may
// populate different identity fields. First non-empty of id, uid, email,
// lowercase name wins.
func IdentityKey(m shared.Member) string {
	switch {
	case m.ID != "":
		return m.ID
	case m.UID != "":
		return m.UID
	case m.Email != "":
		return m.Email
	default:
		return strings.ToLower(m.Name)
	}
}

// BuildLeaderboard reduces all members' picks across all matches into one
// ranked entry per member. Bracket points are computed elsewhere and passed in
// keyed by identity key. Entries are sorted by descending total; members on
// equal totals keep the order they arrived in. There is no secondary tie
// breaker.
//
// A bad or partial pick scores zero for that match and never prevents other
// members (or the same member's other picks) from being scored.
func BuildLeaderboard(members []shared.Member, matches []shared.Match, picks []shared.Pick, cfg shared.ScoringConfig, bracketPoints map[string]int) []shared.LeaderboardEntry {
	matchByID := make(map[string]shared.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}

	picksByUser := make(map[string][]shared.Pick)
	for _, p := range picks {
		picksByUser[p.UserID] = append(picksByUser[p.UserID], p)
	}

	entries := make([]shared.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		key := IdentityKey(member)
		entry := shared.LeaderboardEntry{
			Member:        member,
			BracketPoints: bracketPoints[key],
		}
		for i := range picksByUser[key] {
			pick := picksByUser[key][i]
			match, ok := matchByID[pick.MatchID]
			if !ok {
				continue
			}
			pts := ScorePick(match, &pick, cfg)
			entry.ExactPoints += pts.Exact
			entry.ResultPoints += pts.Result
			entry.KnockoutPoints += pts.Knockout
			entry.TotalPoints += pts.Total
		}
		entry.TotalPoints += entry.BracketPoints
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}

// CurrentRanks maps identity key to 1-based rank for already-sorted entries.
func CurrentRanks(entries []shared.LeaderboardEntry) map[string]int {
	ranks := make(map[string]int, len(entries))
	for i, e := range entries {
		ranks[IdentityKey(e.Member)] = i + 1
	}
	return ranks
}

// RankMovement computes per-member movement deltas against a persisted rank
// snapshot and returns the snapshot to persist for next load.
//
// The stored snapshot only becomes the movement baseline when its timestamp
// differs from the current data's lastUpdated stamp; while the data has not
// changed, all deltas are zero and the snapshot is left as-is. A nil snapshot
// (absent or unreadable) also yields zero deltas. Positive delta = moved up
// the board. Members absent from the baseline get a zero delta.
func RankMovement(entries []shared.LeaderboardEntry, snapshot *shared.RankSnapshot, lastUpdated string) (map[string]int, shared.RankSnapshot) {
	current := CurrentRanks(entries)
	movement := make(map[string]int, len(current))
	for key := range current {
		movement[key] = 0
	}

	if snapshot == nil {
		return movement, shared.RankSnapshot{Timestamp: lastUpdated, Ranks: current}
	}
	if snapshot.Timestamp == lastUpdated {
		return movement, *snapshot
	}

	for key, rank := range current {
		if prev, ok := snapshot.Ranks[key]; ok {
			movement[key] = prev - rank
		}
	}
	return movement, shared.RankSnapshot{Timestamp: lastUpdated, Ranks: current}
}
