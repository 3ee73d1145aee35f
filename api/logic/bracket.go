/* bracket.go
 * Contains the bracket prediction merge logic: reconciling remote, locally cached and seed
 * documents into one canonical per-user prediction, and the slot mutation rules that keep a
 * team out of two places at once
 */

package logic

import (
	"scorecast/api/shared"
)

// GroupSlot names one of the two finishing positions in a group prediction.
type GroupSlot string

const (
	GroupSlotFirst  GroupSlot = "first"
	GroupSlotSecond GroupSlot = "second"
)

// HasSelection reports whether the document contains any actual pick: a
// non-empty group first/second or a non-empty best-thirds slot.
func HasSelection(pred *shared.BracketPrediction) bool {
	if pred == nil {
		return false
	}
	for _, g := range pred.Groups {
		if g.First != "" || g.Second != "" {
			return true
		}
	}
	for _, code := range pred.BestThirds {
		if code != "" {
			return true
		}
	}
	return false
}

// ResolveBracket reconciles the possible sources of a user's bracket
// prediction into the canonical document. First populated source wins: the
// remote persisted document, then a local cache entry holding any actual
// selection, then the user's seed document, then the first available seed.
// The result is always normalized so BestThirds has exactly
// shared.BestThirdsSlots entries and the maps are non-nil.
//
// Callers are expected to write the resolved document back to the local cache
// so later loads never regress to an earlier source.
func ResolveBracket(userID string, remote *shared.BracketPrediction, cached *shared.BracketPrediction, seeds []shared.BracketPrediction) shared.BracketPrediction {
	switch {
	case remote != nil:
		return normalizeBracket(userID, *remote)
	case HasSelection(cached):
		return normalizeBracket(userID, *cached)
	}
	for _, seed := range seeds {
		if seed.UserID == userID {
			return normalizeBracket(userID, seed)
		}
	}
	if len(seeds) > 0 {
		return normalizeBracket(userID, seeds[0])
	}
	return normalizeBracket(userID, shared.BracketPrediction{})
}

// SetGroupPick sets one slot of a group's top-two prediction. Picking a team
// that currently holds the group's other slot clears that other slot, so a
// group can never have the same team first and second.
func SetGroupPick(pred *shared.BracketPrediction, groupID string, slot GroupSlot, teamCode string) {
	if pred.Groups == nil {
		pred.Groups = make(map[string]shared.GroupPrediction)
	}
	g := pred.Groups[groupID]
	switch slot {
	case GroupSlotFirst:
		if teamCode != "" && g.Second == teamCode {
			g.Second = ""
		}
		g.First = teamCode
	case GroupSlotSecond:
		if teamCode != "" && g.First == teamCode {
			g.First = ""
		}
		g.Second = teamCode
	}
	pred.Groups[groupID] = g
}

// SetBestThird assigns a team to one of the best-thirds slots. Assigning a
// team that already occupies a different slot clears that slot, keeping each
// team to at most one appearance across the slate. Out-of-range slots are
// ignored.
func SetBestThird(pred *shared.BracketPrediction, slot int, teamCode string) {
	pred.BestThirds = NormalizeBestThirds(pred.BestThirds)
	if slot < 0 || slot >= shared.BestThirdsSlots {
		return
	}
	if teamCode != "" {
		for i, existing := range pred.BestThirds {
			if i != slot && existing == teamCode {
				pred.BestThirds[i] = ""
			}
		}
	}
	pred.BestThirds[slot] = teamCode
}

// SetKnockoutPick records the predicted winner of one knockout match.
func SetKnockoutPick(pred *shared.BracketPrediction, stage shared.Stage, matchID string, winner shared.Side) {
	if pred.Knockout == nil {
		pred.Knockout = make(map[shared.Stage]map[string]shared.Side)
	}
	if pred.Knockout[stage] == nil {
		pred.Knockout[stage] = make(map[string]shared.Side)
	}
	pred.Knockout[stage][matchID] = winner
}

// NormalizeBestThirds pads or truncates a best-thirds slate to exactly
// shared.BestThirdsSlots entries, preserving non-empty entries in their slot
// positions. Always returns a fresh slice.
func NormalizeBestThirds(slots []string) []string {
	out := make([]string, shared.BestThirdsSlots)
	copy(out, slots)
	return out
}

func normalizeBracket(userID string, pred shared.BracketPrediction) shared.BracketPrediction {
	pred.UserID = userID
	if pred.Groups == nil {
		pred.Groups = make(map[string]shared.GroupPrediction)
	}
	if pred.Knockout == nil {
		pred.Knockout = make(map[shared.Stage]map[string]shared.Side)
	}
	pred.BestThirds = NormalizeBestThirds(pred.BestThirds)
	return pred
}
