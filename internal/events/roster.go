package events

import (
	"bytes"
	"encoding/json"

	"github.com/padelhub/backend/internal/models"
)

// Diff compares two roster snapshots and returns the players that joined and
// left between them. Identity is the player id only; changes to other fields
// do not count. Nil placeholders (open slots) are skipped. Returned slices
// preserve snapshot order.
func Diff(before, after []*models.Player) (joined, left []models.Player) {
	beforeIDs := idSet(before)
	afterIDs := idSet(after)

	for _, p := range after {
		if p == nil {
			continue
		}
		if !beforeIDs[p.ID] {
			joined = append(joined, *p)
		}
	}
	for _, p := range before {
		if p == nil {
			continue
		}
		if !afterIDs[p.ID] {
			left = append(left, *p)
		}
	}
	return joined, left
}

// Unchanged reports whether two roster snapshots serialize identically.
// Callers short-circuit all downstream dispatch when it returns true.
func Unchanged(before, after []*models.Player) bool {
	b, err1 := json.Marshal(before)
	a, err2 := json.Marshal(after)
	if err1 != nil || err2 != nil {
		return false
	}
	return bytes.Equal(b, a)
}

// CloneRoster deep-copies a roster snapshot, preserving nil placeholders.
func CloneRoster(players []*models.Player) []*models.Player {
	if players == nil {
		return nil
	}
	out := make([]*models.Player, len(players))
	for i, p := range players {
		if p != nil {
			cp := *p
			out[i] = &cp
		}
	}
	return out
}

func idSet(players []*models.Player) map[string]bool {
	m := make(map[string]bool, len(players))
	for _, p := range players {
		if p != nil {
			m[p.ID] = true
		}
	}
	return m
}
