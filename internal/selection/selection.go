// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection picks a bounded, diverse subset of one source's items.
//
// Two policies are provided. QuotaSelect guarantees every grouping key a
// slot (priority keys two) and fills the rest by score. Diverse and BlendCG
// order AI-related items first and then keep the first item per grouping key
// ahead of the overflow. Both are built from PartitionPreservingOrder.
package selection

import (
	"sort"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Default capacities for the three selection views.
const (
	DefaultCommunityCapacity = 20
	DefaultBlendCapacity     = 30
	DefaultOfficialCapacity  = 15
)

// PartitionPreservingOrder splits items into those pred accepts and those
// it rejects. Both halves keep their input order. pred is called exactly
// once per item, in order, so it may carry state.
func PartitionPreservingOrder(items []types.Item, pred func(types.Item) bool) (matched, rest []types.Item) {
	for _, it := range items {
		if pred(it) {
			matched = append(matched, it)
		} else {
			rest = append(rest, it)
		}
	}
	return matched, rest
}

// SortByScore orders items by score, highest first. Ties keep input order.
func SortByScore(items []types.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// AIFirst returns items sorted by score with every AI-related item ahead of
// every other item.
func AIFirst(items []types.Item) []types.Item {
	sorted := append([]types.Item(nil), items...)
	SortByScore(sorted)
	return aiPartition(sorted)
}

// FirstPerKey moves the first item of each grouping key to the front and
// leaves the later ones, in order, behind them.
func FirstPerKey(items []types.Item) []types.Item {
	seen := make(map[string]bool)
	diverse, overflow := PartitionPreservingOrder(items, func(it types.Item) bool {
		k := it.GroupingKey()
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
	return append(diverse, overflow...)
}

// Diverse is the single-family diversity view: AI-related first, one item
// per grouping key ahead of the overflow, truncated to capacity (0 keeps
// all).
func Diverse(items []types.Item, capacity int) []types.Item {
	return truncate(FirstPerKey(AIFirst(items)), capacity)
}

// OfficialView selects official blog items with one slot per software name
// before any software gets a second.
func OfficialView(official []types.Item, capacity int) []types.Item {
	if capacity <= 0 {
		capacity = DefaultOfficialCapacity
	}
	return Diverse(official, capacity)
}

// BlendCG merges the official view and the community items into one CG
// section.
//
// Official items are placed ahead of community items, the union is
// stably split by AI-relatedness, and the first-per-key pass runs last.
// Running it last means no later reordering can push a key's first item
// behind another key's overflow.
func BlendCG(official, community []types.Item, officialCapacity, capacity int) []types.Item {
	if capacity <= 0 {
		capacity = DefaultBlendCapacity
	}
	union := append(OfficialView(official, officialCapacity), FirstPerKey(AIFirst(community))...)
	return truncate(FirstPerKey(aiPartition(union)), capacity)
}

func aiPartition(items []types.Item) []types.Item {
	ai, rest := PartitionPreservingOrder(items, types.Item.IsAIRelated)
	return append(ai, rest...)
}

func truncate(items []types.Item, capacity int) []types.Item {
	if capacity > 0 && len(items) > capacity {
		return items[:capacity]
	}
	return items
}
