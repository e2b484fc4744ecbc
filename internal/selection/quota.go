// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"sort"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const priorityQuota = 2

// QuotaSelect returns at most capacity items in which every grouping key
// present is represented when capacity allows.
//
// Each priority key contributes its best two items, every other key its best
// one, and the remaining slots go to the highest-scoring leftovers. When
// the guaranteed picks alone exceed capacity they are cut in that same
// order: priority keys (in configured order), then other keys (in order of
// first appearance). The result is sorted by score.
func QuotaSelect(items []types.Item, priority []string, capacity int) []types.Item {
	if capacity <= 0 {
		capacity = DefaultCommunityCapacity
	}

	// Groups hold input positions so leftovers can be replayed in fetch
	// order.
	groups := make(map[string][]int)
	var order []string
	for i, it := range items {
		k := it.GroupingKey()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	for _, k := range order {
		idx := groups[k]
		sort.SliceStable(idx, func(a, b int) bool {
			return items[idx[a]].Score > items[idx[b]].Score
		})
	}

	picked := make([]bool, len(items))
	var picks []types.Item
	take := func(i int) {
		picked[i] = true
		picks = append(picks, items[i])
	}

	isPriority := make(map[string]bool, len(priority))
	for _, k := range priority {
		if isPriority[k] {
			continue
		}
		isPriority[k] = true
		g := groups[k]
		for _, i := range g[:min(priorityQuota, len(g))] {
			take(i)
		}
	}

	for _, k := range order {
		if g := groups[k]; !isPriority[k] && len(g) > 0 {
			take(g[0])
		}
	}

	var pool []types.Item
	for i, it := range items {
		if !picked[i] {
			pool = append(pool, it)
		}
	}
	SortByScore(pool)

	picks = truncate(append(picks, pool...), capacity)
	SortByScore(picks)
	return picks
}
