// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes cross-source duplicates by normalized URL.
package dedup

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// NormalizeURL drops everything from the first "?" and one trailing "/".
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimSuffix(u, "/")
}

// Deduplicate keeps the first item for each normalized URL and drops the
// rest regardless of score. Input order decides which source wins. It
// returns the surviving items and how many were removed.
func Deduplicate(items []types.Item) ([]types.Item, int) {
	seen := make(map[string]bool, len(items))
	out := make([]types.Item, 0, len(items))
	removed := 0

	for _, it := range items {
		key := NormalizeURL(it.URL)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out, removed
}

// Apply runs Deduplicate when enabled and passes items through otherwise.
func Apply(items []types.Item, enabled bool) ([]types.Item, int) {
	if !enabled {
		return items, 0
	}
	return Deduplicate(items)
}
