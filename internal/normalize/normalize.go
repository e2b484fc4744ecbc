// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw per-source records into canonical items.
//
// Each adapter takes its collaborator's record type, sanitizes free text,
// drops blacklisted and below-threshold records, computes the source's score
// and fills the Extra keys selection relies on. A malformed record is
// skipped; adapters never fail.
package normalize

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// Normalizer holds the read-only configuration shared by every adapter.
type Normalizer struct {
	cfg *types.Config
	log zerolog.Logger
}

// New returns a Normalizer. A nil cfg uses built-in defaults.
func New(cfg *types.Config, log zerolog.Logger) *Normalizer {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	return &Normalizer{cfg: cfg, log: log}
}

// admit applies the checks shared by every adapter: required fields and the
// blacklist. Sanitized title and summary must be passed.
func (n *Normalizer) admit(src types.Source, title, url, summary string) bool {
	switch {
	case title == "":
		n.skip(src, "missing title", url)
		return false
	case url == "":
		n.skip(src, "missing url", title)
		return false
	case Blacklisted(title, summary, n.cfg.Blacklist()):
		n.skip(src, "blacklisted", url)
		return false
	}
	return true
}

// belowMin reports whether score falls under the source's threshold.
func (n *Normalizer) belowMin(src types.Source, score int, ref string) bool {
	if score < n.cfg.MinScore(src) {
		n.skip(src, "below minimum score", ref)
		return true
	}
	return false
}

func (n *Normalizer) skip(src types.Source, reason, ref string) {
	n.log.Debug().Str("source", string(src)).Str("reason", reason).Str("ref", ref).Msg("skipping record")
}

// rankAndCap sorts by score and truncates to capacity (0 keeps all).
func rankAndCap(items []types.Item, capacity int) []types.Item {
	selection.SortByScore(items)
	if capacity > 0 && len(items) > capacity {
		items = items[:capacity]
	}
	return items
}

func firstN(names []string, n int) []string {
	var out []string
	for _, name := range names {
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == n {
			break
		}
	}
	return out
}
