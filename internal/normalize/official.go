// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Official converts the newest entries of one official blog feed. The score
// is 100 for AI-related posts and 50 otherwise; the software name is the
// grouping key.
func (n *Normalizer) Official(feed types.OfficialFeed, entries []FeedEntry) []types.Item {
	src := types.SourceOfficial
	opts := n.cfg.Sources.Official
	if opts.PerFeed > 0 && len(entries) > opts.PerFeed {
		entries = entries[:opts.PerFeed]
	}

	var items []types.Item
	for _, e := range entries {
		title := PlainText(e.Title)
		body := e.Summary
		if body == "" {
			body = e.Content
		}
		summary := Truncate(PlainText(body), 200)
		url := strings.TrimSpace(e.Link)

		if !n.admit(src, title, url, summary) {
			continue
		}

		ai := ContainsAny(title+" "+summary+" "+feed.Label, opts.AIKeywords)
		score := OfficialScore(ai)
		if n.belowMin(src, score, url) {
			continue
		}

		it := types.Item{
			Title:       title,
			URL:         url,
			Source:      src,
			Category:    feed.Label,
			Score:       score,
			Summary:     summary,
			Authors:     e.Author,
			PublishedAt: e.Published,
		}
		it.SetExtra(types.ExtraSoftware, feed.Name)
		it.SetExtra(types.ExtraLabel, feed.Label)
		it.SetExtra(types.ExtraGroupingKey, feed.Name)
		it.SetExtra(types.ExtraAIRelated, ai)
		it.SetExtra(types.ExtraOfficial, true)
		items = append(items, it)
	}
	return items
}
