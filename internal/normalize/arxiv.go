// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// arxivPrefix matches the "(arXiv:...)" style prefix some feeds put in
// front of titles.
var arxivPrefix = regexp.MustCompile(`^\([^)]+\)\s*`)

// PerCategoryLimit is how many entries to request for each category so the
// union can fill capacity.
func PerCategoryLimit(capacity, categories int) int {
	if categories <= 0 {
		return capacity
	}
	return max(10, capacity/categories)
}

// Arxiv scores entries by how many topical keywords occur in title or
// summary and returns the best ones up to capacity.
func (n *Normalizer) Arxiv(entries []ArxivEntry) []types.Item {
	src := types.SourceArxiv
	keywords := n.cfg.Sources.Arxiv.Keywords
	seen := make(map[string]bool)

	var items []types.Item
	for _, e := range entries {
		title := strings.TrimSpace(arxivPrefix.ReplaceAllString(PlainText(e.Title), ""))
		summary := Truncate(PlainText(e.Summary), 200)
		url := e.PDFLink
		if url == "" {
			url = e.Link
		}
		url = strings.TrimSpace(url)

		if !n.admit(src, title, url, summary) {
			continue
		}
		// Cross-listed papers show up under several categories.
		if seen[url] {
			continue
		}
		seen[url] = true

		score := KeywordMatches(keywords, title, summary)
		if n.belowMin(src, score, url) {
			continue
		}

		authors := strings.Join(firstN(e.Authors, 3), ", ")
		if authors == "" {
			authors = "Unknown"
		}

		items = append(items, types.Item{
			Title:       title,
			URL:         url,
			Source:      src,
			Category:    e.Category,
			Score:       score,
			Authors:     authors,
			Summary:     summary,
			PublishedAt: e.Published,
		})
	}
	return rankAndCap(items, n.cfg.Capacity(src))
}
