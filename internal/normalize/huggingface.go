// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// HuggingFace converts daily papers, scoring each by upstream upvotes.
func (n *Normalizer) HuggingFace(papers []HFPaper) []types.Item {
	src := types.SourceHuggingFace

	var items []types.Item
	for _, p := range papers {
		title := PlainText(p.Title)
		url := ""
		if id := strings.TrimSpace(p.ID); id != "" {
			url = "https://huggingface.co/papers/" + id
		}
		text := p.AISummary
		if text == "" {
			text = p.Summary
		}
		summary := PlainText(text)

		if !n.admit(src, title, url, summary) {
			continue
		}
		if n.belowMin(src, p.Upvotes, url) {
			continue
		}

		it := types.Item{
			Title:       title,
			URL:         url,
			Source:      src,
			Category:    "Paper",
			Score:       p.Upvotes,
			Authors:     strings.Join(firstN(p.Authors, 3), ", "),
			Summary:     summary,
			PublishedAt: p.PublishedAt,
		}
		it.SetExtra(types.ExtraUpvotes, p.Upvotes)
		if p.Thumbnail != "" {
			it.SetExtra(types.ExtraThumbnail, p.Thumbnail)
		}
		items = append(items, it)
	}
	return rankAndCap(items, n.cfg.Capacity(src))
}
