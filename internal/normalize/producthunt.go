// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

var (
	phImage      = regexp.MustCompile(`img src="([^"]+)"`)
	phStats      = regexp.MustCompile(`(?i)Comments:\s*\d+\s*,\s*Votes:\s*\d+`)
	phLinkTail   = regexp.MustCompile(`(?i)\s*Discussion\s*\|\s*Link.*$`)
	phDiscussion = regexp.MustCompile(`(?i)\s*Discussion\s*$`)
	phPipeLink   = regexp.MustCompile(`(?i)\|\s*Link.*$`)
	phResidue    = regexp.MustCompile(`Discussion|\|`)
)

// ProductHunt scores launches by the vote count parsed from the entry text.
func (n *Normalizer) ProductHunt(entries []FeedEntry) []types.Item {
	src := types.SourceProductHunt

	var items []types.Item
	for _, e := range entries {
		content := e.Summary
		if content == "" {
			content = e.Content
		}
		title := PlainText(e.Title)
		url := strings.TrimSpace(e.Link)
		summary := productSummary(content)

		if !n.admit(src, title, url, summary) {
			continue
		}

		votes := ParseVotes(content, e.Categories)
		if n.belowMin(src, votes, url) {
			continue
		}

		it := types.Item{
			Title:       title,
			URL:         url,
			Source:      src,
			Category:    "Product",
			Score:       votes,
			Summary:     summary,
			PublishedAt: e.Published,
		}
		if m := phImage.FindStringSubmatch(content); m != nil {
			it.ImageURL = m[1]
		}
		items = append(items, it)
	}
	return rankAndCap(items, n.cfg.Capacity(src))
}

// productSummary strips the feed's boilerplate tail ("Comments: N, Votes: N",
// "Discussion | Link") from the description.
func productSummary(content string) string {
	s := tagPattern.ReplaceAllString(content, " ")
	if loc := phStats.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = strings.TrimSpace(s)
	s = phLinkTail.ReplaceAllString(s, "")
	s = phDiscussion.ReplaceAllString(s, "")
	s = phPipeLink.ReplaceAllString(s, "")
	s = PlainText(s)
	if loc := phResidue.FindStringIndex(s); loc != nil {
		s = strings.TrimSpace(s[:loc[0]])
	}
	return Truncate(s, 200)
}
