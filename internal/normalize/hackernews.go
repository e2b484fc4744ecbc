// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// HackerNews keeps stories whose points clear the threshold and whose
// title mentions a configured keyword. The upstream point count is the
// score.
func (n *Normalizer) HackerNews(stories []HNStory) []types.Item {
	src := types.SourceHackerNews
	keywords := n.cfg.Sources.HackerNews.Keywords
	capacity := n.cfg.Capacity(src)

	var items []types.Item
	for _, s := range stories {
		if s.Type != "story" {
			continue
		}
		title := PlainText(s.Title)
		url := strings.TrimSpace(s.URL)
		if url == "" && s.ID > 0 {
			url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", s.ID)
		}

		if n.belowMin(src, s.Score, url) {
			continue
		}
		if !ContainsAny(title, keywords) {
			continue
		}
		if !n.admit(src, title, url, "") {
			continue
		}

		it := types.Item{
			Title:    title,
			URL:      url,
			Source:   src,
			Category: "Discussion",
			Score:    s.Score,
			Comments: s.Descendants,
			Authors:  s.By,
		}
		if s.Time > 0 {
			it.PublishedAt = time.Unix(s.Time, 0).UTC().Format(time.RFC3339)
		}
		it.SetExtra(types.ExtraHNID, s.ID)
		items = append(items, it)

		if capacity > 0 && len(items) >= capacity {
			break
		}
	}
	return rankAndCap(items, capacity)
}
