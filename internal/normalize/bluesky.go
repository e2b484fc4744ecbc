// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Bluesky keeps posts that mention a configured keyword. The post text is
// the title; feed order is preserved.
func (n *Normalizer) Bluesky(posts []BlueskyPost) []types.Item {
	src := types.SourceBluesky
	keywords := n.cfg.Sources.Bluesky.Keywords
	capacity := n.cfg.Capacity(src)

	var items []types.Item
	for _, p := range posts {
		text := Truncate(PlainText(p.Text), 200)
		if !ContainsAny(text, keywords) {
			continue
		}
		url := postURL(p.Handle, p.URI)
		if !n.admit(src, text, url, "") {
			continue
		}
		if n.belowMin(src, p.LikeCount, url) {
			continue
		}

		it := types.Item{
			Title:       text,
			URL:         url,
			Source:      src,
			Category:    "@" + p.Account,
			Score:       p.LikeCount,
			Authors:     p.Handle,
			PublishedAt: p.CreatedAt,
		}
		it.SetExtra(types.ExtraAccount, p.Account)
		it.SetExtra(types.ExtraHandle, p.Handle)
		items = append(items, it)

		if capacity > 0 && len(items) >= capacity {
			break
		}
	}
	return items
}

// postURL builds the web link from the author handle and the record key,
// the last segment of the at:// URI.
func postURL(handle, uri string) string {
	if handle == "" || uri == "" {
		return ""
	}
	rkey := uri[strings.LastIndex(uri, "/")+1:]
	if rkey == "" {
		return ""
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", handle, rkey)
}
