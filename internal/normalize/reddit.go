// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Reddit converts general community posts. The subreddit is the grouping
// key for the quota selector; ordering and capacity are left to it.
func (n *Normalizer) Reddit(posts []RedditPost) []types.Item {
	src := types.SourceReddit

	var items []types.Item
	for _, p := range posts {
		it, ok := n.redditItem(src, p, "")
		if !ok {
			continue
		}
		it.Category = "r/" + p.Subreddit
		it.SetExtra(types.ExtraSubreddit, p.Subreddit)
		it.SetExtra(types.ExtraGroupingKey, p.Subreddit)
		items = append(items, it)
	}
	return items
}

// RedditCG converts CG community posts. The community's display label is
// both the category and the grouping key, and each post is flagged as
// AI-related when its title or text matches the AI keyword list.
func (n *Normalizer) RedditCG(posts []RedditPost) []types.Item {
	src := types.SourceRedditCG
	cg := n.cfg.Sources.CG

	var items []types.Item
	for _, p := range posts {
		selftext := Truncate(PlainText(p.Selftext), 200)
		it, ok := n.redditItem(src, p, selftext)
		if !ok {
			continue
		}
		label := communityLabel(cg.Communities, p.Subreddit)
		it.Category = label
		it.Summary = selftext
		it.SetExtra(types.ExtraSubreddit, p.Subreddit)
		it.SetExtra(types.ExtraLabel, label)
		it.SetExtra(types.ExtraGroupingKey, label)
		it.SetExtra(types.ExtraAIRelated, ContainsAny(it.Title+" "+selftext, cg.AIKeywords))
		items = append(items, it)
	}
	return items
}

func (n *Normalizer) redditItem(src types.Source, p RedditPost, summary string) (types.Item, bool) {
	if p.Stickied {
		return types.Item{}, false
	}
	title := PlainText(p.Title)
	url := ""
	if p.Permalink != "" {
		url = "https://www.reddit.com" + p.Permalink
	}
	if n.belowMin(src, p.Ups, url) {
		return types.Item{}, false
	}
	if !n.admit(src, title, url, summary) {
		return types.Item{}, false
	}

	it := types.Item{
		Title:    title,
		URL:      url,
		Source:   src,
		Score:    p.Ups,
		Comments: p.NumComments,
		Authors:  p.Author,
		ImageURL: redditImage(p),
	}
	if p.CreatedUTC > 0 {
		it.PublishedAt = time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339)
	}
	return it, true
}

func redditImage(p RedditPost) string {
	if p.PreviewURL != "" {
		return strings.ReplaceAll(p.PreviewURL, "&amp;", "&")
	}
	if strings.HasPrefix(p.Thumbnail, "http") {
		return p.Thumbnail
	}
	return ""
}

func communityLabel(communities []types.Community, sub string) string {
	for _, c := range communities {
		if strings.EqualFold(c.Subreddit, sub) && c.Label != "" {
			return c.Label
		}
	}
	return sub
}
