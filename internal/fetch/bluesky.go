// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// authorFeedLimit is the page size requested from getAuthorFeed.
const authorFeedLimit = 20

// Bluesky reads public author feeds over XRPC.
type Bluesky struct {
	Client  *httputil.Client
	BaseURL string
}

// NewBluesky returns a Bluesky fetcher for bsky.social.
func NewBluesky(client *httputil.Client) *Bluesky {
	return &Bluesky{Client: client, BaseURL: "https://bsky.social/xrpc"}
}

type authorFeed struct {
	Feed []struct {
		Post struct {
			URI    string `json:"uri"`
			Author struct {
				Handle string `json:"handle"`
			} `json:"author"`
			Record struct {
				Text      string `json:"text"`
				CreatedAt string `json:"createdAt"`
			} `json:"record"`
			LikeCount int `json:"likeCount"`
		} `json:"post"`
	} `json:"feed"`
}

// Fetch resolves account to a DID and returns its first limit posts.
func (b *Bluesky) Fetch(ctx context.Context, account string, limit int) ([]normalize.BlueskyPost, error) {
	var resolved struct {
		DID string `json:"did"`
	}
	resolveURL := fmt.Sprintf("%s/com.atproto.identity.resolveHandle?handle=%s", b.BaseURL, url.QueryEscape(account))
	if err := b.Client.GetJSON(ctx, resolveURL, &resolved); err != nil {
		return nil, fmt.Errorf("resolving @%s: %w", account, err)
	}
	if resolved.DID == "" {
		return nil, fmt.Errorf("resolving @%s: empty DID", account)
	}

	var feed authorFeed
	feedURL := fmt.Sprintf("%s/app.bsky.feed.getAuthorFeed?actor=%s&limit=%d", b.BaseURL, url.QueryEscape(resolved.DID), authorFeedLimit)
	if err := b.Client.GetJSON(ctx, feedURL, &feed); err != nil {
		return nil, fmt.Errorf("author feed @%s: %w", account, err)
	}

	entries := feed.Feed
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	posts := make([]normalize.BlueskyPost, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, normalize.BlueskyPost{
			Account:   account,
			Handle:    e.Post.Author.Handle,
			URI:       e.Post.URI,
			Text:      e.Post.Record.Text,
			CreatedAt: e.Post.Record.CreatedAt,
			LikeCount: e.Post.LikeCount,
		})
	}
	return posts, nil
}
