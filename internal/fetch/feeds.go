// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// Feeds reads any RSS or Atom feed: official blogs, release feeds and the
// product-launch feed.
type Feeds struct {
	Client *httputil.Client
}

// NewFeeds returns a generic feed fetcher.
func NewFeeds(client *httputil.Client) *Feeds {
	return &Feeds{Client: client}
}

// Fetch returns every entry of the feed at url in feed order.
func (f *Feeds) Fetch(ctx context.Context, url string) ([]normalize.FeedEntry, error) {
	body, err := f.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	feed, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", url, err)
	}

	entries := make([]normalize.FeedEntry, 0, len(feed.Items))
	for _, it := range feed.Items {
		entries = append(entries, feedEntry(it))
	}
	return entries, nil
}
