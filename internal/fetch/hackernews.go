// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// HackerNews reads the Firebase API.
type HackerNews struct {
	Client  *httputil.Client
	Log     zerolog.Logger
	BaseURL string
}

// NewHackerNews returns a HackerNews fetcher for the public API.
func NewHackerNews(client *httputil.Client, log zerolog.Logger) *HackerNews {
	return &HackerNews{Client: client, Log: log, BaseURL: "https://hacker-news.firebaseio.com/v0"}
}

// Fetch returns the first maxStories top stories. Items that fail to load
// are skipped.
func (h *HackerNews) Fetch(ctx context.Context, maxStories int) ([]normalize.HNStory, error) {
	var ids []int
	if err := h.Client.GetJSON(ctx, h.BaseURL+"/topstories.json", &ids); err != nil {
		return nil, err
	}
	if maxStories > 0 && len(ids) > maxStories {
		ids = ids[:maxStories]
	}

	stories := make([]normalize.HNStory, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var s normalize.HNStory
		if err := h.Client.GetJSON(ctx, fmt.Sprintf("%s/item/%d.json", h.BaseURL, id), &s); err != nil {
			h.Log.Debug().Int("id", id).Err(err).Msg("skipping story")
			continue
		}
		if s.ID == 0 {
			continue
		}
		stories = append(stories, s)
	}
	return stories, nil
}
