// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// HuggingFace reads the daily papers listing.
type HuggingFace struct {
	Client *httputil.Client
	URL    string
}

// NewHuggingFace returns a fetcher; an empty url uses the public API.
func NewHuggingFace(client *httputil.Client, url string) *HuggingFace {
	if url == "" {
		url = "https://huggingface.co/api/daily_papers"
	}
	return &HuggingFace{Client: client, URL: url}
}

type hfEntry struct {
	Thumbnail string `json:"thumbnail"`
	Paper     struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		AISummary   string `json:"ai_summary"`
		PublishedAt string `json:"publishedAt"`
		Upvotes     int    `json:"upvotes"`
		Thumbnail   string `json:"thumbnail"`
		Authors     []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"paper"`
}

// Fetch returns today's papers in listing order.
func (h *HuggingFace) Fetch(ctx context.Context) ([]normalize.HFPaper, error) {
	var entries []hfEntry
	if err := h.Client.GetJSON(ctx, h.URL, &entries); err != nil {
		return nil, err
	}

	papers := make([]normalize.HFPaper, 0, len(entries))
	for _, e := range entries {
		p := normalize.HFPaper{
			ID:          e.Paper.ID,
			Title:       e.Paper.Title,
			Summary:     e.Paper.Summary,
			AISummary:   e.Paper.AISummary,
			PublishedAt: e.Paper.PublishedAt,
			Upvotes:     e.Paper.Upvotes,
			Thumbnail:   e.Paper.Thumbnail,
		}
		if p.Thumbnail == "" {
			p.Thumbnail = e.Thumbnail
		}
		for _, a := range e.Paper.Authors {
			name := a.Name
			if name == "" {
				name = "Unknown"
			}
			p.Authors = append(p.Authors, name)
		}
		papers = append(papers, p)
	}
	return papers, nil
}
