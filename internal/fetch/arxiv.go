// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed/atom"
	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// Arxiv queries the arXiv listing API per category.
type Arxiv struct {
	Client *httputil.Client
	Log    zerolog.Logger

	// APIBase is the Atom query endpoint; RSSBase the per-category feed
	// root used when a query returns nothing.
	APIBase string
	RSSBase string
}

// NewArxiv returns an Arxiv fetcher for the public endpoints.
func NewArxiv(client *httputil.Client, log zerolog.Logger) *Arxiv {
	return &Arxiv{
		Client:  client,
		Log:     log,
		APIBase: "https://export.arxiv.org/api/query",
		RSSBase: "https://export.arxiv.org/rss",
	}
}

// Fetch returns the newest entries of each category, at most perCategory
// each. A failing category is logged and skipped; an error is returned only
// when every category failed.
func (a *Arxiv) Fetch(ctx context.Context, categories []string, perCategory int) ([]normalize.ArxivEntry, error) {
	var entries []normalize.ArxivEntry
	var lastErr error
	failed := 0

	for _, cat := range categories {
		got, err := a.fetchCategory(ctx, cat, perCategory)
		if err != nil {
			a.Log.Warn().Str("category", cat).Err(err).Msg("arXiv category failed")
			lastErr = err
			failed++
			continue
		}
		entries = append(entries, got...)
	}

	if len(categories) > 0 && failed == len(categories) {
		return nil, fmt.Errorf("all arXiv categories failed: %w", lastErr)
	}
	return entries, nil
}

func (a *Arxiv) fetchCategory(ctx context.Context, cat string, limit int) ([]normalize.ArxivEntry, error) {
	q := fmt.Sprintf("%s?search_query=cat:%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		a.APIBase, url.QueryEscape(cat), limit)

	var out []normalize.ArxivEntry
	body, err := a.Client.Get(ctx, q)
	if err == nil {
		feed, perr := (&atom.Parser{}).Parse(bytes.NewReader(body))
		if perr != nil {
			err = fmt.Errorf("parsing arXiv Atom response: %w", perr)
		} else {
			for _, e := range feed.Entries {
				out = append(out, atomEntry(e, cat))
			}
		}
	}

	if len(out) == 0 {
		a.Log.Info().Str("category", cat).Msg("Atom query empty, trying RSS")
		out, err = a.fetchRSS(ctx, cat)
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *Arxiv) fetchRSS(ctx context.Context, cat string) ([]normalize.ArxivEntry, error) {
	body, err := a.Client.Get(ctx, a.RSSBase+"/"+url.PathEscape(cat))
	if err != nil {
		return nil, err
	}
	feed, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv RSS: %w", err)
	}

	out := make([]normalize.ArxivEntry, 0, len(feed.Items))
	for _, it := range feed.Items {
		e := normalize.ArxivEntry{
			Title:     it.Title,
			Summary:   it.Description,
			Link:      it.Link,
			Published: it.Published,
			Category:  cat,
		}
		for _, p := range it.Authors {
			if p != nil {
				e.Authors = append(e.Authors, strings.TrimSpace(p.Name))
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func atomEntry(e *atom.Entry, cat string) normalize.ArxivEntry {
	out := normalize.ArxivEntry{
		Title:     e.Title,
		Summary:   e.Summary,
		Published: e.Published,
		Category:  cat,
	}
	if out.Published == "" {
		out.Published = e.Updated
	}
	for _, p := range e.Authors {
		if p != nil {
			out.Authors = append(out.Authors, strings.TrimSpace(p.Name))
		}
	}
	for _, l := range e.Links {
		if l == nil {
			continue
		}
		switch {
		case l.Type == "application/pdf" && out.PDFLink == "":
			out.PDFLink = l.Href
		case (l.Rel == "" || l.Rel == "alternate") && out.Link == "":
			out.Link = l.Href
		}
	}
	return out
}
