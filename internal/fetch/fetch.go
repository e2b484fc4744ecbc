// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch talks to the upstream sites and returns their raw records.
//
// Every collaborator goes through httputil.Client, so User-Agent, timeout
// and retry policy are uniform. Collaborators return the normalize package's
// record types and leave filtering and scoring to it.
package fetch

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// Collaborators bundles one instance of every fetcher over a shared client.
type Collaborators struct {
	Arxiv       *Arxiv
	GitHub      *GitHub
	HackerNews  *HackerNews
	Reddit      *Reddit
	Feeds       *Feeds
	Skills      *Skills
	HuggingFace *HuggingFace
	Bluesky     *Bluesky
}

// New returns collaborators pointed at the production endpoints, or at the
// URLs the sources config overrides.
func New(client *httputil.Client, cfg types.SourcesConfig, log zerolog.Logger) *Collaborators {
	return &Collaborators{
		Arxiv:       NewArxiv(client, log),
		GitHub:      NewGitHub(client),
		HackerNews:  NewHackerNews(client, log),
		Reddit:      NewReddit(client),
		Feeds:       NewFeeds(client),
		Skills:      NewSkills(client, cfg.Skills.URL),
		HuggingFace: NewHuggingFace(client, cfg.HuggingFace.URL),
		Bluesky:     NewBluesky(client),
	}
}

// parseFeed decodes an RSS or Atom document.
func parseFeed(body []byte) (*gofeed.Feed, error) {
	return gofeed.NewParser().Parse(bytes.NewReader(body))
}

// feedEntry maps a parsed feed item onto the generic record.
func feedEntry(it *gofeed.Item) normalize.FeedEntry {
	e := normalize.FeedEntry{
		Title:      it.Title,
		Link:       it.Link,
		Summary:    it.Description,
		Content:    it.Content,
		Published:  it.Published,
		Categories: it.Categories,
	}
	if e.Published == "" {
		e.Published = it.Updated
	}
	if it.Author != nil {
		e.Author = it.Author.Name
	} else if len(it.Authors) > 0 && it.Authors[0] != nil {
		e.Author = it.Authors[0].Name
	}
	return e
}

// textLines returns the trimmed, non-empty text nodes of an HTML document
// in document order, skipping scripts and styles.
func textLines(root *html.Node) []string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return lines
}
