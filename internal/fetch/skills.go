// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// Skills reads the skill leaderboard page as text lines.
type Skills struct {
	Client *httputil.Client
	URL    string
}

// NewSkills returns a Skills fetcher; an empty url uses skills.sh/trending.
func NewSkills(client *httputil.Client, url string) *Skills {
	if url == "" {
		url = "https://skills.sh/trending"
	}
	return &Skills{Client: client, URL: url}
}

// Fetch returns the page's visible text, one line per text node.
func (s *Skills) Fetch(ctx context.Context) ([]normalize.SkillLine, error) {
	body, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing leaderboard: %w", err)
	}

	var lines []normalize.SkillLine
	for _, n := range doc.Nodes {
		for _, l := range textLines(n) {
			lines = append(lines, normalize.SkillLine(l))
		}
	}
	return lines, nil
}
