// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

const maxTrendingRows = 20

var starDigits = regexp.MustCompile(`[\d,]+`)

// GitHub scrapes the trending page.
type GitHub struct {
	Client  *httputil.Client
	BaseURL string
}

// NewGitHub returns a GitHub fetcher for github.com.
func NewGitHub(client *httputil.Client) *GitHub {
	return &GitHub{Client: client, BaseURL: "https://github.com/trending"}
}

// Fetch returns up to 20 trending repositories for language ("" for all)
// over the since window (daily, weekly, monthly).
func (g *GitHub) Fetch(ctx context.Context, language, since string) ([]normalize.TrendingRepo, error) {
	u := g.BaseURL
	if language != "" {
		u += "/" + language
	}
	if since != "" {
		u += "?since=" + since
	}

	body, err := g.Client.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing trending page: %w", err)
	}

	var repos []normalize.TrendingRepo
	doc.Find("article.Box-row").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxTrendingRows {
			return false
		}
		href, ok := row.Find("h2 a").First().Attr("href")
		if !ok {
			return true
		}
		repos = append(repos, normalize.TrendingRepo{
			Path:        strings.Trim(strings.TrimSpace(href), "/"),
			Description: strings.TrimSpace(row.Find("p").First().Text()),
			Language:    strings.TrimSpace(row.Find(`[itemprop="programmingLanguage"]`).First().Text()),
			TodayStars:  parseStars(row.Find(".float-sm-right").First().Text()),
		})
		return true
	})
	return repos, nil
}

// parseStars reads the first number in text such as "1,234 stars today".
func parseStars(text string) int {
	m := starDigits.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0
	}
	return n
}
