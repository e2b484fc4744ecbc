// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// GitHub scores trending repositories by star delta plus a bonus per
// topical keyword found in the description or repository name.
func (n *Normalizer) GitHub(repos []TrendingRepo) []types.Item {
	src := types.SourceGitHub
	keywords := n.cfg.Sources.GitHub.Keywords

	var items []types.Item
	for _, r := range repos {
		path := strings.Trim(strings.TrimSpace(r.Path), "/")
		if path == "" {
			n.skip(src, "missing repository path", "")
			continue
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		url := "https://github.com/" + path
		desc := PlainText(r.Description)
		summary := Truncate(desc, 150)

		if !n.admit(src, name, url, summary) {
			continue
		}

		score := TrendingScore(r.TodayStars, KeywordMatches(keywords, desc, name))
		if n.belowMin(src, score, url) {
			continue
		}

		lang := strings.TrimSpace(r.Language)
		if lang == "" {
			lang = "Unknown"
		}

		it := types.Item{
			Title:    name,
			URL:      url,
			Source:   src,
			Category: lang,
			Score:    score,
			Summary:  summary,
		}
		it.SetExtra(types.ExtraTodayStars, r.TodayStars)
		it.SetExtra(types.ExtraLanguage, lang)
		items = append(items, it)
	}
	return rankAndCap(items, n.cfg.Capacity(src))
}
