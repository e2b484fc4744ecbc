// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// PlainText resolves HTML entities, removes markup and collapses
// whitespace. The result is safe to hand to a
// renderer as plain text.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	// Entities are decoded before parsing so escaped markup
	// ("&lt;b&gt;") is removed too.
	decoded := html.UnescapeString(s)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return collapseSpace(tagPattern.ReplaceAllString(decoded, " "))
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	// Text nodes are kept as-is: a literal "<" the parser left in place
	// belongs to the text ("n < 10").
	return collapseSpace(strings.Join(parts, " "))
}

// Truncate cuts s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
