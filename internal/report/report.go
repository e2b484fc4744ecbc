// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a digest as a Markdown file of HTML news cards.
//
// Cards are emitted without indentation so Markdown renderers do not treat
// them as code blocks. All interpolated text is HTML-escaped.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/translate"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	defaultLimit = 10
	cgLimit      = 20
	maxCardTags  = 3
	authorWidth  = 30
)

// Renderer writes digests to <OutputDir>/<date>.md.
type Renderer struct {
	OutputDir  string
	Title      string
	ImageDir   string
	Translator translate.Translator
	Log        zerolog.Logger
}

// New builds a Renderer from the report settings. A nil translator falls
// back to plain truncation.
func New(cfg types.ReportConfig, tr translate.Translator, log zerolog.Logger) *Renderer {
	if tr == nil {
		tr = translate.Passthrough{}
	}
	return &Renderer{
		OutputDir:  cfg.OutputDir,
		Title:      cfg.Title,
		ImageDir:   cfg.ImageDir,
		Translator: tr,
		Log:        log,
	}
}

// Limit returns how many cards a section displays.
func Limit(key types.SectionKey) int {
	if key == types.SectionCG {
		return cgLimit
	}
	return defaultLimit
}

// Visible returns a copy of d holding only the items that render as cards.
func Visible(d *types.Digest) *types.Digest {
	out := *d
	out.Sections = make([]types.Section, 0, len(d.Sections))
	for _, s := range d.Sections {
		items := s.Items
		if n := Limit(s.Key); len(items) > n {
			items = items[:n]
		}
		out.Sections = append(out.Sections, types.Section{Key: s.Key, Items: items})
	}
	return &out
}

// Write renders d and writes it to the output directory, returning the
// file path.
func (r *Renderer) Write(ctx context.Context, d *types.Digest) (string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	r.Render(ctx, &buf, d)

	path := filepath.Join(r.OutputDir, d.Date+".md")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	r.Log.Info().Str("path", path).Int("items", d.Total()).Msg("report written")
	return path, nil
}

// Render writes the Markdown report for d to buf.
func (r *Renderer) Render(ctx context.Context, buf *bytes.Buffer, d *types.Digest) {
	fmt.Fprintf(buf, "# 📰 %s - %s\n\n", r.Title, d.Date)
	fmt.Fprintf(buf, "> Generated at %s\n\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, s := range d.Sections {
		if len(s.Items) == 0 {
			continue
		}
		st, ok := styles[s.Key]
		if !ok {
			r.Log.Warn().Str("section", string(s.Key)).Msg("no style for section, skipping")
			continue
		}
		r.renderSection(ctx, buf, s, st)
	}
	buf.WriteString("---")
}

func (r *Renderer) renderSection(ctx context.Context, buf *bytes.Buffer, s types.Section, st style) {
	fmt.Fprintf(buf, "## %s\n", st.heading)
	if st.banner != "" {
		fmt.Fprintf(buf, "![%s](%s/%s)\n", st.alt, r.ImageDir, st.banner)
	}
	if st.note != "" {
		fmt.Fprintf(buf, "> %s\n", st.note)
	}
	buf.WriteString("<div class=\"news-grid\">\n")

	items := s.Items
	if n := Limit(s.Key); len(items) > n {
		items = items[:n]
	}
	for _, it := range items {
		summary := st.text(it)
		if !st.plain {
			summary = r.Translator.Translate(ctx, summary, st.budget)
		}
		left, right := st.meta(it)
		writeCard(buf, it, summary, left, right)
	}
	buf.WriteString("</div>\n\n\n")
}

func writeCard(buf *bytes.Buffer, it types.Item, summary, left, right string) {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	class := "news-card"
	if it.ImageURL != "" {
		class += " has-image"
	}

	esc := html.EscapeString
	fmt.Fprintf(buf, "<div class=\"%s\">\n", class)
	fmt.Fprintf(buf, "<div class=\"news-tags-data\" style=\"display:none\">%s</div>\n", tagsJSON)
	buf.WriteString("<div class=\"news-card-content\">\n")
	buf.WriteString("<div class=\"news-card-header\">\n")
	fmt.Fprintf(buf, "<span class=\"news-source-tag\">%s</span>\n", esc(sourceLabel(it.Source)))
	fmt.Fprintf(buf, "<span class=\"news-date\">%s</span>\n", esc(displayDate(it.PublishedAt)))
	buf.WriteString("</div>\n")
	fmt.Fprintf(buf, "<a href=\"%s\" target=\"_blank\" class=\"news-title-link\">\n", esc(it.URL))
	fmt.Fprintf(buf, "<h3 class=\"news-title\">%s</h3>\n", esc(it.Title))
	buf.WriteString("</a>\n")
	fmt.Fprintf(buf, "<div class=\"news-summary\">%s</div>\n", esc(summary))

	if len(tags) > 0 {
		shown := tags
		if len(shown) > maxCardTags {
			shown = shown[:maxCardTags]
		}
		badges := make([]string, len(shown))
		for i, t := range shown {
			badges[i] = fmt.Sprintf("<span class=\"news-tag\">%s</span>", esc(t))
		}
		fmt.Fprintf(buf, "<div class=\"news-tags\">%s</div>\n", strings.Join(badges, " "))
	}

	buf.WriteString("<div class=\"news-meta\">\n")
	fmt.Fprintf(buf, "<span class=\"meta-left\">%s</span>\n", esc(left))
	fmt.Fprintf(buf, "<span class=\"meta-right\">%s</span>\n", esc(right))
	buf.WriteString("</div>\n")
	buf.WriteString("</div>\n")
	if it.ImageURL != "" {
		fmt.Fprintf(buf, "<div class=\"news-card-image\" style=\"background-image: url('%s');\"></div>\n", esc(it.ImageURL))
	}
	buf.WriteString("</div>\n")
}

// displayDate keeps the calendar date of an ISO timestamp.
func displayDate(s string) string {
	if len(s) > 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}

// shortAuthors bounds an author list by display width.
func shortAuthors(s string) string {
	return runewidth.Truncate(s, authorWidth, "...")
}

var sourceLabels = map[types.Source]string{
	types.SourceArxiv:       "arXiv",
	types.SourceGitHub:      "GitHub",
	types.SourceHackerNews:  "Hacker News",
	types.SourceReddit:      "Reddit",
	types.SourceRedditCG:    "CG",
	types.SourceOfficial:    "Official",
	types.SourceProductHunt: "Product Hunt",
	types.SourceSkills:      "Skills",
	types.SourceHuggingFace: "Hugging Face",
	types.SourceBluesky:     "Bluesky",
}

func sourceLabel(s types.Source) string {
	if l, ok := sourceLabels[s]; ok {
		return l
	}
	return string(s)
}
