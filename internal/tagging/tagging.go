// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tagging infers topical tags for items from configured keyword
// rules plus one default tag per source.
package tagging

import (
	"sort"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// sourceTags maps each source to the single tag every item from it carries.
var sourceTags = map[types.Source]string{
	types.SourceArxiv:       "paper/research",
	types.SourceGitHub:      "open-source project",
	types.SourceHackerNews:  "industry news",
	types.SourceReddit:      "community discussion",
	types.SourceRedditCG:    "CG graphics",
	types.SourceOfficial:    "official news",
	types.SourceProductHunt: "product launch",
	types.SourceHuggingFace: "machine learning",
	types.SourceSkills:      "Agent Skill",
}

// DefaultTag returns the source's default tag, or "" when it has none.
func DefaultTag(s types.Source) string { return sourceTags[s] }

type rule struct {
	tag      string
	keywords []string
}

// Engine applies keyword rules. It is immutable after New and safe to share.
type Engine struct {
	rules []rule
}

// New compiles rules into an Engine. Tag names are evaluated in sorted
// order so the output list is stable across runs; keywords are lowercased
// once here.
func New(rules map[string][]string) *Engine {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Engine{rules: make([]rule, 0, len(names))}
	for _, name := range names {
		var kws []string
		for _, kw := range rules[name] {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			continue
		}
		e.rules = append(e.rules, rule{tag: name, keywords: kws})
	}
	return e
}

// Tags returns the tag set for one item's text. The result never contains
// duplicates and may be empty.
func (e *Engine) Tags(title, summary string, source types.Source, category string) []string {
	text := strings.ToLower(title + " " + summary + " " + category)

	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, r := range e.rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				add(r.tag)
				break
			}
		}
	}
	add(DefaultTag(source))
	return tags
}

// Assign fills Tags on every item whose tag set is still empty. Preset tags
// are left untouched.
func (e *Engine) Assign(items []types.Item) {
	for i := range items {
		it := &items[i]
		if len(it.Tags) > 0 {
			continue
		}
		it.Tags = e.Tags(it.Title, it.Summary, it.Source, it.Category)
	}
}
