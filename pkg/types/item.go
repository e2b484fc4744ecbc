// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the digest-engine pipeline.
//
// Item is the canonical record every source adapter produces. Config is the
// read-only configuration object built once at startup and passed into every
// stage.
package types

import "strconv"

// Source identifies the adapter an item came from.
type Source string

const (
	SourceArxiv       Source = "arxiv"       // academic feed
	SourceGitHub      Source = "github"      // code-hosting trending list
	SourceHackerNews  Source = "hackernews"  // link aggregator
	SourceReddit      Source = "reddit"      // general community feed
	SourceRedditCG    Source = "reddit-cg"   // CG community feed
	SourceOfficial    Source = "official"    // official blog feeds
	SourceProductHunt Source = "producthunt" // product-launch feed
	SourceSkills      Source = "skills"      // skill directory
	SourceHuggingFace Source = "huggingface" // paper directory
	SourceBluesky     Source = "bluesky"     // social feed
)

// AllSources lists every known source in the fixed cross-source
// concatenation order used for deduplication. Earlier sources win URL
// collisions.
var AllSources = []Source{
	SourceArxiv,
	SourceGitHub,
	SourceHackerNews,
	SourceReddit,
	SourceBluesky,
	SourceRedditCG,
	SourceProductHunt,
	SourceSkills,
	SourceHuggingFace,
}

// ParseSource maps a user-facing name (including the short aliases the CLI
// accepts) to a Source.
func ParseSource(name string) (Source, bool) {
	switch name {
	case "arxiv":
		return SourceArxiv, true
	case "github":
		return SourceGitHub, true
	case "hn", "hackernews":
		return SourceHackerNews, true
	case "reddit":
		return SourceReddit, true
	case "cg", "reddit-cg":
		return SourceRedditCG, true
	case "official":
		return SourceOfficial, true
	case "ph", "producthunt":
		return SourceProductHunt, true
	case "skills", "trending_skills":
		return SourceSkills, true
	case "hf", "huggingface":
		return SourceHuggingFace, true
	case "bluesky", "twitter":
		return SourceBluesky, true
	}
	return "", false
}

// Well-known keys of Item.Extra.
const (
	ExtraGroupingKey = "grouping_key"
	ExtraAIRelated   = "is_ai_related"
	ExtraOfficial    = "is_official"
	ExtraRank        = "rank"
	ExtraLabel       = "label"
	ExtraSubreddit   = "subreddit"
	ExtraSoftware    = "software"
	ExtraTodayStars  = "today_stars"
	ExtraLanguage    = "language"
	ExtraUpvotes     = "upvotes"
	ExtraThumbnail   = "thumbnail"
	ExtraOwner       = "owner"
	ExtraHandle      = "handle"
	ExtraAccount     = "account"
	ExtraHNID        = "hn_id"
)

// Item is the normalized record produced for every source.
//
// Score is only comparable within one source (or one grouping inside a
// source). Cross-source identity is established by normalized URL alone.
type Item struct {
	// Title is plain display text; never empty for an emitted item.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical link and the deduplication key.
	URL string `json:"url" yaml:"url"`

	// Source identifies the adapter that produced the item.
	Source Source `json:"source" yaml:"source"`

	// Category is a free-text sub-grouping within the source (community
	// name, feed label, subject classification, language).
	Category string `json:"category" yaml:"category"`

	// Score is a non-negative, source-local ranking weight.
	Score int `json:"score" yaml:"score"`

	Comments    int    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Authors     string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	PublishedAt string `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// Tags is filled by the tag rule engine unless the adapter preset it.
	// Once non-empty it is final.
	Tags []string `json:"tags" yaml:"tags"`

	// Extra carries source-specific metadata used by selection and
	// rendering (see the Extra* keys).
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// SetExtra stores v under key, allocating the bag on first use.
func (it *Item) SetExtra(key string, v any) {
	if it.Extra == nil {
		it.Extra = make(map[string]any)
	}
	it.Extra[key] = v
}

// ExtraString returns the string stored under key, or "".
func (it Item) ExtraString(key string) string {
	v, _ := it.Extra[key].(string)
	return v
}

// ExtraBool returns the boolean stored under key, or false.
func (it Item) ExtraBool(key string) bool {
	v, _ := it.Extra[key].(bool)
	return v
}

// ExtraInt returns the integer stored under key, or 0. Numeric strings are
// accepted so values round-tripped through JSON or YAML still resolve.
func (it Item) ExtraInt(key string) int {
	switch v := it.Extra[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// GroupingKey returns the sub-community used for selection quotas.
func (it Item) GroupingKey() string { return it.ExtraString(ExtraGroupingKey) }

// IsAIRelated reports the keyword-derived AI-relatedness flag.
func (it Item) IsAIRelated() bool { return it.ExtraBool(ExtraAIRelated) }

// IsOfficial reports whether the item came from an official blog feed.
func (it Item) IsOfficial() bool { return it.ExtraBool(ExtraOfficial) }
