// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every fetch collaborator.
type HTTPConfig struct {
	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request. Several upstreams reject
	// non-browser agents, so the default mimics a desktop browser.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 5xx (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ArxivConfig configures the academic feed.
type ArxivConfig struct {
	Enabled    *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Categories []string `json:"categories" yaml:"categories"`
	Keywords   []string `json:"keywords" yaml:"keywords"`
}

// GitHubConfig configures the code-trending source.
type GitHubConfig struct {
	Enabled  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Language string   `json:"language" yaml:"language"`
	Since    string   `json:"since" yaml:"since"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// HackerNewsConfig configures the link aggregator.
type HackerNewsConfig struct {
	Enabled  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Keywords []string `json:"keywords" yaml:"keywords"`

	// MaxStories is how many top-story IDs are inspected (default 100).
	MaxStories int `json:"max_stories" yaml:"max_stories"`
}

// RedditConfig configures the general community feed.
type RedditConfig struct {
	Enabled    *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Subreddits []string `json:"subreddits" yaml:"subreddits"`

	// PerCommunity is the number of hot posts requested per community.
	PerCommunity int `json:"per_community" yaml:"per_community"`
}

// Community pairs a subreddit with its display label.
type Community struct {
	Subreddit string `json:"subreddit" yaml:"subreddit"`
	Label     string `json:"label" yaml:"label"`
}

// CGConfig configures the CG community feed.
type CGConfig struct {
	Enabled      *bool       `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Communities  []Community `json:"communities" yaml:"communities"`
	AIKeywords   []string    `json:"ai_keywords" yaml:"ai_keywords"`
	PerCommunity int         `json:"per_community" yaml:"per_community"`
}

// OfficialFeed is one official blog or release feed.
type OfficialFeed struct {
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label" yaml:"label"`
}

// OfficialConfig configures the official blog feeds blended into the CG
// section.
type OfficialConfig struct {
	Enabled    *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Feeds      []OfficialFeed `json:"feeds" yaml:"feeds"`
	AIKeywords []string       `json:"ai_keywords" yaml:"ai_keywords"`
	PerFeed    int            `json:"per_feed" yaml:"per_feed"`
}

// ProductHuntConfig configures the product-launch feed.
type ProductHuntConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	RSSURL  string `json:"rss_url" yaml:"rss_url"`
}

// SkillsConfig configures the skill directory.
type SkillsConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	URL     string `json:"url" yaml:"url"`
}

// HuggingFaceConfig configures the paper directory.
type HuggingFaceConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	URL     string `json:"url" yaml:"url"`
}

// BlueskyConfig configures the social feed.
type BlueskyConfig struct {
	Enabled  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Accounts []string `json:"accounts" yaml:"accounts"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// SourcesConfig groups per-source options.
type SourcesConfig struct {
	Arxiv       ArxivConfig       `json:"arxiv" yaml:"arxiv"`
	GitHub      GitHubConfig      `json:"github" yaml:"github"`
	HackerNews  HackerNewsConfig  `json:"hackernews" yaml:"hackernews"`
	Reddit      RedditConfig      `json:"reddit" yaml:"reddit"`
	CG          CGConfig          `json:"cg" yaml:"cg"`
	Official    OfficialConfig    `json:"official" yaml:"official"`
	ProductHunt ProductHuntConfig `json:"product_hunt" yaml:"product_hunt"`
	Skills      SkillsConfig      `json:"skills" yaml:"skills"`
	HuggingFace HuggingFaceConfig `json:"huggingface" yaml:"huggingface"`
	Bluesky     BlueskyConfig     `json:"bluesky" yaml:"bluesky"`
}

// TranslationConfig holds settings for the summary translation collaborator.
type TranslationConfig struct {
	// Enabled turns translated summaries on (default true).
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Endpoint is the translation API URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// TargetLang is the target language code (default "zh-CN").
	TargetLang string `json:"target_lang" yaml:"target_lang"`

	// MaxAttempts is the number of translation attempts (default 5).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// ReportConfig holds settings for the Markdown report renderer.
type ReportConfig struct {
	// OutputDir is where <date>.md reports are written (default "daily_news").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Title is the report heading prefix.
	Title string `json:"title" yaml:"title"`

	// ImageDir is the relative path prefix for section banner images.
	ImageDir string `json:"image_dir" yaml:"image_dir"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path" yaml:"path"`
}

// Config is the process-wide configuration. It is built once at startup,
// never mutated afterwards, and passed by pointer into every stage.
type Config struct {
	// BlacklistKeywords drop any item whose title or summary contains one
	// of them (case-insensitive substring).
	BlacklistKeywords []string `json:"blacklist_keywords" yaml:"blacklist_keywords"`

	// TagRules maps a tag name to the keywords that trigger it.
	TagRules map[string][]string `json:"tag_rules" yaml:"tag_rules"`

	// PriorityGroupingKeys receive two guaranteed slots in the community
	// selector instead of one.
	PriorityGroupingKeys []string `json:"priority_grouping_keys" yaml:"priority_grouping_keys"`

	// MinScorePerSource drops items below a per-source upstream score.
	MinScorePerSource map[Source]int `json:"min_score_per_source" yaml:"min_score_per_source"`

	// CapacityPerSource bounds each source's output.
	CapacityPerSource map[Source]int `json:"capacity_per_source" yaml:"capacity_per_source"`

	// Deduplicate enables cross-source URL deduplication (default true).
	Deduplicate *bool `json:"deduplicate,omitempty" yaml:"deduplicate,omitempty"`

	Sources     SourcesConfig     `json:"sources" yaml:"sources"`
	Translation TranslationConfig `json:"translation" yaml:"translation"`
	Report      ReportConfig      `json:"report" yaml:"report"`
	History     HistoryConfig     `json:"history" yaml:"history"`
	HTTP        HTTPConfig        `json:"http" yaml:"http"`
}

// MinScore returns the configured minimum upstream score for s, falling
// back to the built-in default.
func (c *Config) MinScore(s Source) int {
	if c != nil {
		if v, ok := c.MinScorePerSource[s]; ok {
			return v
		}
	}
	return defaultMinScores[s]
}

// Capacity returns the configured output bound for s, falling back to the
// built-in default. Zero means unbounded.
func (c *Config) Capacity(s Source) int {
	if c != nil {
		if v, ok := c.CapacityPerSource[s]; ok && v > 0 {
			return v
		}
	}
	return defaultCapacities[s]
}

// Blacklist returns the exclusion keywords, or the built-in list when none
// are configured.
func (c *Config) Blacklist() []string {
	if c == nil || len(c.BlacklistKeywords) == 0 {
		return defaultBlacklist
	}
	return c.BlacklistKeywords
}

// PriorityKeys returns the priority grouping keys for the community
// selector.
func (c *Config) PriorityKeys() []string {
	if c == nil || c.PriorityGroupingKeys == nil {
		return defaultPriorityKeys
	}
	return c.PriorityGroupingKeys
}

// DeduplicateEnabled reports whether cross-source deduplication runs.
func (c *Config) DeduplicateEnabled() bool {
	if c == nil || c.Deduplicate == nil {
		return true
	}
	return *c.Deduplicate
}

// SourceEnabled reports whether s should run during an "all sources" run.
func (c *Config) SourceEnabled(s Source) bool {
	if c == nil {
		return s != SourceSkills
	}
	var flag *bool
	switch s {
	case SourceArxiv:
		flag = c.Sources.Arxiv.Enabled
	case SourceGitHub:
		flag = c.Sources.GitHub.Enabled
	case SourceHackerNews:
		flag = c.Sources.HackerNews.Enabled
	case SourceReddit:
		flag = c.Sources.Reddit.Enabled
	case SourceRedditCG:
		flag = c.Sources.CG.Enabled
	case SourceOfficial:
		flag = c.Sources.Official.Enabled
	case SourceProductHunt:
		flag = c.Sources.ProductHunt.Enabled
	case SourceSkills:
		// The leaderboard scrape is opt-in.
		if c.Sources.Skills.Enabled == nil {
			return false
		}
		flag = c.Sources.Skills.Enabled
	case SourceHuggingFace:
		flag = c.Sources.HuggingFace.Enabled
	case SourceBluesky:
		flag = c.Sources.Bluesky.Enabled
	}
	return flag == nil || *flag
}

// TranslationEnabled reports whether summaries are translated.
func (c *Config) TranslationEnabled() bool {
	if c == nil || c.Translation.Enabled == nil {
		return true
	}
	return *c.Translation.Enabled
}

// HistoryEnabled reports whether runs are recorded in the history store.
func (c *Config) HistoryEnabled() bool {
	if c == nil || c.History.Enabled == nil {
		return true
	}
	return *c.History.Enabled
}
