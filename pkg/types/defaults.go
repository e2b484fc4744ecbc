// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultUserAgent mimics a desktop browser; GitHub and Reddit throttle
// obvious bots harder.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var defaultMinScores = map[Source]int{
	SourceHackerNews: 50,
	SourceReddit:     50,
	SourceRedditCG:   10,
}

var defaultCapacities = map[Source]int{
	SourceArxiv:       30,
	SourceGitHub:      20,
	SourceHackerNews:  15,
	SourceReddit:      20,
	SourceRedditCG:    30,
	SourceOfficial:    15,
	SourceProductHunt: 15,
	SourceSkills:      15,
	SourceHuggingFace: 10,
	SourceBluesky:     15,
}

var defaultBlacklist = []string{
	"blockchain", "crypto", "nft", "web3", "bitcoin", "ethereum", "token",
}

var defaultPriorityKeys = []string{"unrealengine", "unrealengine5", "gamedev"}

// DefaultTagRules is the keyword rule set used when the config file
// defines none.
func DefaultTagRules() map[string][]string {
	return map[string][]string{
		"LLM":             {"llm", "gpt", "language model", "claude", "gemini", "llama", "mistral"},
		"AI Agent":        {"agent", "agentic", "mcp", "tool use"},
		"computer vision": {"vision", "image", "segmentation", "detection", "cs.cv"},
		"generative":      {"diffusion", "generative", "stable diffusion", "midjourney", "sora"},
		"3D":              {"3d", "nerf", "gaussian", "splat", "radiance field", "mesh"},
		"rendering":       {"rendering", "ray tracing", "shader", "path tracing", "real-time", "cs.gr"},
		"game engine":     {"unreal", "ue5", "unity", "godot", "game engine", "nanite", "lumen"},
		"DCC tools":       {"blender", "houdini", "cinema 4d", "maya", "substance"},
		"GPU":             {"gpu", "cuda", "rtx", "tensor core", "vulkan"},
		"web graphics":    {"three.js", "threejs", "webgl", "webgpu"},
		"robotics":        {"robot", "embodied", "manipulation"},
		"developer tools": {"cli", "sdk", "framework", "library", "ide"},
	}
}

// DefaultConfig returns a fully populated configuration. Loading a file
// overlays it; any key the file omits keeps these values.
func DefaultConfig() *Config {
	dedup := true
	return &Config{
		BlacklistKeywords:    append([]string(nil), defaultBlacklist...),
		TagRules:             DefaultTagRules(),
		PriorityGroupingKeys: append([]string(nil), defaultPriorityKeys...),
		MinScorePerSource:    copyIntMap(defaultMinScores),
		CapacityPerSource:    copyIntMap(defaultCapacities),
		Deduplicate:          &dedup,
		Sources:              defaultSources(),
		Translation: TranslationConfig{
			Endpoint:    "https://translate.googleapis.com/translate_a/single",
			TargetLang:  "zh-CN",
			MaxAttempts: 5,
		},
		Report: ReportConfig{
			OutputDir: "daily_news",
			Title:     "AI & CG Daily Digest",
			ImageDir:  "../img",
		},
		History: HistoryConfig{
			Path: "data/digest.db",
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			UserAgent:  DefaultUserAgent,
			MaxRetries: 3,
		},
	}
}

func defaultSources() SourcesConfig {
	return SourcesConfig{
		Arxiv: ArxivConfig{
			Categories: []string{"cs.AI", "cs.GR", "cs.CV"},
			Keywords: []string{
				"neural rendering", "diffusion", "transformer", "ray tracing",
				"real-time", "GPU", "3D", "generative", "NeRF", "Gaussian",
				"language model", "vision", "multimodal", "embodied",
			},
		},
		GitHub: GitHubConfig{
			Since:    "daily",
			Keywords: []string{"graphics", "rendering", "ai", "ml", "neural", "3d", "gpu", "cuda"},
		},
		HackerNews: HackerNewsConfig{
			Keywords:   []string{"ai", "graphics"},
			MaxStories: 100,
		},
		Reddit: RedditConfig{
			Subreddits: []string{
				"MachineLearning", "GraphicsProgramming", "computergraphics",
				"LocalLLaMA", "artificial", "unrealengine", "unrealengine5", "gamedev",
			},
			PerCommunity: 15,
		},
		CG: CGConfig{
			Communities: []Community{
				{Subreddit: "unrealengine", Label: "Unreal Engine"},
				{Subreddit: "unrealengine5", Label: "UE5"},
				{Subreddit: "threejs", Label: "Three.js"},
				{Subreddit: "blender", Label: "Blender"},
				{Subreddit: "blenderhelp", Label: "Blender Help"},
				{Subreddit: "Cinema4D", Label: "Cinema 4D"},
				{Subreddit: "Houdini", Label: "Houdini"},
				{Subreddit: "shaders", Label: "Shaders"},
				{Subreddit: "opengl", Label: "OpenGL"},
				{Subreddit: "computergraphics", Label: "CG"},
				{Subreddit: "GraphicsProgramming", Label: "Graphics"},
			},
			AIKeywords: []string{
				"ai", "machine learning", "ml", "neural", "deep learning",
				"gpt", "llm", "diffusion", "stable diffusion", "midjourney",
				"generative", "procedural", "automated", "artificial intelligence",
				"comfyui", "automatic", "dall-e", "dalle", "sora", "kling",
				"nerf", "gaussian", "splat", "3d gaussian", "radiance field",
			},
			PerCommunity: 15,
		},
		Official: OfficialConfig{
			Feeds: []OfficialFeed{
				{Name: "Unreal Engine", URL: "https://www.unrealengine.com/en-US/rss", Label: "UE Official"},
				{Name: "Blender", URL: "https://www.blender.org/feed/", Label: "Blender Official"},
				{Name: "Three.js", URL: "https://github.com/mrdoob/three.js/releases.atom", Label: "Three.js Releases"},
				{Name: "Houdini", URL: "https://www.sidefx.com/feed/", Label: "Houdini Official"},
				{Name: "Unity", URL: "https://blog.unity.com/feed", Label: "Unity Official"},
				{Name: "Godot", URL: "https://godotengine.org/rss.xml", Label: "Godot Official"},
				{Name: "NVIDIA", URL: "https://developer.nvidia.com/blog/feed/", Label: "NVIDIA Dev"},
			},
			AIKeywords: []string{
				"ai", "machine learning", "neural", "deep learning",
				"diffusion", "generative", "gaussian", "nerf", "dlss",
				"ray tracing", "rtx", "tensor",
			},
			PerFeed: 5,
		},
		ProductHunt: ProductHuntConfig{
			RSSURL: "https://www.producthunt.com/feed",
		},
		Skills: SkillsConfig{
			URL: "https://skills.sh/trending",
		},
		HuggingFace: HuggingFaceConfig{
			URL: "https://huggingface.co/api/daily_papers",
		},
		Bluesky: BlueskyConfig{
			Accounts: []string{"jay.bsky.team", "simonwillison.net", "stratechery.com", "arstechnica.com"},
			Keywords: []string{
				"ai", "gpt", "llm", "diffusion", "neural", "rendering",
				"3d", "graphics", "cuda", "gpu", "transformer", "model",
				"paper", "research", "release", "open source",
				"unreal", "ue5", "game dev", "nanite", "lumen",
			},
		},
	}
}

// ApplyDefaults fills zero-valued options that a loaded file cleared. It
// never overrides a value the file set.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()

	if c.TagRules == nil {
		c.TagRules = d.TagRules
	}
	if c.MinScorePerSource == nil {
		c.MinScorePerSource = d.MinScorePerSource
	}
	if c.CapacityPerSource == nil {
		c.CapacityPerSource = d.CapacityPerSource
	}

	s, ds := &c.Sources, d.Sources
	if len(s.Arxiv.Categories) == 0 {
		s.Arxiv.Categories = ds.Arxiv.Categories
	}
	if len(s.Arxiv.Keywords) == 0 {
		s.Arxiv.Keywords = ds.Arxiv.Keywords
	}
	if s.GitHub.Since == "" {
		s.GitHub.Since = ds.GitHub.Since
	}
	if len(s.GitHub.Keywords) == 0 {
		s.GitHub.Keywords = ds.GitHub.Keywords
	}
	if len(s.HackerNews.Keywords) == 0 {
		s.HackerNews.Keywords = ds.HackerNews.Keywords
	}
	if s.HackerNews.MaxStories <= 0 {
		s.HackerNews.MaxStories = ds.HackerNews.MaxStories
	}
	if len(s.Reddit.Subreddits) == 0 {
		s.Reddit.Subreddits = ds.Reddit.Subreddits
	}
	if s.Reddit.PerCommunity <= 0 {
		s.Reddit.PerCommunity = ds.Reddit.PerCommunity
	}
	if len(s.CG.Communities) == 0 {
		s.CG.Communities = ds.CG.Communities
	}
	if len(s.CG.AIKeywords) == 0 {
		s.CG.AIKeywords = ds.CG.AIKeywords
	}
	if s.CG.PerCommunity <= 0 {
		s.CG.PerCommunity = ds.CG.PerCommunity
	}
	if len(s.Official.Feeds) == 0 {
		s.Official.Feeds = ds.Official.Feeds
	}
	if len(s.Official.AIKeywords) == 0 {
		s.Official.AIKeywords = ds.Official.AIKeywords
	}
	if s.Official.PerFeed <= 0 {
		s.Official.PerFeed = ds.Official.PerFeed
	}
	if s.ProductHunt.RSSURL == "" {
		s.ProductHunt.RSSURL = ds.ProductHunt.RSSURL
	}
	if s.Skills.URL == "" {
		s.Skills.URL = ds.Skills.URL
	}
	if s.HuggingFace.URL == "" {
		s.HuggingFace.URL = ds.HuggingFace.URL
	}
	if len(s.Bluesky.Accounts) == 0 {
		s.Bluesky.Accounts = ds.Bluesky.Accounts
	}
	if len(s.Bluesky.Keywords) == 0 {
		s.Bluesky.Keywords = ds.Bluesky.Keywords
	}

	if c.Translation.Endpoint == "" {
		c.Translation.Endpoint = d.Translation.Endpoint
	}
	if c.Translation.TargetLang == "" {
		c.Translation.TargetLang = d.Translation.TargetLang
	}
	if c.Translation.MaxAttempts <= 0 {
		c.Translation.MaxAttempts = d.Translation.MaxAttempts
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = d.Report.OutputDir
	}
	if c.Report.Title == "" {
		c.Report.Title = d.Report.Title
	}
	if c.Report.ImageDir == "" {
		c.Report.ImageDir = d.Report.ImageDir
	}
	if c.History.Path == "" {
		c.History.Path = d.History.Path
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = d.HTTP.UserAgent
	}
	if c.HTTP.MaxRetries <= 0 {
		c.HTTP.MaxRetries = d.HTTP.MaxRetries
	}
}

func copyIntMap(m map[Source]int) map[Source]int {
	out := make(map[Source]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
