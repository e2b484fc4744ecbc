// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const sampleYAML = `
blacklist_keywords: [casino]
tag_rules:
  Shaders: [glsl, hlsl]
priority_grouping_keys: []
min_score_per_source:
  hackernews: 100
capacity_per_source:
  reddit-cg: 25
deduplicate: false
sources:
  arxiv:
    categories: [cs.GR]
  skills:
    enabled: true
  cg:
    communities:
      - subreddit: blender
        label: Blender
http:
  timeout: 5s
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.Equal(t, 50, cfg.MinScore(types.SourceHackerNews))
	assert.True(t, cfg.DeduplicateEnabled())
	assert.False(t, cfg.SourceEnabled(types.SourceSkills))
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeFile(t, "digest-engine.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"casino"}, cfg.Blacklist())
	assert.Equal(t, map[string][]string{"Shaders": {"glsl", "hlsl"}}, cfg.TagRules)
	assert.Empty(t, cfg.PriorityKeys())
	assert.Equal(t, 100, cfg.MinScore(types.SourceHackerNews))
	assert.Equal(t, 50, cfg.MinScore(types.SourceReddit))
	assert.Equal(t, 25, cfg.Capacity(types.SourceRedditCG))
	assert.Equal(t, 30, cfg.Capacity(types.SourceArxiv))
	assert.False(t, cfg.DeduplicateEnabled())
	assert.True(t, cfg.SourceEnabled(types.SourceSkills))
	assert.Equal(t, []string{"cs.GR"}, cfg.Sources.Arxiv.Categories)
	assert.Equal(t, []types.Community{{Subreddit: "blender", Label: "Blender"}}, cfg.Sources.CG.Communities)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)

	// Omitted keys keep their defaults.
	assert.Equal(t, types.DefaultUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, "zh-CN", cfg.Translation.TargetLang)
	assert.Equal(t, 100, cfg.Sources.HackerNews.MaxStories)
	assert.NotEmpty(t, cfg.Sources.Official.Feeds)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "sources: [unclosed"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := types.DefaultConfig()
	v := viper.New()
	v.Set("report.output_dir", "/tmp/out")
	v.Set("translation.enabled", false)
	v.Set("http.timeout", "10s")
	v.Set("http.max_retries", 7)

	ApplyOverrides(cfg, v)

	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)
	assert.False(t, cfg.TranslationEnabled())
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 7, cfg.HTTP.MaxRetries)
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, "AI & CG Daily Digest", cfg.Report.Title)
}

func TestLoadEnv(t *testing.T) {
	got, err := LoadEnv(filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Empty(t, got)

	t.Setenv("DIGEST_ENGINE_TEST_KEEP", "process")
	p := writeFile(t, ".env", "DIGEST_ENGINE_TEST_KEEP=file\nDIGEST_ENGINE_TEST_NEW=loaded\n")
	t.Setenv("DIGEST_ENGINE_TEST_NEW", "")
	os.Unsetenv("DIGEST_ENGINE_TEST_NEW")

	got, err = LoadEnv("", p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, "process", os.Getenv("DIGEST_ENGINE_TEST_KEEP"))
	assert.Equal(t, "loaded", os.Getenv("DIGEST_ENGINE_TEST_NEW"))
}
