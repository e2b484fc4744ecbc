// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// mockSource returns canned items or an error.
type mockSource struct {
	name  types.Source
	items []types.Item
	err   error
	calls int
}

func (m *mockSource) Name() types.Source { return m.name }

func (m *mockSource) Collect(context.Context) ([]types.Item, error) {
	m.calls++
	return m.items, m.err
}

var fixedNow = time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)

func newTestPipeline(cfg *types.Config, sources ...Source) *Pipeline {
	p := New(cfg, sources, zerolog.Nop())
	p.Now = func() time.Time { return fixedNow }
	return p
}

func item(src types.Source, title, url string, score int) types.Item {
	return types.Item{Title: title, URL: url, Source: src, Score: score}
}

func titles(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestRun_AcademicEndToEnd(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Sources.Arxiv.Keywords = []string{"alpha", "beta"}
	cfg.MinScorePerSource[types.SourceArxiv] = 0
	cfg.CapacityPerSource[types.SourceArxiv] = 2
	n := normalize.New(cfg, zerolog.Nop())

	entries := []normalize.ArxivEntry{
		{Title: "Alpha meets beta", Link: "https://arxiv.org/abs/1"},
		{Title: "Unrelated", Link: "https://arxiv.org/abs/2"},
		{Title: "Only alpha", Link: "https://arxiv.org/abs/3"},
	}
	src := funcSource{types.SourceArxiv, func(context.Context) ([]types.Item, error) {
		return n.Arxiv(entries), nil
	}}

	d, err := newTestPipeline(cfg, src).Run(context.Background(), "2026-10-19")
	require.NoError(t, err)

	got := d.Section(types.SectionArxiv)
	assert.Equal(t, []string{"Alpha meets beta", "Only alpha"}, titles(got))
	assert.Equal(t, 2, got[0].Score)
	assert.Equal(t, 1, got[1].Score)
	assert.Contains(t, got[0].Tags, "paper/research")
	assert.Equal(t, "2026-10-19", d.Date)
	assert.Equal(t, fixedNow, d.GeneratedAt)
}

func TestRun_SourceFailureIsolated(t *testing.T) {
	cfg := types.DefaultConfig()
	bad := &mockSource{name: types.SourceReddit, err: errors.New("HTTP 503")}
	good := &mockSource{name: types.SourceHackerNews, items: []types.Item{
		item(types.SourceHackerNews, "Show HN: GPU thing", "https://hn.example/1", 120),
	}}

	d, err := newTestPipeline(cfg, bad, good).Run(context.Background(), "2026-10-19")
	require.NoError(t, err)

	assert.Equal(t, 1, d.Total())
	assert.Equal(t, []types.SourceReport{
		{Source: types.SourceReddit, Error: "HTTP 503"},
		{Source: types.SourceHackerNews, Count: 1},
	}, d.Sources)
	assert.Equal(t, 1, bad.calls)
}

func TestRun_NoContent(t *testing.T) {
	cfg := types.DefaultConfig()
	d, err := newTestPipeline(cfg,
		&mockSource{name: types.SourceGitHub, err: errors.New("down")},
		&mockSource{name: types.SourceArxiv},
	).Run(context.Background(), "2026-10-19")

	assert.ErrorIs(t, err, ErrNoContent)
	require.NotNil(t, d)
	assert.Zero(t, d.Total())
	assert.Len(t, d.Sources, 2)
}

func TestRun_DedupFollowsSourceOrder(t *testing.T) {
	cfg := types.DefaultConfig()
	gh := &mockSource{name: types.SourceGitHub, items: []types.Item{
		item(types.SourceGitHub, "repo page", "https://x.com/a/", 900),
	}}
	ax := &mockSource{name: types.SourceArxiv, items: []types.Item{
		item(types.SourceArxiv, "paper page", "https://x.com/a?utm=1", 1),
	}}

	// GitHub runs first but arXiv precedes it in the merge order.
	d, err := newTestPipeline(cfg, gh, ax).Run(context.Background(), "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Duplicates)
	assert.Equal(t, []string{"paper page"}, titles(d.Section(types.SectionArxiv)))
	assert.Empty(t, d.Section(types.SectionGitHub))

	off := false
	cfg.Deduplicate = &off
	d, err = newTestPipeline(cfg, gh, ax).Run(context.Background(), "2026-10-19")
	require.NoError(t, err)
	assert.Zero(t, d.Duplicates)
	assert.Equal(t, 2, d.Total())
}

func TestRun_TagsOnlyUntaggedItems(t *testing.T) {
	cfg := types.DefaultConfig()
	skill := item(types.SourceSkills, "find-skills", "https://skills.sh/a/b/find-skills", 99)
	skill.Tags = []string{"AI Agent", "Skill"}
	repo := item(types.SourceGitHub, "cuda-kernels", "https://github.com/a/cuda-kernels", 10)

	d, err := newTestPipeline(cfg,
		&mockSource{name: types.SourceSkills, items: []types.Item{skill}},
		&mockSource{name: types.SourceGitHub, items: []types.Item{repo}},
	).Run(context.Background(), "2026-10-19")
	require.NoError(t, err)

	assert.Equal(t, []string{"AI Agent", "Skill"}, d.Section(types.SectionSkills)[0].Tags)
	assert.Equal(t, []string{"GPU", "open-source project"}, d.Section(types.SectionGitHub)[0].Tags)
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &mockSource{name: types.SourceGitHub}

	_, err := newTestPipeline(types.DefaultConfig(), src).Run(ctx, "2026-10-19")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.calls)
}

func TestMerge_FixedOrder(t *testing.T) {
	results := []SourceResult{
		{Source: types.SourceHuggingFace, Items: []types.Item{item(types.SourceHuggingFace, "hf", "u1", 0)}},
		{Source: types.SourceOfficial, Items: []types.Item{item(types.SourceOfficial, "off", "u2", 0)}},
		{Source: types.SourceBluesky, Items: []types.Item{item(types.SourceBluesky, "bsky", "u3", 0)}},
		{Source: types.SourceRedditCG, Items: []types.Item{item(types.SourceRedditCG, "cg", "u4", 0)}},
		{Source: types.SourceArxiv, Items: []types.Item{item(types.SourceArxiv, "arxiv", "u5", 0)}},
	}
	assert.Equal(t, []string{"arxiv", "bsky", "cg", "hf", "off"}, titles(Merge(results)))
}

func TestGroup(t *testing.T) {
	items := []types.Item{
		item(types.SourceArxiv, "a", "u1", 0),
		item(types.SourceOfficial, "official", "u2", 0),
		item(types.SourceRedditCG, "community", "u3", 0),
		item(types.SourceGitHub, "g", "u4", 0),
	}
	sections := Group(items)

	require.Len(t, sections, 3)
	assert.Equal(t, types.SectionGitHub, sections[0].Key)
	assert.Equal(t, types.SectionCG, sections[1].Key)
	assert.Equal(t, []string{"official", "community"}, titles(sections[1].Items))
	assert.Equal(t, types.SectionArxiv, sections[2].Key)
}

func TestFilter(t *testing.T) {
	sources := []Source{
		&mockSource{name: types.SourceArxiv},
		&mockSource{name: types.SourceGitHub},
	}

	got, err := Filter(sources)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Filter(sources, types.SourceGitHub)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.SourceGitHub, got[0].Name())

	_, err = Filter(sources, types.SourceBluesky)
	assert.Error(t, err)
}
