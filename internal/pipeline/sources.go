// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/fetch"
	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// blueskyPostsPerAccount bounds how many recent posts of one account are
// considered.
const blueskyPostsPerAccount = 10

// funcSource adapts a collect function to Source.
type funcSource struct {
	name    types.Source
	collect func(context.Context) ([]types.Item, error)
}

func (s funcSource) Name() types.Source { return s.name }

func (s funcSource) Collect(ctx context.Context) ([]types.Item, error) { return s.collect(ctx) }

// builder wires one fetch collaborator to its normalizer and selector.
type builder struct {
	cfg *types.Config
	f   *fetch.Collaborators
	n   *normalize.Normalizer
	log zerolog.Logger
}

// Sources returns one Source per upstream in types.AllSources order,
// followed by the standalone official-blog view. The official feeds are
// also blended into the CG source, so an all-sources run leaves the
// standalone view out (see Enabled).
func Sources(cfg *types.Config, f *fetch.Collaborators, n *normalize.Normalizer, log zerolog.Logger) []Source {
	b := builder{cfg: cfg, f: f, n: n, log: log}
	return []Source{
		funcSource{types.SourceArxiv, b.arxiv},
		funcSource{types.SourceGitHub, b.github},
		funcSource{types.SourceHackerNews, b.hackerNews},
		funcSource{types.SourceReddit, b.reddit},
		funcSource{types.SourceBluesky, b.bluesky},
		funcSource{types.SourceRedditCG, b.cg},
		funcSource{types.SourceProductHunt, b.productHunt},
		funcSource{types.SourceSkills, b.skills},
		funcSource{types.SourceHuggingFace, b.huggingFace},
		funcSource{types.SourceOfficial, b.official},
	}
}

// Enabled keeps the sources an all-sources run uses: those listed in
// types.AllSources that cfg does not disable.
func Enabled(cfg *types.Config, sources []Source) []Source {
	var out []Source
	for _, s := range sources {
		if slices.Contains(types.AllSources, s.Name()) && cfg.SourceEnabled(s.Name()) {
			out = append(out, s)
		}
	}
	return out
}

func (b builder) arxiv(ctx context.Context) ([]types.Item, error) {
	cats := b.cfg.Sources.Arxiv.Categories
	per := normalize.PerCategoryLimit(b.cfg.Capacity(types.SourceArxiv), len(cats))
	entries, err := b.f.Arxiv.Fetch(ctx, cats, per)
	if err != nil {
		return nil, err
	}
	return b.n.Arxiv(entries), nil
}

func (b builder) github(ctx context.Context) ([]types.Item, error) {
	gh := b.cfg.Sources.GitHub
	repos, err := b.f.GitHub.Fetch(ctx, gh.Language, gh.Since)
	if err != nil {
		return nil, err
	}
	return b.n.GitHub(repos), nil
}

func (b builder) hackerNews(ctx context.Context) ([]types.Item, error) {
	stories, err := b.f.HackerNews.Fetch(ctx, b.cfg.Sources.HackerNews.MaxStories)
	if err != nil {
		return nil, err
	}
	return b.n.HackerNews(stories), nil
}

func (b builder) reddit(ctx context.Context) ([]types.Item, error) {
	rc := b.cfg.Sources.Reddit
	posts, err := each(ctx, b.log, types.SourceReddit, rc.Subreddits, func(ctx context.Context, sub string) ([]normalize.RedditPost, error) {
		return b.f.Reddit.Fetch(ctx, sub, rc.PerCommunity)
	})
	if err != nil {
		return nil, err
	}
	return selection.QuotaSelect(b.n.Reddit(posts), b.cfg.PriorityKeys(), b.cfg.Capacity(types.SourceReddit)), nil
}

func (b builder) bluesky(ctx context.Context) ([]types.Item, error) {
	posts, err := each(ctx, b.log, types.SourceBluesky, b.cfg.Sources.Bluesky.Accounts, func(ctx context.Context, acct string) ([]normalize.BlueskyPost, error) {
		return b.f.Bluesky.Fetch(ctx, acct, blueskyPostsPerAccount)
	})
	if err != nil {
		return nil, err
	}
	return b.n.Bluesky(posts), nil
}

// cg blends the CG communities with the official blog feeds. It fails only
// when the communities failed and no official item came back.
func (b builder) cg(ctx context.Context) ([]types.Item, error) {
	cg := b.cfg.Sources.CG
	subs := make([]string, len(cg.Communities))
	for i, c := range cg.Communities {
		subs[i] = c.Subreddit
	}
	posts, commErr := each(ctx, b.log, types.SourceRedditCG, subs, func(ctx context.Context, sub string) ([]normalize.RedditPost, error) {
		return b.f.Reddit.Fetch(ctx, sub, cg.PerCommunity)
	})

	var official []types.Item
	if b.cfg.SourceEnabled(types.SourceOfficial) {
		var err error
		if official, err = b.officialItems(ctx); err != nil {
			b.log.Warn().Str("source", string(types.SourceOfficial)).Err(err).Msg("official feeds unavailable")
		}
	}
	if commErr != nil && len(official) == 0 {
		return nil, commErr
	}

	return selection.BlendCG(official, b.n.RedditCG(posts),
		b.cfg.Capacity(types.SourceOfficial), b.cfg.Capacity(types.SourceRedditCG)), nil
}

func (b builder) official(ctx context.Context) ([]types.Item, error) {
	items, err := b.officialItems(ctx)
	if err != nil {
		return nil, err
	}
	return selection.OfficialView(items, b.cfg.Capacity(types.SourceOfficial)), nil
}

func (b builder) officialItems(ctx context.Context) ([]types.Item, error) {
	feeds := b.cfg.Sources.Official.Feeds
	byURL := make(map[string]types.OfficialFeed, len(feeds))
	urls := make([]string, len(feeds))
	for i, f := range feeds {
		byURL[f.URL] = f
		urls[i] = f.URL
	}
	return each(ctx, b.log, types.SourceOfficial, urls, func(ctx context.Context, url string) ([]types.Item, error) {
		entries, err := b.f.Feeds.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		return b.n.Official(byURL[url], entries), nil
	})
}

func (b builder) productHunt(ctx context.Context) ([]types.Item, error) {
	entries, err := b.f.Feeds.Fetch(ctx, b.cfg.Sources.ProductHunt.RSSURL)
	if err != nil {
		return nil, err
	}
	return b.n.ProductHunt(entries), nil
}

func (b builder) skills(ctx context.Context) ([]types.Item, error) {
	lines, err := b.f.Skills.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return b.n.Skills(lines), nil
}

func (b builder) huggingFace(ctx context.Context) ([]types.Item, error) {
	papers, err := b.f.HuggingFace.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return b.n.HuggingFace(papers), nil
}

// each fetches every key in turn. A failing key is logged and skipped; an
// error is returned only when every key failed.
func each[T any](ctx context.Context, log zerolog.Logger, src types.Source, keys []string, fetchOne func(context.Context, string) ([]T, error)) ([]T, error) {
	var out []T
	var lastErr error
	failed := 0
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := fetchOne(ctx, k)
		if err != nil {
			log.Warn().Str("source", string(src)).Str("key", k).Err(err).Msg("fetch failed, skipping")
			failed++
			lastErr = err
			continue
		}
		out = append(out, recs...)
	}
	if len(keys) > 0 && failed == len(keys) {
		return nil, fmt.Errorf("all %d %s fetches failed: %w", failed, src, lastErr)
	}
	return out, nil
}
