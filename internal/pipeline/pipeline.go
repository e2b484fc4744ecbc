// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs every source, merges their selections in a fixed
// order, removes cross-source duplicates, assigns tags and groups the
// result into report sections.
//
// A source that fails contributes nothing and is reported in the digest;
// only a run in which every source came back empty is an error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/internal/dedup"
	"github.com/pdiddy/digest-engine/internal/tagging"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// ErrNoContent is returned when no source produced any item.
var ErrNoContent = errors.New("no content: every source produced zero items")

// Source fetches, normalizes and selects the items of one upstream.
type Source interface {
	Name() types.Source
	Collect(ctx context.Context) ([]types.Item, error)
}

// SourceResult is the outcome of one source. Err is set when the source
// was unavailable; Items is then empty.
type SourceResult struct {
	Source types.Source
	Items  []types.Item
	Err    error
}

// Pipeline holds the configured sources and the shared stages.
type Pipeline struct {
	Sources []Source
	Config  *types.Config
	Tagger  *tagging.Engine
	Log     zerolog.Logger

	// Now stamps the digest; tests replace it.
	Now func() time.Time
}

// New returns a pipeline over sources using the tag rules of cfg.
func New(cfg *types.Config, sources []Source, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Sources: sources,
		Config:  cfg,
		Tagger:  tagging.New(cfg.TagRules),
		Log:     log,
		Now:     time.Now,
	}
}

// Run executes every source in turn and builds the digest for date. It
// returns ErrNoContent, along with the empty digest, when nothing survived.
func (p *Pipeline) Run(ctx context.Context, date string) (*types.Digest, error) {
	results := make([]SourceResult, 0, len(p.Sources))
	for _, s := range p.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, p.collect(ctx, s))
	}

	all := Merge(results)
	items, removed := dedup.Apply(all, p.Config.DeduplicateEnabled())
	if removed > 0 {
		p.Log.Info().Int("removed", removed).Msg("removed duplicate urls")
	}
	p.Tagger.Assign(items)

	d := &types.Digest{
		Date:        date,
		GeneratedAt: p.Now(),
		Sections:    Group(items),
		Sources:     reports(results),
		Duplicates:  removed,
	}
	if d.Total() == 0 {
		return d, ErrNoContent
	}
	return d, nil
}

func (p *Pipeline) collect(ctx context.Context, s Source) SourceResult {
	name := s.Name()
	start := time.Now()
	items, err := s.Collect(ctx)
	if err != nil {
		p.Log.Warn().Str("source", string(name)).Err(err).Msg("source unavailable")
		return SourceResult{Source: name, Err: err}
	}
	p.Log.Info().Str("source", string(name)).Int("items", len(items)).
		Dur("elapsed", time.Since(start)).Msg("source collected")
	return SourceResult{Source: name, Items: items}
}

// Merge concatenates the results in the fixed cross-source order
// (types.AllSources); sources outside that list follow in run order.
func Merge(results []SourceResult) []types.Item {
	rank := make(map[types.Source]int, len(types.AllSources))
	for i, s := range types.AllSources {
		rank[s] = i
	}
	pos := func(s types.Source) int {
		if r, ok := rank[s]; ok {
			return r
		}
		return len(rank)
	}

	ordered := append([]SourceResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return pos(ordered[i].Source) < pos(ordered[j].Source)
	})

	var all []types.Item
	for _, r := range ordered {
		all = append(all, r.Items...)
	}
	return all
}

// Group splits items into sections in render order, keeping item order
// within each section. Empty sections are omitted.
func Group(items []types.Item) []types.Section {
	bySection := make(map[types.SectionKey][]types.Item)
	for _, it := range items {
		k := types.SectionFor(it.Source)
		bySection[k] = append(bySection[k], it)
	}

	var sections []types.Section
	for _, k := range types.SectionOrder {
		if len(bySection[k]) > 0 {
			sections = append(sections, types.Section{Key: k, Items: bySection[k]})
		}
	}
	return sections
}

func reports(results []SourceResult) []types.SourceReport {
	out := make([]types.SourceReport, len(results))
	for i, r := range results {
		out[i] = types.SourceReport{Source: r.Source, Count: len(r.Items)}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}

// Filter keeps the sources named in only, or every source when only is
// empty. It fails on a name no source answers to.
func Filter(sources []Source, only ...types.Source) ([]Source, error) {
	if len(only) == 0 {
		return sources, nil
	}
	want := make(map[types.Source]bool, len(only))
	for _, s := range only {
		want[s] = true
	}

	var out []Source
	for _, s := range sources {
		if want[s.Name()] {
			out = append(out, s)
			delete(want, s.Name())
		}
	}
	for s := range want {
		return nil, fmt.Errorf("unknown or disabled source %q", s)
	}
	return out, nil
}
