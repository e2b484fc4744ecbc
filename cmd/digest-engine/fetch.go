// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/digest-engine/internal/fetch"
	"github.com/pdiddy/digest-engine/internal/history"
	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/internal/pipeline"
	"github.com/pdiddy/digest-engine/internal/report"
	"github.com/pdiddy/digest-engine/internal/translate"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const dateLayout = "2006-01-02"

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect every source and write the daily report",
	Long: `Fetch runs each enabled source (or only --source), keeps a bounded and
diverse selection per source, removes items whose URLs repeat across sources,
assigns tags and writes <output>/<date>.md. A source that fails is skipped
with a warning; the command fails only when no source produced anything.

Source names: arxiv, github, hn, reddit, cg, official, ph, skills, hf, bluesky.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("all", false, "run every enabled source (the default)")
	fetchCmd.Flags().String("source", "", "run a single source")
	fetchCmd.Flags().String("categories", "", "arXiv categories (comma-separated)")
	fetchCmd.Flags().String("keywords", "", "GitHub and Hacker News keywords (comma-separated)")
	fetchCmd.Flags().String("output", "", "report directory (default daily_news)")
	fetchCmd.Flags().String("date", "", "report date YYYY-MM-DD (default today)")
	fetchCmd.Flags().Bool("no-summary", false, "skip translated summaries")
	fetchCmd.MarkFlagsMutuallyExclusive("all", "source")

	viper.BindPFlag("report.output_dir", fetchCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("categories"); v != "" {
		cfg.Sources.Arxiv.Categories = splitList(v)
	}
	if v, _ := cmd.Flags().GetString("keywords"); v != "" {
		kws := splitList(v)
		cfg.Sources.GitHub.Keywords = kws
		cfg.Sources.HackerNews.Keywords = kws
	}
	if noSummary, _ := cmd.Flags().GetBool("no-summary"); noSummary {
		off := false
		cfg.Translation.Enabled = &off
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
	}

	client := httputil.NewClient(cfg.HTTP, logger)
	all := pipeline.Sources(cfg, fetch.New(client, cfg.Sources, logger), normalize.New(cfg, logger), logger)

	sources := pipeline.Enabled(cfg, all)
	if name, _ := cmd.Flags().GetString("source"); name != "" {
		src, ok := types.ParseSource(name)
		if !ok {
			return fmt.Errorf("unknown source %q", name)
		}
		if sources, err = pipeline.Filter(all, src); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	digest, err := pipeline.New(cfg, sources, logger).Run(ctx, date)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoContent) {
			printSources(digest)
		}
		return err
	}
	printSources(digest)

	var tr translate.Translator = translate.Passthrough{}
	if cfg.TranslationEnabled() {
		tr = translate.NewGoogle(cfg.Translation, client, logger)
	}
	path, err := report.New(cfg.Report, tr, logger).Write(ctx, digest)
	if err != nil {
		return err
	}

	if cfg.HistoryEnabled() {
		recordHistory(ctx, cfg.History.Path, report.Visible(digest))
	}

	fmt.Printf("Report: %s (%d items, %d duplicates removed)\n", path, digest.Total(), digest.Duplicates)
	return nil
}

// recordHistory stores the rendered run. Failures are logged, never fatal.
func recordHistory(ctx context.Context, path string, d *types.Digest) {
	store, err := history.NewStore(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("history unavailable")
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, d)
	if err != nil {
		logger.Warn().Err(err).Msg("recording run failed")
		return
	}
	logger.Debug().Str("run", id).Msg("run recorded")
}

func printSources(d *types.Digest) {
	if d == nil {
		return
	}
	for _, s := range d.Sources {
		if s.Error != "" {
			fmt.Fprintf(os.Stderr, "  %-12s failed: %s\n", s.Source, s.Error)
			continue
		}
		fmt.Fprintf(os.Stderr, "  %-12s %d items\n", s.Source, s.Count)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
