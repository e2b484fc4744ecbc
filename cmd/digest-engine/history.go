// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/history"
	"github.com/pdiddy/digest-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long: `History queries the run database written by fetch. Each subcommand
reads the latest run recorded for --date.`,
}

var historyTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show how many cards carry each tag, per section",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, date, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		dist, err := store.TagDistribution(cmd.Context(), date)
		if err != nil {
			return err
		}
		tags := make([]string, 0, len(dist))
		for t := range dist {
			tags = append(tags, t)
		}
		sort.Strings(tags)

		for _, t := range tags {
			name := t
			if name == "" {
				name = "(untagged)"
			}
			total := 0
			for _, n := range dist[t] {
				total += n
			}
			fmt.Printf("%-24s %3d", name, total)
			for _, sec := range types.SectionOrder {
				if n := dist[t][sec]; n > 0 {
					fmt.Printf("  %s=%d", sec, n)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

var historyDupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "List titles that appear on more than one card",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, date, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		dupes, err := store.DuplicateTitles(cmd.Context(), date)
		if err != nil {
			return err
		}
		if len(dupes) == 0 {
			fmt.Println("no duplicate titles")
			return nil
		}
		for _, d := range dupes {
			fmt.Printf("%3d  %s\n", d.Count, d.Title)
		}
		return nil
	},
}

var historySectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Count cards per section",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, date, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		counts, err := store.SectionCounts(cmd.Context(), date)
		if err != nil {
			return err
		}
		total := 0
		for _, sec := range types.SectionOrder {
			if n, ok := counts[sec]; ok {
				fmt.Printf("%-12s %3d\n", sec, n)
				total += n
			}
		}
		fmt.Printf("%-12s %3d\n", "total", total)
		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().String("date", "", "report date YYYY-MM-DD (default today)")

	historyCmd.AddCommand(historyTagsCmd, historyDupesCmd, historySectionsCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(cmd *cobra.Command) (*history.Store, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return nil, "", err
	}
	return store, date, nil
}
