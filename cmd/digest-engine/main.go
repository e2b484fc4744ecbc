// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the digest-engine CLI.
//
// fetch runs every enabled source (or one), renders the daily report and
// records the run; history answers diagnostics questions about recorded
// runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/digest-engine/internal/config"
	"github.com/pdiddy/digest-engine/internal/logging"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built once the persistent flags are parsed.
var logger = zerolog.Nop()

// rootCmd is the base command for the digest-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "digest-engine",
	Short: "Aggregate AI and CG news into a daily Markdown digest",
	Long: `digest-engine collects items from academic feeds, trending repositories,
link aggregators, community and social feeds, product launches and official
blogs. Each source is normalized, scored and trimmed to a diverse selection;
the merged result is deduplicated by URL, tagged and rendered as a report of
HTML news cards.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		loaded, err := config.LoadEnv(envFile, ".env")
		if err != nil {
			return err
		}

		log, err := logging.New(viper.GetString("log.env"), viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = log
		if loaded != "" {
			logger.Debug().Str("path", loaded).Msg("loaded environment file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./digest-engine.yaml or ~/.config/digest-engine/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file loaded before configuration (default: ./.env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-env", "local", `logging environment; "local" logs to a console writer, anything else JSON`)

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.env", rootCmd.PersistentFlags().Lookup("log-env"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("digest-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "digest-engine"))
		}
	}

	viper.SetEnvPrefix("DIGEST_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the config file viper located (defaults when none)
// and applies flag and environment overrides.
func loadConfig() (*types.Config, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	config.ApplyOverrides(cfg, viper.GetViper())
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
