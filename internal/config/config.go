// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the read-only run configuration from an optional
// YAML file, an optional .env file and DIGEST_ENGINE_* overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Load reads the YAML file at path over built-in defaults. An empty path
// yields the defaults. Keys the file omits keep their default values.
func Load(path string) (*types.Config, error) {
	if path == "" {
		return types.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. Lists and maps in the document replace
// the defaults rather than merging with them.
func Parse(data []byte) (*types.Config, error) {
	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyOverrides copies scalar settings that v holds (bound flags or
// DIGEST_ENGINE_* variables) onto cfg.
func ApplyOverrides(cfg *types.Config, v *viper.Viper) {
	if v == nil {
		return
	}
	str := func(key string, dst *string) {
		if v.IsSet(key) && v.GetString(key) != "" {
			*dst = v.GetString(key)
		}
	}
	flag := func(key string) *bool {
		if !v.IsSet(key) {
			return nil
		}
		b := v.GetBool(key)
		return &b
	}

	str("report.output_dir", &cfg.Report.OutputDir)
	str("report.title", &cfg.Report.Title)
	str("report.image_dir", &cfg.Report.ImageDir)
	str("translation.target_lang", &cfg.Translation.TargetLang)
	str("translation.endpoint", &cfg.Translation.Endpoint)
	str("history.path", &cfg.History.Path)
	str("http.user_agent", &cfg.HTTP.UserAgent)

	if b := flag("translation.enabled"); b != nil {
		cfg.Translation.Enabled = b
	}
	if b := flag("history.enabled"); b != nil {
		cfg.History.Enabled = b
	}
	if b := flag("deduplicate"); b != nil {
		cfg.Deduplicate = b
	}
	if v.IsSet("http.timeout") && v.GetDuration("http.timeout") > 0 {
		cfg.HTTP.Timeout = v.GetDuration("http.timeout")
	}
	if v.IsSet("http.max_retries") && v.GetInt("http.max_retries") > 0 {
		cfg.HTTP.MaxRetries = v.GetInt("http.max_retries")
	}
}

// LoadEnv loads the first existing .env file among paths without
// overriding variables already set in the process environment. It returns
// the file loaded, or "" when none exists.
func LoadEnv(paths ...string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("checking env file %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("loading env file %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}
