// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookrec/config.yaml",
	"/etc/bookrec/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the configuration used when nothing overrides it.
// The recommend thresholds are the ones the Book-Crossing data set was
// tuned with.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			BooksPath:   "data/Books.csv",
			RatingsPath: "data/Ratings.csv",
			UsersPath:   "data/Users.csv",
			MaxMemory:   "1GB",
			Threads:     0,
			LoadTimeout: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: RecommendConfig{
			MinSupport:       250,
			TopCount:         50,
			FallbackCount:    5,
			ExpertMinRatings: 200,
			FamousMinRatings: 50,
			SimilarCount:     5,
			AuthorCount:      3,
			MaxCount:         100,
			Workers:          0,
			BuildTimeout:     10 * time.Minute,
			CacheEnabled:     true,
			CacheTTL:         5 * time.Minute,
			CacheMaxEntries:  10000,
		},
	}
}

// Load builds the configuration from, in increasing priority:
//
//  1. Built-in defaults
//  2. A YAML file: path if non-empty, else CONFIG_PATH, else the first of
//     DefaultConfigPaths that exists
//  3. Environment variables (see envMappings)
//
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are keys that accept a comma-separated string from the
// environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
var envMappings = map[string]string{
	"bookrec_books_path":   "dataset.books_path",
	"bookrec_ratings_path": "dataset.ratings_path",
	"bookrec_users_path":   "dataset.users_path",
	"duckdb_max_memory":    "dataset.max_memory",
	"duckdb_threads":       "dataset.threads",
	"dataset_load_timeout": "dataset.load_timeout",

	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"recommend_min_support":        "recommend.min_support",
	"recommend_top_count":          "recommend.top_count",
	"recommend_fallback_count":     "recommend.fallback_count",
	"recommend_expert_min_ratings": "recommend.expert_min_ratings",
	"recommend_famous_min_ratings": "recommend.famous_min_ratings",
	"recommend_similar_count":      "recommend.similar_count",
	"recommend_author_count":       "recommend.author_count",
	"recommend_max_count":          "recommend.max_count",
	"recommend_workers":            "recommend.workers",
	"recommend_build_timeout":      "recommend.build_timeout",
	"recommend_cache_enabled":      "recommend.cache_enabled",
	"recommend_cache_ttl":          "recommend.cache_ttl",
	"recommend_cache_max_entries":  "recommend.cache_max_entries",
}

// envTransformFunc maps an environment variable to its config key. Unmapped
// variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
