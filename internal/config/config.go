// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Loaded by Load: defaults, then an optional YAML file, then environment
// variables.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DatasetConfig locates the source CSV files and tunes the DuckDB reader.
type DatasetConfig struct {
	BooksPath   string `koanf:"books_path" validate:"required"`
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// UsersPath is optional; an empty path skips the users table.
	UsersPath string `koanf:"users_path"`

	// MaxMemory is passed to DuckDB as max_memory (e.g. "1GB").
	MaxMemory string `koanf:"max_memory" validate:"required"`

	// Threads for DuckDB; 0 = runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0,max=256"`

	LoadTimeout time.Duration `koanf:"load_timeout" validate:"gt=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Address returns host:port for net.Listen.
func (s *ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds browser-facing protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds engine thresholds and lookup limits.
type RecommendConfig struct {
	// MinSupport is the rating count a title must exceed to be listed by
	// the quality ranking.
	MinSupport    int `koanf:"min_support" validate:"min=0"`
	TopCount      int `koanf:"top_count" validate:"min=1"`
	FallbackCount int `koanf:"fallback_count" validate:"min=1"`

	// ExpertMinRatings: users need strictly more ratings to be experts.
	ExpertMinRatings int `koanf:"expert_min_ratings" validate:"min=0"`

	// FamousMinRatings: titles need at least this many expert ratings.
	FamousMinRatings int `koanf:"famous_min_ratings" validate:"min=1"`

	SimilarCount int `koanf:"similar_count" validate:"min=1"`
	AuthorCount  int `koanf:"author_count" validate:"min=1"`
	MaxCount     int `koanf:"max_count" validate:"min=1"`

	// Workers for the similarity precompute; 0 = runtime.NumCPU().
	Workers int `koanf:"workers" validate:"min=0"`

	BuildTimeout    time.Duration `koanf:"build_timeout" validate:"gt=0"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=0"`
}

// String summarises the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("books=%s ratings=%s users=%s listen=%s min_support=%d expert>%d famous>=%d",
		c.Dataset.BooksPath, c.Dataset.RatingsPath, c.Dataset.UsersPath, c.Server.Address(),
		c.Recommend.MinSupport, c.Recommend.ExpertMinRatings, c.Recommend.FamousMinRatings)
}
