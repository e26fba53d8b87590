// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package recommend

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Popularity contains parameters for the popularity rankings.
	Popularity PopularityConfig `json:"popularity"`

	// Matrix contains the expert-user and famous-title thresholds.
	Matrix MatrixConfig `json:"matrix"`

	// Similarity contains parameters for the similarity precompute.
	Similarity SimilarityConfig `json:"similarity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// PopularityConfig contains parameters for the popularity rankings.
type PopularityConfig struct {
	// MinSupport is the rating count a title must exceed to enter the
	// quality ranking.
	// Default: 250.
	MinSupport int `json:"min_support"`

	// TopCount is the default size of the quality ranking.
	// Default: 50.
	TopCount int `json:"top_count"`

	// FallbackCount is the default size of the volume ranking.
	// Default: 5.
	FallbackCount int `json:"fallback_count"`
}

// MatrixConfig contains the thresholds that bound the interaction matrix.
type MatrixConfig struct {
	// ExpertMinRatings: users need strictly more ratings than this.
	// Default: 200.
	ExpertMinRatings int `json:"expert_min_ratings"`

	// FamousMinRatings: titles need at least this many expert ratings.
	// Default: 50.
	FamousMinRatings int `json:"famous_min_ratings"`
}

// SimilarityConfig contains parameters for the similarity precompute.
type SimilarityConfig struct {
	// NumWorkers is the number of goroutines computing similarity rows.
	// Default: runtime.NumCPU().
	NumWorkers int `json:"num_workers"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// SimilarCount is the default number of similar titles to return.
	// Default: 5.
	SimilarCount int `json:"similar_count"`

	// AuthorCount is the default number of author picks to return.
	// Default: 3.
	AuthorCount int `json:"author_count"`

	// MaxCount is the maximum count any lookup may request.
	// Default: 100.
	MaxCount int `json:"max_count"`

	// BuildTimeout bounds the whole engine build.
	// Default: 10m.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether lookup results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the thresholds of the reference data set.
func DefaultConfig() *Config {
	return &Config{
		Popularity: PopularityConfig{
			MinSupport:    250,
			TopCount:      50,
			FallbackCount: 5,
		},
		Matrix: MatrixConfig{
			ExpertMinRatings: 200,
			FamousMinRatings: 50,
		},
		Similarity: SimilarityConfig{
			NumWorkers: runtime.NumCPU(),
		},
		Limits: LimitsConfig{
			SimilarCount: 5,
			AuthorCount:  3,
			MaxCount:     100,
			BuildTimeout: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// ErrInvalidConfig wraps every error returned by NewEngine for a bad Config.
var ErrInvalidConfig = errors.New("invalid recommend config")

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Popularity.MinSupport < 0 {
		return fmt.Errorf("popularity.min_support must be non-negative, got %d", c.Popularity.MinSupport)
	}
	if c.Popularity.TopCount < 1 {
		return fmt.Errorf("popularity.top_count must be positive, got %d", c.Popularity.TopCount)
	}
	if c.Popularity.FallbackCount < 1 {
		return fmt.Errorf("popularity.fallback_count must be positive, got %d", c.Popularity.FallbackCount)
	}

	if c.Matrix.ExpertMinRatings < 0 {
		return fmt.Errorf("matrix.expert_min_ratings must be non-negative, got %d", c.Matrix.ExpertMinRatings)
	}
	if c.Matrix.FamousMinRatings < 1 {
		return fmt.Errorf("matrix.famous_min_ratings must be positive, got %d", c.Matrix.FamousMinRatings)
	}

	if c.Similarity.NumWorkers < 1 {
		return fmt.Errorf("similarity.num_workers must be positive, got %d", c.Similarity.NumWorkers)
	}

	if c.Limits.SimilarCount < 1 {
		return fmt.Errorf("limits.similar_count must be positive, got %d", c.Limits.SimilarCount)
	}
	if c.Limits.AuthorCount < 1 {
		return fmt.Errorf("limits.author_count must be positive, got %d", c.Limits.AuthorCount)
	}
	if c.Limits.MaxCount < c.Limits.SimilarCount || c.Limits.MaxCount < c.Limits.AuthorCount {
		return fmt.Errorf("limits.max_count must be >= similar_count and author_count, got %d", c.Limits.MaxCount)
	}
	if c.Limits.MaxCount < c.Popularity.TopCount {
		return fmt.Errorf("limits.max_count must be >= popularity.top_count, got %d < %d", c.Limits.MaxCount, c.Popularity.TopCount)
	}
	if c.Limits.BuildTimeout <= 0 {
		return fmt.Errorf("limits.build_timeout must be positive, got %v", c.Limits.BuildTimeout)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		Popularity: c.Popularity,
		Matrix:     c.Matrix,
		Similarity: c.Similarity,
		Limits:     c.Limits,
		Cache:      c.Cache,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type limitsJSON struct {
		SimilarCount int    `json:"similar_count"`
		AuthorCount  int    `json:"author_count"`
		MaxCount     int    `json:"max_count"`
		BuildTimeout string `json:"build_timeout"`
	}
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}

	return json.Marshal(&struct {
		*Alias
		Limits limitsJSON `json:"limits"`
		Cache  cacheJSON  `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Limits: limitsJSON{
			SimilarCount: c.Limits.SimilarCount,
			AuthorCount:  c.Limits.AuthorCount,
			MaxCount:     c.Limits.MaxCount,
			BuildTimeout: c.Limits.BuildTimeout.String(),
		},
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
