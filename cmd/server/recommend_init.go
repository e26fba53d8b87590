// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookrec/internal/config"
	"github.com/tomtom215/bookrec/internal/dataset"
	"github.com/tomtom215/bookrec/internal/recommend"
	"github.com/tomtom215/bookrec/internal/supervisor/services"
)

// buildEngineConfig converts the application config to the engine's own.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	r := cfg.Recommend

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &recommend.Config{
		Popularity: recommend.PopularityConfig{
			MinSupport:    r.MinSupport,
			TopCount:      r.TopCount,
			FallbackCount: r.FallbackCount,
		},
		Matrix: recommend.MatrixConfig{
			ExpertMinRatings: r.ExpertMinRatings,
			FamousMinRatings: r.FamousMinRatings,
		},
		Similarity: recommend.SimilarityConfig{
			NumWorkers: workers,
		},
		Limits: recommend.LimitsConfig{
			SimilarCount: r.SimilarCount,
			AuthorCount:  r.AuthorCount,
			MaxCount:     r.MaxCount,
			BuildTimeout: r.BuildTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}

func buildDatasetConfig(cfg *config.Config) dataset.Config {
	d := cfg.Dataset
	return dataset.Config{
		BooksPath:   d.BooksPath,
		RatingsPath: d.RatingsPath,
		UsersPath:   d.UsersPath,
		MaxMemory:   d.MaxMemory,
		Threads:     d.Threads,
		LoadTimeout: d.LoadTimeout,
	}
}

// buildEngine loads the CSV files through DuckDB and builds the engine.
// The DuckDB connection only lives for the load.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	src, err := dataset.Open(buildDatasetConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("closing dataset")
		}
	}()

	data, err := src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(ctx, data, buildEngineConfig(cfg), logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newEngineBuilder(cfg *config.Config, logger zerolog.Logger) services.EngineBuilder {
	return func(ctx context.Context) (*recommend.Engine, error) {
		return buildEngine(ctx, cfg, logger)
	}
}
