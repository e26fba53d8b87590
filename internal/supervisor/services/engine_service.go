// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

// EngineBuilder loads the data set and builds an engine.
type EngineBuilder func(ctx context.Context) (*recommend.Engine, error)

// EngineService builds the recommendation engine once under supervision
// and hands it to attach.
//
// Outcomes:
//   - success: attach is called and the service returns suture.ErrDoNotRestart
//   - malformed or missing input: onFatal is called and the service is not
//     restarted, since rebuilding from the same files cannot succeed
//   - anything else (timeouts, I/O): the error is returned and suture
//     restarts the build with backoff
type EngineService struct {
	build    EngineBuilder
	attach   func(*recommend.Engine)
	onFatal  func(error)
	logger   zerolog.Logger
	name     string
	attempts atomic.Int32
}

// NewEngineService creates the engine build service. onFatal may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngineService(build EngineBuilder, attach func(*recommend.Engine), onFatal func(error), logger zerolog.Logger) *EngineService {
	return &EngineService{
		build:   build,
		attach:  attach,
		onFatal: onFatal,
		logger:  logger.With().Str("service", "engine-build").Logger(),
		name:    "engine-build",
	}
}

// Serve implements suture.Service.
func (s *EngineService) Serve(ctx context.Context) error {
	attempt := s.attempts.Add(1)
	start := time.Now()
	s.logger.Info().Int32("attempt", attempt).Msg("building recommendation engine")

	engine, err := s.build(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if permanent(err) {
			s.logger.Error().Err(err).Msg("engine build failed on bad input")
			if s.onFatal != nil {
				s.onFatal(err)
			}
			return suture.ErrDoNotRestart
		}
		s.logger.Warn().Err(err).Int32("attempt", attempt).Msg("engine build failed, will retry")
		return fmt.Errorf("engine build: %w", err)
	}

	s.attach(engine)

	stats := engine.Stats()
	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("titles", stats.Titles).
		Int("matrix_titles", stats.MatrixTitles).
		Int("dropped_events", stats.DroppedEvents).
		Msg("recommendation engine ready")

	return suture.ErrDoNotRestart
}

// Attempts returns how many times Serve has been called.
func (s *EngineService) Attempts() int {
	return int(s.attempts.Load())
}

// String implements fmt.Stringer for suture's event log.
func (s *EngineService) String() string {
	return s.name
}

func permanent(err error) bool {
	return errors.Is(err, models.ErrMalformedInput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, recommend.ErrInvalidConfig)
}
