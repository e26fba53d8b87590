// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package logging provides the process-wide zerolog logger for Bookrec.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("path", cfg.Dataset.BooksPath).Msg("Loading catalogue")
	logging.Error().Err(err).Msg("Engine build failed")

	// In HTTP handlers, request IDs set by middleware are attached automatically
	logging.Ctx(ctx).Info().Str("title", title).Msg("Similar lookup")

Components that keep their own logger derive it once:

	logger := logging.WithComponent("dataset")

# Configuration

Level, format and caller reporting come from the application config
(LOG_LEVEL, LOG_FORMAT, LOG_CALLER).

  - Level: trace, debug, info, warn, error, disabled (default: info)
  - Format: json or console (default: json)

# slog Bridge

Libraries that log through log/slog (the suture supervisor via sutureslog)
are routed into zerolog with NewSlogLogger.

# Best Practices

Always terminate event chains with .Msg() or .Send(). Prefer typed fields
over Msgf.
*/
package logging
