// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware uses the func(http.Handler) http.Handler shape so it plugs
straight into chi's r.Use.

Key Components:

  - RequestID: reuses or generates X-Request-ID and attaches a request
    scoped zerolog logger to the context
  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by chi route pattern
  - PerformanceMonitor: sliding window latency percentiles per route,
    reported by /api/v1/status, plus slow request warnings

Usage:

	perf := middleware.NewPerformanceMonitor(1000)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)

Route patterns are only known after chi has matched the request, so the
metrics middleware reads them once the handler returns.
*/
package middleware
