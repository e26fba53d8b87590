// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Dataset Metrics:
  - dataset_load_duration_seconds: CSV load time (histogram)
    Labels: source (books, ratings, users)
  - dataset_rows_loaded: Typed records loaded (gauge)
  - dataset_load_errors_total: Failed loads, including malformed input (counter)

Engine Build Metrics:
  - recommend_engine_build_duration_seconds: Full build time (histogram)
  - recommend_engine_build_stage_duration_seconds: Per-stage build time (histogram)
    Labels: stage (join, popularity, matrix, similarity, lookups)
  - recommend_join_dropped_events: Events whose ISBN is not in the catalogue (gauge)
  - recommend_matrix_titles / recommend_matrix_users: Matrix dimensions (gauge)

Recommendation Metrics:
  - recommend_requests_total, recommend_duration_seconds
    Labels: strategy (top, similar, author)
  - recommend_empty_results_total: Lookups that returned nothing (counter)
  - recommend_fallbacks_total: Similar lookups served by popularity (counter)
  - recommend_cache_hits_total / recommend_cache_misses_total (counter)

API Metrics:
  - api_requests_total: Labels method, endpoint, status_code
  - api_request_duration_seconds: Labels method, endpoint
  - api_active_requests: In-flight requests (gauge)

# Usage Example

	start := time.Now()
	titles := engine.RecommendSimilar(ctx, title, userID, 5)
	metrics.RecordRecommendation("similar", time.Since(start), len(titles))

# Thread Safety

All metric operations are thread-safe and can be called concurrently.
*/
package metrics
