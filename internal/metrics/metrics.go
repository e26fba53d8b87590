// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - CSV loading through DuckDB
// - The one-time engine build (join, popularity, matrix, similarity)
// - Recommendation lookups, fallbacks and result cache efficiency
// - API endpoint latency and throughput

var (
	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of loading one source data set in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"}, // "books", "ratings", "users"
	)

	DatasetRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of typed records loaded from a source data set",
		},
		[]string{"source"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed source data set loads",
		},
		[]string{"source"},
	)

	// Engine Build Metrics
	EngineBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_engine_build_duration_seconds",
			Help:    "Duration of the full recommendation engine build in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	EngineBuildStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_engine_build_stage_duration_seconds",
			Help:    "Duration of each engine build stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"}, // "join", "popularity", "matrix", "similarity", "lookups"
	)

	EngineBuiltTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_engine_built_timestamp_seconds",
			Help: "Unix time of the last successful engine build",
		},
	)

	JoinDroppedEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_join_dropped_events",
			Help: "Rating events dropped because their ISBN is not in the catalogue",
		},
	)

	MatrixTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_matrix_titles",
			Help: "Number of famous titles (rows) in the interaction matrix",
		},
	)

	MatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_matrix_users",
			Help: "Number of expert users (columns) in the interaction matrix",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation lookups",
		},
		[]string{"strategy"}, // "top", "similar", "author"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation lookups in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"strategy"},
	)

	RecommendEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_empty_results_total",
			Help: "Total number of lookups that returned no items",
		},
		[]string{"strategy"},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of similar lookups answered by the popularity fallback",
		},
	)

	RecommendCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation result cache hits",
		},
		[]string{"strategy"},
	)

	RecommendCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation result cache misses",
		},
		[]string{"strategy"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDatasetLoad records the outcome of loading one source data set.
func RecordDatasetLoad(source string, rows int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(source).Inc()
		return
	}
	DatasetRowsLoaded.WithLabelValues(source).Set(float64(rows))
}

// RecordBuildStage records how long one engine build stage took.
func RecordBuildStage(stage string, duration time.Duration) {
	EngineBuildStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordEngineBuild records a completed engine build.
func RecordEngineBuild(duration time.Duration, droppedEvents, matrixTitles, matrixUsers int) {
	EngineBuildDuration.Observe(duration.Seconds())
	EngineBuiltTimestamp.Set(float64(time.Now().Unix()))
	JoinDroppedEvents.Set(float64(droppedEvents))
	MatrixTitles.Set(float64(matrixTitles))
	MatrixUsers.Set(float64(matrixUsers))
}

// RecordRecommendation records one recommendation lookup.
func RecordRecommendation(strategy string, duration time.Duration, results int) {
	RecommendRequestsTotal.WithLabelValues(strategy).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if results == 0 {
		RecommendEmptyResults.WithLabelValues(strategy).Inc()
	}
}

// RecordRecommendCache records a result cache lookup.
func RecordRecommendCache(strategy string, hit bool) {
	if hit {
		RecommendCacheHits.WithLabelValues(strategy).Inc()
	} else {
		RecommendCacheMisses.WithLabelValues(strategy).Inc()
	}
}

// RecordFallback records a similar lookup served by the popularity fallback.
func RecordFallback() {
	RecommendFallbacks.Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
