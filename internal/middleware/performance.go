// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/bookrec/internal/logging"
)

// DefaultSlowThreshold is the latency above which a request is logged as slow.
const DefaultSlowThreshold = time.Second

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string
	Method     string
	DurationMS int64
	StatusCode int
	Timestamp  time.Time
}

// PerformanceMonitor keeps a sliding window of recent requests and reports
// per-route latency percentiles for the status endpoint.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	metrics       []RequestMetrics
	maxMetrics    int
	slowThreshold time.Duration
	requestCounts map[string]int64
}

// EndpointStats contains aggregated statistics for an endpoint
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	WindowCount  int     `json:"window_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MinDuration  int64   `json:"min_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// NewPerformanceMonitor creates a monitor keeping the last maxMetrics requests.
func NewPerformanceMonitor(maxMetrics int) *PerformanceMonitor {
	if maxMetrics <= 0 {
		maxMetrics = 1000
	}
	return &PerformanceMonitor{
		metrics:       make([]RequestMetrics, 0, maxMetrics),
		maxMetrics:    maxMetrics,
		slowThreshold: DefaultSlowThreshold,
		requestCounts: make(map[string]int64),
	}
}

// SetSlowThreshold changes the slow request threshold. Call before serving.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.slowThreshold = d
}

// RecordRequest adds a request metric
func (pm *PerformanceMonitor) RecordRequest(metric *RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.metrics = append(pm.metrics, *metric)
	if len(pm.metrics) > pm.maxMetrics {
		pm.metrics = pm.metrics[1:]
	}

	pm.requestCounts[metric.Method+" "+metric.Route]++
}

// GetStats returns aggregated statistics for all endpoints, busiest first.
// Percentiles cover the sliding window; RequestCount covers all requests
// since start.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	endpointMetrics := make(map[string][]int64)
	for _, m := range pm.metrics {
		key := m.Method + " " + m.Route
		endpointMetrics[key] = append(endpointMetrics[key], m.DurationMS)
	}

	stats := make([]EndpointStats, 0, len(endpointMetrics))
	for endpoint, durations := range endpointMetrics {
		sorted := make([]int64, len(durations))
		copy(sorted, durations)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, d := range sorted {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: pm.requestCounts[endpoint],
			WindowCount:  len(sorted),
			AvgDuration:  float64(sum) / float64(len(sorted)),
			P50Duration:  percentile(sorted, 0.50),
			P95Duration:  percentile(sorted, 0.95),
			P99Duration:  percentile(sorted, 0.99),
			MinDuration:  sorted[0],
			MaxDuration:  sorted[len(sorted)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})

	return stats
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := newStatusRecorder(w)

		next.ServeHTTP(wrapper, r)

		elapsed := time.Since(start)
		route := routePattern(r)

		pm.RecordRequest(&RequestMetrics{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: wrapper.statusCode,
			Timestamp:  time.Now(),
		})

		pm.mu.RLock()
		threshold := pm.slowThreshold
		pm.mu.RUnlock()

		if threshold > 0 && elapsed > threshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Dur("threshold", threshold).
				Msg("Slow request detected")
		}
	})
}

// percentile calculates the percentile value from a sorted slice
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
