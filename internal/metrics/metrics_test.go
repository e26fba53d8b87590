// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		rows       int
		err        error
		wantRows   float64
		wantErrors float64
	}{
		{
			name:     "successful books load",
			source:   "test_books",
			rows:     271360,
			wantRows: 271360,
		},
		{
			name:       "malformed ratings",
			source:     "test_ratings",
			rows:       0,
			err:        errors.New("malformed input"),
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDatasetLoad(tt.source, tt.rows, 50*time.Millisecond, tt.err)

			if got := testutil.ToFloat64(DatasetRowsLoaded.WithLabelValues(tt.source)); got != tt.wantRows {
				t.Errorf("dataset_rows_loaded{%s} = %v, want %v", tt.source, got, tt.wantRows)
			}
			if got := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues(tt.source)); got != tt.wantErrors {
				t.Errorf("dataset_load_errors_total{%s} = %v, want %v", tt.source, got, tt.wantErrors)
			}
		})
	}
}

func TestRecordEngineBuild(t *testing.T) {
	RecordEngineBuild(2*time.Second, 118, 706, 810)

	if got := testutil.ToFloat64(JoinDroppedEvents); got != 118 {
		t.Errorf("recommend_join_dropped_events = %v, want 118", got)
	}
	if got := testutil.ToFloat64(MatrixTitles); got != 706 {
		t.Errorf("recommend_matrix_titles = %v, want 706", got)
	}
	if got := testutil.ToFloat64(MatrixUsers); got != 810 {
		t.Errorf("recommend_matrix_users = %v, want 810", got)
	}
	if got := testutil.ToFloat64(EngineBuiltTimestamp); got <= 0 {
		t.Errorf("recommend_engine_built_timestamp_seconds = %v, want > 0", got)
	}

	RecordBuildStage("similarity", time.Second)
	if got := testutil.CollectAndCount(EngineBuildStageDuration); got < 1 {
		t.Errorf("stage histogram series = %d, want >= 1", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("test_similar"))
	beforeEmpty := testutil.ToFloat64(RecommendEmptyResults.WithLabelValues("test_similar"))

	RecordRecommendation("test_similar", time.Millisecond, 5)
	RecordRecommendation("test_similar", time.Millisecond, 0)

	if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("test_similar")); got != before+2 {
		t.Errorf("recommend_requests_total = %v, want %v", got, before+2)
	}
	if got := testutil.ToFloat64(RecommendEmptyResults.WithLabelValues("test_similar")); got != beforeEmpty+1 {
		t.Errorf("recommend_empty_results_total = %v, want %v", got, beforeEmpty+1)
	}
}

func TestRecordRecommendCache(t *testing.T) {
	RecordRecommendCache("test_author", true)
	RecordRecommendCache("test_author", true)
	RecordRecommendCache("test_author", false)

	if got := testutil.ToFloat64(RecommendCacheHits.WithLabelValues("test_author")); got != 2 {
		t.Errorf("recommend_cache_hits_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses.WithLabelValues("test_author")); got != 1 {
		t.Errorf("recommend_cache_misses_total = %v, want 1", got)
	}
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(RecommendFallbacks)
	RecordFallback()
	if got := testutil.ToFloat64(RecommendFallbacks); got != before+1 {
		t.Errorf("recommend_fallbacks_total = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("GET", "/test/books/top", "200", 10*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/books/top", "200")); got != 1 {
		t.Errorf("api_requests_total = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("test-version")
	if got := testutil.CollectAndCount(AppInfo); got < 1 {
		t.Errorf("app_info series = %d, want >= 1", got)
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
