// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/bookrec/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		wantRoute  string
		wantStatus string
	}{
		{
			name:       "labels with route pattern",
			method:     http.MethodGet,
			path:       "/promtest/books/0195153448",
			status:     http.StatusOK,
			wantRoute:  "/promtest/books/{isbn}",
			wantStatus: "200",
		},
		{
			name:       "captures error status",
			method:     http.MethodGet,
			path:       "/promtest/books/missing",
			status:     http.StatusNotFound,
			wantRoute:  "/promtest/books/{isbn}",
			wantStatus: "404",
		},
		{
			name:       "unmatched route",
			method:     http.MethodGet,
			path:       "/promtest/nowhere",
			wantRoute:  "unmatched",
			wantStatus: "404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Use(PrometheusMetrics)
			r.Get("/promtest/books/{isbn}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			counter := metrics.APIRequestsTotal.WithLabelValues(tt.method, tt.wantRoute, tt.wantStatus)
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("api_requests_total{%s,%s,%s} delta = %v, want 1", tt.method, tt.wantRoute, tt.wantStatus, got)
			}
		})
	}
}

func TestPrometheusMetrics_DefaultStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/promtest/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/promtest/implicit", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/promtest/implicit", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("implicit 200 delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("api_active_requests = %v after request, want 0", got)
	}
}

func TestStatusRecorder_FirstWriteHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	sr.WriteHeader(http.StatusTeapot)
	sr.WriteHeader(http.StatusOK)

	if sr.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want %d", sr.statusCode, http.StatusTeapot)
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap() should return the wrapped writer")
	}
}
