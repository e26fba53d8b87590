// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/bookrec/internal/middleware"
	"github.com/tomtom215/bookrec/internal/recommend"
)

func TestHealth_BeforeEngine(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantErr  string
	}{
		{"live", "/api/v1/health/live", http.StatusOK, ""},
		{"ready", "/api/v1/health/ready", http.StatusServiceUnavailable, ErrCodeNotReady},
		{"status", "/api/v1/status", http.StatusOK, ""},
		{"data endpoint", "/api/v1/books/top", http.StatusServiceUnavailable, ErrCodeNotReady},
		{"recommendations", "/api/v1/recommendations/similar?title=Emma&user_id=1", http.StatusServiceUnavailable, ErrCodeNotReady},
		{"search", "/api/v1/search/titles?q=e", http.StatusServiceUnavailable, ErrCodeNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, router, tt.target)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr == "" {
				return
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
		})
	}
}

func TestHealth_AfterSetEngine(t *testing.T) {
	router, h := newTestRouter(t, nil)

	if rec, _ := doGet(t, router, "/api/v1/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready before SetEngine = %d, want 503", rec.Code)
	}

	h.SetEngine(newTestEngine(t))

	rec, env := doGet(t, router, "/api/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready after SetEngine = %d, want 200", rec.Code)
	}
	var data map[string]any
	decodeData(t, env, &data)
	if data["status"] != "ready" {
		t.Errorf("status = %v, want ready", data["status"])
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestStatus(t *testing.T) {
	router, _ := newTestRouter(t, newTestEngine(t))

	// Generate some traffic for the endpoint stats.
	doGet(t, router, "/api/v1/recommendations/similar?title=Emma&user_id=99")
	doGet(t, router, "/api/v1/recommendations/similar?title=Z&user_id=99")

	rec, env := doGet(t, router, "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Config durations are encoded as strings, so decode only what is checked.
	var resp struct {
		Version   string                     `json:"version"`
		Ready     bool                       `json:"ready"`
		Build     *recommend.BuildStats      `json:"build"`
		Engine    *recommend.Metrics         `json:"engine"`
		Endpoints []middleware.EndpointStats `json:"endpoints"`
		Config    *struct {
			Matrix recommend.MatrixConfig `json:"matrix"`
			Limits struct {
				BuildTimeout string `json:"build_timeout"`
			} `json:"limits"`
		} `json:"config"`
	}
	decodeData(t, env, &resp)

	if !resp.Ready || resp.Version != "test" {
		t.Errorf("ready/version = %v/%q", resp.Ready, resp.Version)
	}
	if resp.Build == nil || resp.Build.DroppedEvents != 1 || resp.Build.MatrixTitles != 5 {
		t.Errorf("build = %+v, want 1 dropped event and 5 matrix titles", resp.Build)
	}
	if resp.Engine == nil || resp.Engine.Fallbacks != 1 {
		t.Errorf("engine metrics = %+v, want 1 fallback", resp.Engine)
	}
	if resp.Config == nil || resp.Config.Matrix.ExpertMinRatings != 3 || resp.Config.Limits.BuildTimeout != "10m0s" {
		t.Errorf("config = %+v", resp.Config)
	}

	found := false
	for _, ep := range resp.Endpoints {
		if ep.Endpoint == "GET /api/v1/recommendations/similar" {
			found = true
			if ep.RequestCount != 2 {
				t.Errorf("similar request_count = %d, want 2", ep.RequestCount)
			}
		}
	}
	if !found {
		t.Errorf("endpoints %+v missing similar route", resp.Endpoints)
	}
}
