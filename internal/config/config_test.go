// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "defaults",
			modify: func(c *Config) {},
		},
		{
			name:      "missing books path",
			modify:    func(c *Config) { c.Dataset.BooksPath = "" },
			wantError: "books_path",
		},
		{
			name:   "users path optional",
			modify: func(c *Config) { c.Dataset.UsersPath = "" },
		},
		{
			name:      "port out of range",
			modify:    func(c *Config) { c.Server.Port = 70000 },
			wantError: "port",
		},
		{
			name:      "unknown log level",
			modify:    func(c *Config) { c.Logging.Level = "loud" },
			wantError: "level",
		},
		{
			name:      "zero famous threshold",
			modify:    func(c *Config) { c.Recommend.FamousMinRatings = 0 },
			wantError: "famous_min_ratings",
		},
		{
			name:      "similar count above max",
			modify:    func(c *Config) { c.Recommend.SimilarCount = 500 },
			wantError: "RECOMMEND_SIMILAR_COUNT",
		},
		{
			name:      "cache enabled without ttl",
			modify:    func(c *Config) { c.Recommend.CacheTTL = 0 },
			wantError: "RECOMMEND_CACHE_TTL",
		},
		{
			name: "cache disabled without ttl",
			modify: func(c *Config) {
				c.Recommend.CacheEnabled = false
				c.Recommend.CacheTTL = 0
			},
		},
		{
			name:      "rate limit without window",
			modify:    func(c *Config) { c.Security.RateLimitWindow = 0 },
			wantError: "RATE_LIMIT_WINDOW",
		},
		{
			name: "rate limit disabled",
			modify: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantError)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"localhost", 9000, "localhost:9000"},
		{"::1", 8080, "[::1]:8080"},
	}
	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Address(); got != tt.want {
			t.Errorf("Address(%s, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
