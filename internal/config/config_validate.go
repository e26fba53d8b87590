// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package config

import (
	"fmt"

	"github.com/tomtom215/bookrec/internal/validation"
)

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive when rate limiting is enabled, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	for name, count := range map[string]int{
		"RECOMMEND_TOP_COUNT":      r.TopCount,
		"RECOMMEND_FALLBACK_COUNT": r.FallbackCount,
		"RECOMMEND_SIMILAR_COUNT":  r.SimilarCount,
		"RECOMMEND_AUTHOR_COUNT":   r.AuthorCount,
	} {
		if count > r.MaxCount {
			return fmt.Errorf("%s (%d) must not exceed RECOMMEND_MAX_COUNT (%d)", name, count, r.MaxCount)
		}
	}

	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled, got %v", r.CacheTTL)
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be positive when caching is enabled, got %d", r.CacheMaxEntries)
		}
	}
	return nil
}
