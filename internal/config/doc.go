// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package config loads Bookrec configuration with koanf.

Sources are layered, later ones winning:

 1. Defaults (defaultConfig)
 2. YAML file: --config flag, CONFIG_PATH, ./config.yaml or /etc/bookrec/config.yaml
 3. Environment variables

# Environment Variables

Dataset:
  - BOOKREC_BOOKS_PATH, BOOKREC_RATINGS_PATH: required CSV paths
  - BOOKREC_USERS_PATH: optional users CSV (empty to skip)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DATASET_LOAD_TIMEOUT

Server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (default 8080)
  - HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT (json|console), LOG_CALLER

Recommendations:
  - RECOMMEND_MIN_SUPPORT (250), RECOMMEND_TOP_COUNT (50), RECOMMEND_FALLBACK_COUNT (5)
  - RECOMMEND_EXPERT_MIN_RATINGS (200), RECOMMEND_FAMOUS_MIN_RATINGS (50)
  - RECOMMEND_SIMILAR_COUNT (5), RECOMMEND_AUTHOR_COUNT (3), RECOMMEND_MAX_COUNT (100)
  - RECOMMEND_WORKERS (0 = all CPUs), RECOMMEND_BUILD_TIMEOUT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

# Example YAML

	dataset:
	  books_path: /data/Books.csv
	  ratings_path: /data/Ratings.csv
	server:
	  port: 9000
	recommend:
	  min_support: 100
	  cache_ttl: 10m
*/
package config
