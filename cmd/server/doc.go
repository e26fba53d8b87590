// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Command bookrec builds a book recommendation engine from the Book-Crossing
CSV files and serves it.

# Commands

	bookrec serve                                   HTTP API on server.host:server.port
	bookrec top     [--min-support N] [--count N]   best rated titles
	bookrec similar --title T --user U [--count N]  titles similar to T
	bookrec author  --author A --user U [--count N] best editions by A
	bookrec version

Every command accepts --config to name a YAML file. The query commands
build the engine synchronously and print JSON to stdout; logs go to
stderr.

# Serve

serve runs a suture supervision tree:

	bookrec (root)
	├── engine-layer
	│   └── engine-build   loads the CSVs through DuckDB, builds the engine
	└── api-layer
	    └── http-server    chi router, /api/v1 and /metrics

The HTTP server starts at once. Until the build attaches the engine,
/api/v1/health/ready and the data endpoints return 503. A malformed or
missing input file is fatal: the tree is stopped and serve exits with the
build error. SIGINT and SIGTERM drain in-flight requests for up to
server.shutdown_timeout.

# Configuration

Defaults, then the YAML file, then environment variables:

	BOOKREC_BOOKS_PATH, BOOKREC_RATINGS_PATH, BOOKREC_USERS_PATH
	DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DATASET_LOAD_TIMEOUT
	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	RECOMMEND_MIN_SUPPORT, RECOMMEND_EXPERT_MIN_RATINGS, RECOMMEND_FAMOUS_MIN_RATINGS, ...

See internal/config for the full list.
*/
package main
