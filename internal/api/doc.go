// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

Health (permissive rate limit):

	GET /api/v1/health/live     process is up
	GET /api/v1/health/ready    engine is built (503 until then)

Data (configured rate limit, Prometheus instrumented):

	GET /api/v1/status
	GET /api/v1/books/top?min_support=&count=
	GET /api/v1/books/{isbn}
	GET /api/v1/authors
	GET /api/v1/users/{userID}/books
	GET /api/v1/recommendations/similar?title=&user_id=&count=
	GET /api/v1/recommendations/author?author=&user_id=&count=
	GET /api/v1/search/titles?q=&limit=
	GET /api/v1/search/authors?q=&limit=

Observability:

	GET /metrics

# Responses

Every response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 0, "request_id": "..."}
	}

Errors set status to "error" and fill error.code with one of the ErrCode
constants. Query parameters are validated with go-playground/validator via
the validation package; invalid input is a 400 VALIDATION_ERROR.

An unknown title passed to the similar endpoint is not an error. The
response carries fallback=true and the most rated titles. When a lookup
yields no items, suggestions holds the most rated titles so the client
always has something to show.

# Engine lifecycle

The Handler starts without an engine so the server can come up, answer
liveness probes, and expose metrics while the engine builds. SetEngine
attaches it; from then on the engine is read-only and shared by all
requests without locking.
*/
package api
