// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package models defines the data structures shared across Bookrec.

Key Components:

  - Book: Catalogue record keyed by ISBN (title, author, year, publisher, cover URL)
  - RatingEvent: One (user, ISBN, score) rating, loaded once at startup
  - User: Reader identity from the users table
  - MalformedInputError: Typed build-time failure wrapping ErrMalformedInput
  - APIResponse: Standardized HTTP response wrapper

Model Categories:

1. Source Records:
  - Book, RatingEvent and User mirror the three CSV inputs
  - Records are immutable once loaded

2. API Response Models:
  - APIResponse: Standard response wrapper
  - APIError: Error details
  - Metadata: Response metadata (timestamp, lookup time, request id)

Thread Safety:

All models are plain data structures without internal synchronization. They are
safe to share between goroutines as long as nobody mutates them after loading.
*/
package models
