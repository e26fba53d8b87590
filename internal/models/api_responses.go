// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "fallback": false},
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "query_time_ms": 1
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "user_id is required"
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Engine lookup time in milliseconds
//   - Cached: Whether the result came from the engine's result cache
//   - RequestID: Correlation ID echoed from the X-Request-ID header
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - NOT_READY: Engine has not finished building
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
