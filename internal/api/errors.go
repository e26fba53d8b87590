// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBookNotFound     = "BOOK_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeNotReady         = "NOT_READY"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
