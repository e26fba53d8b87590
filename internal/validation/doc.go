// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct metadata
and is safe for concurrent use. Field names in error messages come from the
struct's query, koanf or json tag, so messages name the parameter the caller
actually sent.

Custom rules:
  - notblank: string must contain a non-whitespace character

Usage in handlers:

	type similarRequest struct {
	    Title  string `query:"title" validate:"notblank,max=256"`
	    UserID int    `query:"user_id" validate:"min=0"`
	    Count  int    `query:"count" validate:"min=0,max=100"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}

Errors are reported as *RequestValidationError, which converts to the API's
VALIDATION_ERROR envelope with ToAPIError.
*/
package validation
