// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package models

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when source data cannot be turned into
// typed records. It is always a build-time failure.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes where malformed source data was found.
// It wraps ErrMalformedInput so callers can test with errors.Is.
type MalformedInputError struct {
	// Source names the data set (e.g. "ratings", "books").
	Source string
	// Row is the 1-based data row, or 0 when the problem is not row specific.
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: %s row %d column %q (value %q): %s",
			ErrMalformedInput, e.Source, e.Row, e.Column, e.Value, e.Reason)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s: %s column %q: %s", ErrMalformedInput, e.Source, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedInput, e.Source, e.Reason)
}

// Unwrap allows errors.Is(err, ErrMalformedInput).
func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
