// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestValidScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  bool
	}{
		{-1, false},
		{0, true},
		{5, true},
		{10, true},
		{11, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			if got := ValidScore(tt.score); got != tt.want {
				t.Errorf("ValidScore(%d) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestMalformedInputError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *MalformedInputError
		contains []string
	}{
		{
			name:     "row level",
			err:      &MalformedInputError{Source: "ratings", Row: 7, Column: "Book-Rating", Value: "abc", Reason: "not an integer"},
			contains: []string{"ratings", "row 7", `"Book-Rating"`, `"abc"`, "not an integer"},
		},
		{
			name:     "column level",
			err:      &MalformedInputError{Source: "books", Column: "ISBN", Reason: "required column missing"},
			contains: []string{"books", `"ISBN"`, "required column missing"},
		},
		{
			name:     "source level",
			err:      &MalformedInputError{Source: "engine", Reason: "no books"},
			contains: []string{"engine", "no books"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}

			wrapped := fmt.Errorf("load: %w", tt.err)
			if !errors.Is(wrapped, ErrMalformedInput) {
				t.Error("errors.Is(wrapped, ErrMalformedInput) = false, want true")
			}
			var target *MalformedInputError
			if !errors.As(wrapped, &target) {
				t.Fatal("errors.As failed to find *MalformedInputError")
			}
			if target.Source != tt.err.Source {
				t.Errorf("Source = %q, want %q", target.Source, tt.err.Source)
			}
		})
	}
}

func TestUserAgeOmittedWhenUnknown(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(User{ID: 42})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "age") {
		t.Errorf("Marshal() = %s, want no age field", data)
	}

	age := 31
	data, err = json.Marshal(User{ID: 42, Age: &age})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"age":31`) {
		t.Errorf("Marshal() = %s, want age 31", data)
	}
}
