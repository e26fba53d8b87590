// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookrec/internal/logging"
	"github.com/tomtom215/bookrec/internal/middleware"
	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with an ETag. Successful responses are
// cacheable unless the handler already set Cache-Control; the engine never
// changes after it is built.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")
	if w.Header().Get("Cache-Control") == "" {
		if status == http.StatusOK {
			w.Header().Set("Cache-Control", "public, max-age=60")
		} else {
			w.Header().Set("Cache-Control", "no-store")
		}
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if status == http.StatusOK {
		// Metadata carries a timestamp, so hash the data only.
		etag := generateETag(response.Data)
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a weak ETag over the JSON encoding of data.
func generateETag(data any) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data any) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: responseMetadata(r, start),
	})
}

// respondError sends an error response. err, when non-nil, is logged but
// never echoed to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	logger := logging.Ctx(r.Context())
	if err != nil {
		logger.Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	} else if status >= http.StatusInternalServerError {
		logger.Error().Str("code", apiErr.Code).Msg("API Error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: responseMetadata(r, time.Time{}),
		Error:    apiErr,
	})
}

func responseMetadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: middleware.GetRequestID(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a VALIDATION_ERROR APIError.
func validateRequest(v any) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// queryInt parses an optional integer query parameter. A missing or empty
// parameter returns nil.
func queryInt(r *http.Request, key string) (*int, *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &models.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("%s must be an integer", key),
			Details: map[string]any{"field": key, "value": raw},
		}
	}
	return &v, nil
}

// queryIntDefault is queryInt with a fallback for a missing parameter.
func queryIntDefault(r *http.Request, key string, def int) (int, *models.APIError) {
	v, apiErr := queryInt(r, key)
	if apiErr != nil {
		return 0, apiErr
	}
	if v == nil {
		return def, nil
	}
	return *v, nil
}

// queryString returns a trimmed query parameter.
func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
