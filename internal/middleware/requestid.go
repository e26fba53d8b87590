// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/bookrec/internal/logging"
)

// RequestIDHeader is read from upstream proxies and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds IDs accepted from clients.
const maxRequestIDLen = 128

// RequestID ensures every request carries an ID. An incoming X-Request-ID is
// reused when it looks sane, otherwise a UUID is generated. The ID is set on
// the response, stored in the request context and attached to a request
// scoped logger, so logging.Ctx(r.Context()) tags every line with it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := sanitizeRequestID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		logger := logging.LoggerFromContext(ctx).With().
			Str("request_id", requestID).
			Logger()
		ctx = logging.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

// sanitizeRequestID drops IDs that are too long or contain anything outside
// printable ASCII, which keeps them safe to log and echo.
func sanitizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxRequestIDLen {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7E {
			return ""
		}
	}
	return id
}
