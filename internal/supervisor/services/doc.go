// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

// Package services adapts the server's components to suture.Service.
//
//   - HTTPServerService: runs an *http.Server and drains it on shutdown
//   - EngineService: builds the recommendation engine once and attaches it
//     to the API handler
package services
