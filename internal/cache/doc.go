// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

/*
Package cache provides the in-memory data structures used on the lookup path.

# Overview

  - LRU: generic least-recently-used cache with TTL, used for recommendation results
  - Trie: case-insensitive prefix tree for title and author autocomplete

Both types are safe for concurrent use.

# Usage Example

	results := cache.NewLRU[[]string](10000, 5*time.Minute)
	results.Add("similar:1984:276729:5", titles)
	if titles, ok := results.Get("similar:1984:276729:5"); ok {
	    // use cached titles
	}

	titles := cache.NewTrie(10)
	titles.Insert("The Hobbit", 281)
	suggestions := titles.Complete("the h", 5)
*/
package cache
