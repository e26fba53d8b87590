// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package cache

import (
	"sort"
	"strings"
	"sync"
)

// trieNode is a node in the prefix tree. Keys are lowercased; values keeps
// the distinct original spellings that end at this node.
type trieNode struct {
	children map[rune]*trieNode
	values   []Suggestion
}

// Suggestion is an autocomplete result.
type Suggestion struct {
	Value  string `json:"value"`
	Weight int    `json:"weight"`
}

// Trie is a case-insensitive prefix tree for autocomplete over titles and
// author names. Suggestions are ranked by weight (for example the number of
// ratings a title received), then alphabetically.
//
// Time complexity:
//   - Insert: O(m) where m is the key length
//   - Complete: O(p + n log n) where p is the prefix length and n the matches
type Trie struct {
	mu             sync.RWMutex
	root           *trieNode
	size           int
	maxSuggestions int
}

// NewTrie creates an empty trie. maxSuggestions caps Complete when the caller
// passes no limit.
func NewTrie(maxSuggestions int) *Trie {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie{
		root:           newTrieNode(),
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Insert adds value with the given weight. Inserting the same value again
// adds to its weight. It returns true if the value is new.
func (t *Trie) Insert(value string, weight int) bool {
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range strings.ToLower(value) {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}

	for i := range node.values {
		if node.values[i].Value == value {
			node.values[i].Weight += weight
			return false
		}
	}

	node.values = append(node.values, Suggestion{Value: value, Weight: weight})
	t.size++
	return true
}

// Contains reports whether value was inserted with this exact spelling.
func (t *Trie) Contains(value string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(strings.ToLower(value))
	if node == nil {
		return false
	}
	for _, s := range node.values {
		if s.Value == value {
			return true
		}
	}
	return false
}

// Complete returns up to limit values starting with prefix, ignoring case.
// A limit <= 0 uses the trie's default. An empty prefix matches everything.
func (t *Trie) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		limit = t.maxSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(strings.ToLower(prefix))
	if node == nil {
		return nil
	}

	var results []Suggestion
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Weight != results[j].Weight {
			return results[i].Weight > results[j].Weight
		}
		return results[i].Value < results[j].Value
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Len returns the number of distinct values.
func (t *Trie) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// find walks to the node for key. Must be called with lock held.
func (t *Trie) find(key string) *trieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect(node *trieNode, results *[]Suggestion) {
	*results = append(*results, node.values...)
	for _, child := range node.children {
		collect(child, results)
	}
}
