// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package cache

import (
	"strings"
	"sync"
)

// AhoCorasick finds every occurrence of a set of patterns in one pass over
// the text, in O(n + m + z) time for text length n, total pattern length m
// and z matches. Matching is case-insensitive.
//
// Example:
//
//	ac := NewAhoCorasick()
//	ac.AddPatterns([]string{"stock", "market"}, "Business")
//	ac.AddPatterns([]string{"movie", "box office"}, "Entertainment")
//	ac.Build()
//
//	ac.CountDistinct("Box office slump hits the stock market")
//	// map[Business:2 Entertainment:1]
type AhoCorasick struct {
	mu       sync.RWMutex
	root     *acNode
	patterns []acPattern
	built    bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices of patterns ending here, including via failure links
}

type acPattern struct {
	text string
	data any
}

// NewAhoCorasick creates an empty automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode()}
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// AddPattern adds a pattern. Adding after Build marks the automaton for
// rebuild. Empty patterns are ignored.
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	if pattern == "" {
		return
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.built = false
	ac.patterns = append(ac.patterns, acPattern{text: strings.ToLower(pattern), data: data})
}

// AddPatterns adds several patterns sharing the same data.
func (ac *AhoCorasick) AddPatterns(patterns []string, data any) {
	for _, p := range patterns {
		ac.AddPattern(p, data)
	}
}

// Build constructs the trie and its failure links. It must be called after
// the last AddPattern and before CountDistinct.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode()
	for i, p := range ac.patterns {
		ac.insertPattern(i, p.text)
	}
	ac.buildFailureLinks()
	ac.built = true
}

func (ac *AhoCorasick) insertPattern(index int, pattern string) {
	node := ac.root
	for _, ch := range pattern {
		if node.children[ch] == nil {
			node.children[ch] = newACNode()
		}
		node = node.children[ch]
	}
	node.output = append(node.output, index)
}

// buildFailureLinks links every node to its longest proper suffix present
// in the trie, breadth first.
func (ac *AhoCorasick) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = ac.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// CountDistinct returns, per pattern data value, how many distinct
// patterns occur in the text at least once. Repeated occurrences of the
// same pattern count once. An automaton that is not built matches nothing.
func (ac *AhoCorasick) CountDistinct(text string) map[any]int {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	counts := make(map[any]int)
	if !ac.built || len(ac.patterns) == 0 {
		return counts
	}

	seen := make(map[int]struct{})
	node := ac.root
	for _, ch := range strings.ToLower(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = ac.root
			continue
		}
		node = node.children[ch]

		for _, idx := range node.output {
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			counts[ac.patterns[idx].data]++
		}
	}
	return counts
}
