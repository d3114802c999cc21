// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package cache provides in-memory lookup structures shared by the
classification strategies.

# Aho-Corasick

AhoCorasick matches a fixed keyword set against a text in a single pass.
The rule-based classifier builds one automaton holding every category's
keywords, tagging each keyword with its category, and scores a text with
CountDistinct:

	ac := cache.NewAhoCorasick()
	ac.AddPatterns([]string{"ai", "iphone", "chip"}, "Technology")
	ac.AddPatterns([]string{"stock", "market"}, "Business")
	ac.Build()

	counts := ac.CountDistinct("Apple releases new iPhone with AI chip")
	// counts["Technology"] == 3

Matching is substring based and case-insensitive, so "ai" also occurs in
"chain". Patterns are lowercased on insertion and texts are lowercased
before the walk.

# Thread Safety

Build must complete before concurrent use. After that, CountDistinct is
safe to call from many goroutines; the automaton is guarded by a
sync.RWMutex and never mutated by a lookup.
*/
package cache
