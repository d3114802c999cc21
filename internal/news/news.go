// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package news serves the fixed demo news feed and recommendations.
//
// The data is static. Callers receive copies and may modify them freely.
package news

import (
	"strings"
)

// Article is one item of the news feed.
type Article struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// Recommendation is an article suggested for a user.
type Recommendation struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

var feed = []Article{
	{ID: 1, Title: "AI Breakthrough", Category: "Technology", Summary: "New transformer model released."},
	{ID: 2, Title: "Market Rally", Category: "Business", Summary: "Stocks hit all-time high."},
	{ID: 3, Title: "Championship Game", Category: "Sports", Summary: "Team A wins the cup."},
}

var recommendations = []Recommendation{
	{ID: 4, Title: "Recommended: Python 3.12 Features", Category: "Technology", Reason: "Based on your reading history"},
}

// Feed returns the full feed in id order.
func Feed() []Article {
	out := make([]Article, len(feed))
	copy(out, feed)
	return out
}

// FeedByCategory returns the articles whose category matches, ignoring
// case. An empty category returns the full feed.
func FeedByCategory(category string) []Article {
	if category == "" {
		return Feed()
	}
	out := make([]Article, 0, len(feed))
	for _, a := range feed {
		if strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out
}

// Recommendations returns the recommendations for userID. Every user
// currently receives the same list.
func Recommendations(userID string) []Recommendation {
	_ = userID
	out := make([]Recommendation, len(recommendations))
	copy(out, recommendations)
	return out
}
