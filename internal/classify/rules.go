// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"math"

	"github.com/tomtom215/flipitnews/internal/cache"
)

// RulesModelName is reported as ModelUsed by the rules strategy.
const RulesModelName = "Rule-Based Classifier"

// Keywords are the per-category keyword lists of the rules strategy.
var Keywords = map[string][]string{
	"Technology": {"ai", "technology", "software", "app", "iphone", "android", "computer", "tech",
		"digital", "cyber", "robot", "chip", "apple", "google", "microsoft"},
	"Business": {"stock", "market", "business", "economy", "finance", "company", "earnings",
		"profit", "investment", "trade", "dollar", "bitcoin", "crypto"},
	"Sports": {"game", "championship", "team", "player", "win", "score", "sports", "football",
		"basketball", "soccer", "olympics", "league", "coach"},
	"Entertainment": {"movie", "film", "actor", "music", "concert", "celebrity", "entertainment",
		"show", "series", "album", "box office", "hollywood"},
	"Politics": {"senate", "congress", "president", "election", "vote", "government", "politics",
		"law", "bill", "policy", "minister", "parliament"},
}

const (
	rulesDefaultCategory   = "Technology"
	rulesDefaultConfidence = 0.65
	rulesBaseConfidence    = 0.60
	rulesConfidenceSpan    = 0.35
	rulesMaxConfidence     = 0.95
)

// RuleClassifier scores each category by how many of its keywords occur in
// the text, as case-insensitive substrings, at least once.
type RuleClassifier struct {
	matcher *cache.AhoCorasick
}

// NewRuleClassifier builds the keyword automaton.
func NewRuleClassifier() *RuleClassifier {
	ac := cache.NewAhoCorasick()
	for _, category := range Categories {
		ac.AddPatterns(Keywords[category], category)
	}
	ac.Build()
	return &RuleClassifier{matcher: ac}
}

// ModelName implements Classifier.
func (c *RuleClassifier) ModelName() string {
	return RulesModelName
}

// Classify picks the category with the most distinct keyword hits; ties go
// to the earliest category in Categories. With no hits the result is
// Technology at 0.65, otherwise confidence is 0.60 plus 0.35 times the
// winner's share of all hits, capped at 0.95.
func (c *RuleClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	category, confidence := c.score(text)
	return Prediction{
		Category:   category,
		Confidence: confidence,
		ModelUsed:  RulesModelName,
		Strategy:   StrategyRules,
	}, nil
}

func (c *RuleClassifier) score(text string) (string, float64) {
	counts := c.matcher.CountDistinct(text)

	best, total := Categories[0], 0
	for _, category := range Categories {
		n := counts[category]
		total += n
		if n > counts[best] {
			best = category
		}
	}

	if counts[best] == 0 {
		return rulesDefaultCategory, rulesDefaultConfidence
	}
	share := float64(counts[best]) / float64(total)
	return best, math.Min(rulesMaxConfidence, rulesBaseConfidence+share*rulesConfidenceSpan)
}
