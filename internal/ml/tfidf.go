// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
)

// ErrEmptyVocabulary is returned when fitting produces no terms, typically
// because every document is empty or made only of stop words.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no usable terms")

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TfidfConfig contains configuration for the TF-IDF vectorizer.
type TfidfConfig struct {
	// MaxFeatures caps the vocabulary to the most frequent terms across the
	// corpus. Zero or negative means no cap.
	MaxFeatures int `json:"max_features"`

	// StopWords drops English stop words before counting.
	StopWords bool `json:"stop_words"`
}

// DefaultTfidfConfig returns the vectorizer configuration used for training.
func DefaultTfidfConfig() TfidfConfig {
	return TfidfConfig{
		MaxFeatures: 5000,
		StopWords:   true,
	}
}

// TfidfVectorizer converts documents into L2-normalized TF-IDF rows.
//
// Term weights use raw counts times the smoothed inverse document frequency
// idf(t) = ln((1+n)/(1+df(t))) + 1.
type TfidfVectorizer struct {
	Config     TfidfConfig    `json:"config"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// NewTfidfVectorizer creates an unfitted vectorizer.
func NewTfidfVectorizer(cfg TfidfConfig) *TfidfVectorizer {
	return &TfidfVectorizer{Config: cfg}
}

// Tokenize splits a document into terms, applying the stop list when enabled.
func (v *TfidfVectorizer) Tokenize(doc string) []string {
	tokens := tokenPattern.FindAllString(doc, -1)
	if !v.Config.StopWords {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if !IsStopWord(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// NumFeatures returns the vocabulary size.
func (v *TfidfVectorizer) NumFeatures() int {
	return len(v.IDF)
}

// Fit learns the vocabulary and document frequencies from docs.
func (v *TfidfVectorizer) Fit(ctx context.Context, docs []string) error {
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	termCount := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range v.Tokenize(doc) {
			termCount[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}
	if len(termCount) == 0 {
		return ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(termCount))
	for term := range termCount {
		terms = append(terms, term)
	}

	// Most frequent first; alphabetical among equal counts.
	sort.Slice(terms, func(i, j int) bool {
		ci, cj := termCount[terms[i]], termCount[terms[j]]
		if ci != cj {
			return ci > cj
		}
		return terms[i] < terms[j]
	})
	if v.Config.MaxFeatures > 0 && len(terms) > v.Config.MaxFeatures {
		terms = terms[:v.Config.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return nil
}

// Transform vectorizes a single document. Unknown terms are ignored, so a
// document with no known terms yields an empty vector.
func (v *TfidfVectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range v.Tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for k, idx := range indices {
		w := counts[idx] * v.IDF[idx]
		values[k] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range values {
			values[k] /= norm
		}
	}

	return SparseVector{Indices: indices, Values: values}
}

// TransformAll vectorizes every document.
func (v *TfidfVectorizer) TransformAll(docs []string) []SparseVector {
	rows := make([]SparseVector, len(docs))
	for i, doc := range docs {
		rows[i] = v.Transform(doc)
	}
	return rows
}

// FitTransform fits on docs and returns their vectors.
func (v *TfidfVectorizer) FitTransform(ctx context.Context, docs []string) ([]SparseVector, error) {
	if err := v.Fit(ctx, docs); err != nil {
		return nil, err
	}
	return v.TransformAll(docs), nil
}
