// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package textnorm implements the text cleaning applied to every article
// before it reaches a vectorizer, both at training time and at inference time.
//
// The cleaning steps run in a fixed order:
//  1. Unicode lowercase
//  2. remove bracketed segments such as "[Reuters]" (non-greedy, single line)
//  3. remove ASCII punctuation
//  4. remove every word that contains a digit ("covid19", "2024", "q3")
//
// Trained artifacts record Version so that a model is never served with a
// different cleaning routine than the one it was fitted with.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Version identifies the cleaning routine. Bump it whenever Normalize changes
// its output for any input.
const Version = "textnorm/1"

// Punctuation is the ASCII punctuation set removed by Normalize.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	bracketPattern    = regexp.MustCompile(`\[.*?\]`)
	digitWordPattern  = regexp.MustCompile(`[\p{L}\p{N}_]*\p{Nd}[\p{L}\p{N}_]*`)
	punctuationFilter = func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}
)

// Normalize returns the cleaned form of text. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// cases.Caser is stateful and not safe for concurrent use.
	text = cases.Lower(language.Und).String(text)
	text = bracketPattern.ReplaceAllString(text, "")
	text = strings.Map(punctuationFilter, text)
	text = digitWordPattern.ReplaceAllString(text, "")
	return text
}

// NormalizeValue cleans a loosely typed cell value. Strings and non-nil string
// pointers are normalized; anything else yields the empty string.
func NormalizeValue(v any) string {
	switch s := v.(type) {
	case string:
		return Normalize(s)
	case *string:
		if s == nil {
			return ""
		}
		return Normalize(*s)
	default:
		return ""
	}
}

// NormalizeAll cleans a slice of texts or cell values into a new slice,
// applying NormalizeValue to each element.
func NormalizeAll[T any](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = NormalizeValue(v)
	}
	return out
}
