// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func repeatLabels(counts map[string]int, order ...string) []string {
	var out []string
	for _, label := range order {
		for i := 0; i < counts[label]; i++ {
			out = append(out, label)
		}
	}
	return out
}

func TestStratifiedSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		labels   []string
		wantTest int
	}{
		{
			name:     "proportional allocation",
			labels:   repeatLabels(map[string]int{"a": 10, "b": 5}, "a", "b"),
			wantTest: 3,
		},
		{
			name:     "every class on both sides",
			labels:   repeatLabels(map[string]int{"a": 2, "b": 2}, "a", "b"),
			wantTest: 2,
		},
		{
			name:     "single class",
			labels:   repeatLabels(map[string]int{"x": 5}, "x"),
			wantTest: 1,
		},
		{
			name:     "interleaved labels",
			labels:   []string{"b", "a", "b", "a", "c", "c", "a", "b", "c", "a"},
			wantTest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			train, test, err := StratifiedSplit(tt.labels, 0.2, 42)
			if err != nil {
				t.Fatalf("StratifiedSplit() error = %v", err)
			}
			if len(test) != tt.wantTest {
				t.Errorf("len(test) = %d, want %d", len(test), tt.wantTest)
			}
			if len(train)+len(test) != len(tt.labels) {
				t.Errorf("len(train)+len(test) = %d, want %d", len(train)+len(test), len(tt.labels))
			}

			seen := make(map[int]bool)
			for _, idx := range append(append([]int(nil), train...), test...) {
				if seen[idx] {
					t.Errorf("index %d appears twice", idx)
				}
				seen[idx] = true
			}

			trainClasses := make(map[string]bool)
			testClasses := make(map[string]bool)
			for _, idx := range train {
				trainClasses[tt.labels[idx]] = true
			}
			for _, idx := range test {
				testClasses[tt.labels[idx]] = true
			}
			for _, label := range tt.labels {
				if !trainClasses[label] || !testClasses[label] {
					t.Errorf("class %q missing from train or test", label)
				}
			}

			for i := 1; i < len(test); i++ {
				if test[i] <= test[i-1] {
					t.Errorf("test indices not sorted: %v", test)
					break
				}
			}
		})
	}
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	t.Parallel()

	labels := repeatLabels(map[string]int{"a": 20, "b": 15, "c": 7}, "a", "b", "c")
	train1, test1, err := StratifiedSplit(labels, 0.2, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	train2, test2, err := StratifiedSplit(labels, 0.2, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}
}

func TestStratifiedSplit_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		labels   []string
		testSize float64
		wantErr  error
		wantText string
	}{
		{name: "empty", labels: nil, testSize: 0.2, wantErr: ErrEmptyDataset},
		{name: "class too small", labels: []string{"a", "a", "a", "lonely"}, testSize: 0.2, wantErr: ErrClassTooSmall, wantText: "lonely"},
		{name: "bad test size", labels: []string{"a", "a"}, testSize: 1.5, wantText: "test size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := StratifiedSplit(tt.labels, tt.testSize, 42)
			if err == nil {
				t.Fatal("StratifiedSplit() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}
