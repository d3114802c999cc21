// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrClassTooSmall is returned when a class cannot be represented in both
// the train and the test partition.
var ErrClassTooSmall = errors.New("class has fewer than 2 examples")

// StratifiedSplit partitions row indices into train and test sets keeping
// class proportions. The test set holds ceil(n*testSize) rows allotted to
// classes by largest remainder; every class keeps at least one row on each
// side. Both index lists are returned in ascending order.
func StratifiedSplit(labels []string, testSize float64, seed int64) (train, test []int, err error) {
	n := len(labels)
	if n == 0 {
		return nil, nil, ErrEmptyDataset
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size %.3f outside (0,1)", testSize)
	}

	byClass := make(map[string][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]string, 0, len(byClass))
	for class, rows := range byClass {
		if len(rows) < 2 {
			return nil, nil, fmt.Errorf("%w: %q has %d", ErrClassTooSmall, class, len(rows))
		}
		classes = append(classes, class)
	}
	sort.Strings(classes)

	nTest := int(math.Ceil(float64(n)*testSize - 1e-9))
	quotas := allocateLargestRemainder(classes, byClass, nTest, n)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split
	for _, class := range classes {
		rows := append([]int(nil), byClass[class]...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		q := quotas[class]
		test = append(test, rows[:q]...)
		train = append(train, rows[q:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// allocateLargestRemainder splits total across classes proportionally to
// their size, then clamps each share to [1, size-1].
func allocateLargestRemainder(classes []string, byClass map[string][]int, total, n int) map[string]int {
	type share struct {
		class     string
		remainder float64
	}

	quotas := make(map[string]int, len(classes))
	shares := make([]share, 0, len(classes))
	assigned := 0
	for _, class := range classes {
		exact := float64(len(byClass[class])) * float64(total) / float64(n)
		floor := int(math.Floor(exact))
		quotas[class] = floor
		assigned += floor
		shares = append(shares, share{class: class, remainder: exact - float64(floor)})
	}

	sort.SliceStable(shares, func(i, j int) bool { return shares[i].remainder > shares[j].remainder })
	for i := 0; assigned < total && i < len(shares); i++ {
		quotas[shares[i].class]++
		assigned++
	}

	for _, class := range classes {
		size := len(byClass[class])
		if quotas[class] < 1 {
			quotas[class] = 1
		}
		if quotas[class] > size-1 {
			quotas[class] = size - 1
		}
	}
	return quotas
}
