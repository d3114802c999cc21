// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"fmt"
	"strconv"
	"strings"
)

// Accuracy returns the fraction of matching predictions.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if i < len(yPred) && yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ConfusionMatrix counts predictions: rows are true classes, columns
// predicted classes.
func ConfusionMatrix(yTrue, yPred []int, nClasses int) [][]int {
	cm := make([][]int, nClasses)
	for k := range cm {
		cm[k] = make([]int, nClasses)
	}
	for i := range yTrue {
		if i >= len(yPred) {
			break
		}
		t, p := yTrue[i], yPred[i]
		if t >= 0 && t < nClasses && p >= 0 && p < nClasses {
			cm[t][p]++
		}
	}
	return cm
}

// ClassScores holds per-class precision, recall, F1 and support.
type ClassScores struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// PerClassScores computes ClassScores for every label. Undefined ratios
// are reported as 0.
func PerClassScores(cm [][]int, labels []string) []ClassScores {
	scores := make([]ClassScores, len(labels))
	for k, label := range labels {
		var tp, predicted, actual int
		for j := range cm {
			predicted += cm[j][k]
			actual += cm[k][j]
		}
		tp = cm[k][k]

		s := ClassScores{Label: label, Support: actual}
		if predicted > 0 {
			s.Precision = float64(tp) / float64(predicted)
		}
		if actual > 0 {
			s.Recall = float64(tp) / float64(actual)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		scores[k] = s
	}
	return scores
}

// ClassificationReport renders a text table of per-class precision, recall,
// F1 and support followed by accuracy, macro and weighted averages.
func ClassificationReport(yTrue, yPred []int, labels []string) string {
	cm := ConfusionMatrix(yTrue, yPred, len(labels))
	scores := PerClassScores(cm, labels)

	width := len("weighted avg")
	for _, label := range labels {
		if len(label) > width {
			width = len(label)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")

	var macro, weighted ClassScores
	total := 0
	for _, s := range scores {
		writeReportRow(&sb, width, s)
		macro.Precision += s.Precision
		macro.Recall += s.Recall
		macro.F1 += s.F1
		weighted.Precision += s.Precision * float64(s.Support)
		weighted.Recall += s.Recall * float64(s.Support)
		weighted.F1 += s.F1 * float64(s.Support)
		total += s.Support
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%*s  %9s %9s %9.2f %9d\n", width, "accuracy", "", "", Accuracy(yTrue, yPred), total)

	if k := float64(len(scores)); k > 0 {
		macro.Precision /= k
		macro.Recall /= k
		macro.F1 /= k
	}
	if total > 0 {
		weighted.Precision /= float64(total)
		weighted.Recall /= float64(total)
		weighted.F1 /= float64(total)
	}
	macro.Label, macro.Support = "macro avg", total
	weighted.Label, weighted.Support = "weighted avg", total
	writeReportRow(&sb, width, macro)
	writeReportRow(&sb, width, weighted)

	return sb.String()
}

func writeReportRow(sb *strings.Builder, width int, s ClassScores) {
	fmt.Fprintf(sb, "%*s  %9.2f %9.2f %9.2f %9d\n", width, s.Label, s.Precision, s.Recall, s.F1, s.Support)
}

// FormatConfusionMatrix renders the matrix as a bracketed grid with
// right-aligned cells, for example:
//
//	[[3 0]
//	 [1 2]]
func FormatConfusionMatrix(cm [][]int) string {
	cellWidth := 1
	for _, row := range cm {
		for _, v := range row {
			if w := len(strconv.Itoa(v)); w > cellWidth {
				cellWidth = w
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, row := range cm {
		if i > 0 {
			sb.WriteString("\n ")
		}
		sb.WriteString("[")
		for j, v := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%*d", cellWidth, v)
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}
