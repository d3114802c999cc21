// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package trainer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/flipitnews/internal/corpus"
	"github.com/tomtom215/flipitnews/internal/ml"
)

var rule = strings.Repeat("=", 80)

// Report renders the evaluation report of a training run.
func Report(res *Result) string {
	lines := []string{
		rule,
		"MODEL TRAINING & EVALUATION REPORT",
		"Generated: " + res.Generated.Format("2006-01-02 15:04:05"),
		rule,
		"",
		"📊 Dataset: " + res.DataPath,
		fmt.Sprintf("Total samples: %d", res.TotalSamples),
		"Categories: " + formatList(res.Categories),
		"Category distribution:\n" + formatDistribution(res.Distribution),
		"",
		fmt.Sprintf("Train samples: %d", res.TrainSamples),
		fmt.Sprintf("Test samples: %d", res.TestSamples),
		"",
		rule,
	}

	for _, c := range res.Candidates {
		lines = append(lines,
			"\n"+rule,
			"MODEL: "+c.Name,
			rule,
			"\n🏆 Accuracy: "+formatAccuracy(c.Accuracy),
			"\n📊 Classification Report:",
			c.Report,
			"\n🔢 Confusion Matrix:",
			ml.FormatConfusionMatrix(c.Confusion),
		)
	}

	if len(res.Candidates) > 0 {
		best := res.BestCandidate()
		lines = append(lines,
			"\n"+rule,
			"BEST MODEL: "+best.Name,
			"BEST ACCURACY: "+formatAccuracy(best.Accuracy),
			rule,
			"\n💾 Best model saved to: "+res.ModelLocation,
		)
	}

	lines = append(lines, "\n"+Summary(res))
	return strings.Join(lines, "\n")
}

// Summary renders the per-candidate accuracy table.
func Summary(res *Result) string {
	var sb strings.Builder
	sb.WriteString(rule + "\nSUMMARY\n" + rule + "\n")
	for _, c := range res.Candidates {
		fmt.Fprintf(&sb, "%-20s: %.2f%%\n", c.Name, c.Accuracy*100)
	}
	sb.WriteString(rule)
	return sb.String()
}

// formatAccuracy renders 0.9123 as "0.9123 (91.23%)".
func formatAccuracy(acc float64) string {
	return fmt.Sprintf("%.4f (%.2f%%)", acc, acc*100)
}

// formatList renders labels as ['a', 'b'].
func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// formatDistribution renders counts as a two-column table headed by the
// label column name, most frequent first.
func formatDistribution(dist []corpus.CategoryCount) string {
	labelWidth := len("Category")
	countWidth := 1
	for _, d := range dist {
		if len(d.Category) > labelWidth {
			labelWidth = len(d.Category)
		}
		if w := len(strconv.Itoa(d.Count)); w > countWidth {
			countWidth = w
		}
	}

	rows := make([]string, 0, len(dist)+1)
	rows = append(rows, "Category")
	for _, d := range dist {
		rows = append(rows, fmt.Sprintf("%-*s    %*d", labelWidth, d.Category, countWidth, d.Count))
	}
	return strings.Join(rows, "\n")
}
