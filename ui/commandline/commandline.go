// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline renders a loaded dataset and its examples for the command line.
package commandline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/idxmnist/pkg/mnist"
)

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	tableBorderColor  = "#705090"
)

// LabelHistogram counts the occurrences of each label value.
func LabelHistogram(labels []byte) (counts [256]int) {
	for _, label := range labels {
		counts[label]++
	}
	return
}

// FormatHistogram lists the non-zero counts as "label:count", in label order.
func FormatHistogram(counts [256]int) string {
	parts := make([]string, 0, mnist.NumClasses)
	for label, count := range counts {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d:%s", label, humanize.Comma(int64(count))))
		}
	}
	return strings.Join(parts, " ")
}

// SummaryTable returns a table describing the loaded dataset: examples per subset, image
// shape, label distribution and memory used. loadTime is omitted if 0.
func SummaryTable(dir string, ds *mnist.Dataset, loadTime time.Duration) string {
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		})
	table.Row("Directory", dir)
	shape := fmt.Sprintf("%dx%d", ds.Rows(), ds.Cols())
	for _, subset := range []mnist.Subset{mnist.Train, mnist.Test} {
		table.Row(subset.String()+" examples", fmt.Sprintf("%s of %s",
			humanize.Comma(int64(ds.Len(subset))), shape))
		table.Row(subset.String()+" labels", FormatHistogram(LabelHistogram(ds.Labels(subset))))
	}
	table.Row("Memory", humanize.IBytes(uint64(ds.MemoryBytes())))
	if loadTime > 0 {
		table.Row("Load time", FormatDuration(loadTime))
	}
	return table.String()
}
