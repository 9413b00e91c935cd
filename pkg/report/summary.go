package report

import (
	"fmt"
	"strconv"

	"github.com/Azure/xccover/pkg/parser"
)

// Summarize builds the summary of a coverage report restricted by filter.
//
// With an empty filter the report totals and all targets pass through unchanged.
// Otherwise only the targets selected by the filter are kept, in report order,
// and the totals are the sums over those targets. Filter entries that select
// nothing are not an error, they are collected into UnmatchedTargets.
func Summarize(coverageReport *parser.CoverageReport, filter TargetFilter) *Summary {
	summary := &Summary{
		Filter:  filter,
		Targets: []*parser.Target{},
	}

	if filter.Empty() {
		summary.ExecutableLines = coverageReport.ExecutableLines
		summary.CoveredLines = coverageReport.CoveredLines
		summary.Targets = append(summary.Targets, coverageReport.Targets...)
		summary.CoveragePercent = percentCovered(summary.ExecutableLines, summary.CoveredLines)
		return summary
	}

	used := make([]bool, len(filter))
	for _, target := range coverageReport.Targets {
		selected := false
		for i, entry := range filter {
			if matches(entry, target.Name) {
				used[i] = true
				selected = true
			}
		}
		if !selected {
			continue
		}

		summary.Targets = append(summary.Targets, target)
		summary.ExecutableLines += target.ExecutableLines
		summary.CoveredLines += target.CoveredLines
	}

	for i, entry := range filter {
		if !used[i] {
			summary.UnmatchedTargets = append(summary.UnmatchedTargets, entry)
		}
	}

	summary.CoveragePercent = percentCovered(summary.ExecutableLines, summary.CoveredLines)
	return summary
}

// percentCovered returns covered / total * 100 rounded to two decimals.
func percentCovered(total, covered int) float64 {
	// zero denominator
	if total == 0 {
		return 0
	}
	c := float64(covered) / float64(total) * 100
	percent, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", c), 64)
	return percent
}

// FormatPercent formats a percent value with exactly two decimals, e.g. 7.00 or 100.00.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.2f", percent)
}

// FormatFraction formats a 0..1 coverage fraction as a percent with two decimals.
func FormatFraction(fraction float64) string {
	return FormatPercent(fraction * 100)
}
