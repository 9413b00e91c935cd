package report

import "github.com/Azure/xccover/pkg/parser"

// Format is the output format of a coverage report.
type Format string

const (
	MarkdownFormat Format = "markdown"
	HTMLFormat     Format = "html"
	JSONFormat     Format = "json"
)

// Summary represents the coverage view that is rendered into a report.
// When a target filter is applied, the totals are recomputed from the selected targets only.
type Summary struct {
	// ExecutableLines indicates the lines that count for coverage.
	ExecutableLines int `json:"executableLines"`
	// CoveredLines indicates the executable lines reached by tests.
	CoveredLines int `json:"coveredLines"`
	// CoveragePercent is CoveredLines / ExecutableLines * 100, rounded to two decimals.
	CoveragePercent float64 `json:"coveragePercent"`
	// Targets are the selected targets in report order.
	Targets []*parser.Target `json:"targets"`
	// Filter is the target filter used to build the summary, empty means all targets.
	Filter TargetFilter `json:"filter,omitempty"`
	// UnmatchedTargets lists the filter entries that selected no target.
	UnmatchedTargets []string `json:"unmatchedTargets,omitempty"`
}

// Filtered reports whether the summary was restricted to a subset of targets.
func (s *Summary) Filtered() bool {
	return !s.Filter.Empty()
}
