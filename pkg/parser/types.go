package parser

// CoverageReport is the document printed by `xccov view --report --json`.
type CoverageReport struct {
	// LineCoverage is the overall covered fraction, 0..1.
	LineCoverage float64 `json:"lineCoverage"`
	// ExecutableLines counts the lines that account for coverage.
	ExecutableLines int `json:"executableLines"`
	// CoveredLines counts the executable lines reached by tests.
	CoveredLines int `json:"coveredLines"`
	// Targets lists every build target in the order xccov reports them.
	Targets []*Target `json:"targets"`
}

// Target represents the coverage of a single build target, such as an app or a test bundle.
type Target struct {
	Name             string          `json:"name"`
	LineCoverage     float64         `json:"lineCoverage"`
	ExecutableLines  int             `json:"executableLines"`
	CoveredLines     int             `json:"coveredLines"`
	BuildProductPath string          `json:"buildProductPath,omitempty"`
	Files            []*FileCoverage `json:"files"`
}

// FileCoverage represents the coverage of one source file inside a target.
type FileCoverage struct {
	Name            string  `json:"name"`
	Path            string  `json:"path,omitempty"`
	LineCoverage    float64 `json:"lineCoverage"`
	ExecutableLines int     `json:"executableLines,omitempty"`
	CoveredLines    int     `json:"coveredLines,omitempty"`
}

// TargetNames returns the names of all targets in report order.
func (r *CoverageReport) TargetNames() []string {
	names := make([]string, 0, len(r.Targets))
	for _, t := range r.Targets {
		names = append(names, t.Name)
	}
	return names
}
