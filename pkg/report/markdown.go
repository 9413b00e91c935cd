package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// RenderMarkdown renders the summary as a markdown report: an overall table followed by
// a collapsible block per target listing the coverage of every file.
func RenderMarkdown(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Coverage result\n")
	fmt.Fprintf(&b, "| Overall Percent Covered | %s%% |\n", FormatPercent(summary.CoveragePercent))
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Executable Lines | %d |\n", summary.ExecutableLines)
	fmt.Fprintf(&b, "| Covered Lines | %d |\n\n", summary.CoveredLines)
	b.WriteString("# Details\n")

	for _, target := range summary.Targets {
		b.WriteString("<details>\n\n")
		fmt.Fprintf(&b, "<summary>%s (%s%%)</summary>\n\n", target.Name, FormatFraction(target.LineCoverage))

		b.WriteString("| File | Coverage |\n")
		b.WriteString("| --- | --- |\n")
		for _, file := range target.Files {
			fmt.Fprintf(&b, "| %s | %s%% |\n", file.Name, FormatFraction(file.LineCoverage))
		}

		b.WriteString("\n</details>\n\n")
	}

	return b.String()
}

// markdownReportGenerator writes the markdown report to a file and/or a writer.
type markdownReportGenerator struct {
	// outputPath report directory, empty disables the file
	outputPath string
	// reportName report name without extension
	reportName string
	// writer receives a copy of the report, may be nil
	writer io.Writer
	logger logrus.FieldLogger
}

var _ ReportGenerator = (*markdownReportGenerator)(nil)

func (g *markdownReportGenerator) GenerateReport(summary *Summary) error {
	markdown := RenderMarkdown(summary)

	if g.writer != nil {
		if _, err := io.WriteString(g.writer, markdown); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if g.outputPath == "" {
		return nil
	}

	reportFile := filepath.Join(g.outputPath, finalName(g.reportName, MarkdownFormat))
	if err := os.WriteFile(reportFile, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	g.logger.Debugf("generate markdown report to %s", reportFile)
	return nil
}
