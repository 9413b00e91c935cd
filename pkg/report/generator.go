package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// ReportGenerator represents the feature that generate coverage report.
type ReportGenerator interface {
	GenerateReport(summary *Summary) error
}

// NewReportGenerator creates a report generator for the given format.
// The report is written to <outputPath>/<reportName>.<ext> when outputPath is not empty,
// and copied to writer when writer is not nil.
func NewReportGenerator(
	format Format,
	outputPath string,
	reportName string,
	writer io.Writer,
	logger logrus.FieldLogger,
) (ReportGenerator, error) {
	if logger == nil {
		logger = logrus.New()
	}
	logger = logger.WithField("source", "generator")

	switch format {
	case MarkdownFormat, "":
		return &markdownReportGenerator{outputPath: outputPath, reportName: reportName, writer: writer, logger: logger}, nil
	case HTMLFormat:
		return &htmlReportGenerator{outputPath: outputPath, reportName: reportName, writer: writer, logger: logger}, nil
	case JSONFormat:
		return &jsonReportGenerator{outputPath: outputPath, reportName: reportName, writer: writer, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// htmlReportGenerator implements a html style report generator.
type htmlReportGenerator struct {
	outputPath string
	reportName string
	writer     io.Writer
	logger     logrus.FieldLogger
}

var _ ReportGenerator = (*htmlReportGenerator)(nil)

// GenerateReport renders the summary with the html template.
func (g *htmlReportGenerator) GenerateReport(summary *Summary) error {
	writers := []io.Writer{}
	if g.writer != nil {
		writers = append(writers, g.writer)
	}

	var reportFile string
	if g.outputPath != "" {
		reportFile = filepath.Join(g.outputPath, finalName(g.reportName, HTMLFormat))
		f, err := os.Create(reportFile)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		return nil
	}

	if err := htmlCoverageReportTemplate.Execute(io.MultiWriter(writers...), summary); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if reportFile != "" {
		g.logger.Debugf("generate html report to %s", reportFile)
	}
	return nil
}

// jsonReportGenerator dumps the summary as indented json.
type jsonReportGenerator struct {
	outputPath string
	reportName string
	writer     io.Writer
	logger     logrus.FieldLogger
}

var _ ReportGenerator = (*jsonReportGenerator)(nil)

func (g *jsonReportGenerator) GenerateReport(summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	data = append(data, '\n')

	if g.writer != nil {
		if _, err := g.writer.Write(data); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if g.outputPath == "" {
		return nil
	}

	reportFile := filepath.Join(g.outputPath, finalName(g.reportName, JSONFormat))
	if err := os.WriteFile(reportFile, data, 0644); err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	g.logger.Debugf("generate json report to %s", reportFile)
	return nil
}

func finalName(reportName string, format Format) string {
	ext := "md"
	switch format {
	case HTMLFormat:
		ext = "html"
	case JSONFormat:
		ext = "json"
	}
	return fmt.Sprintf("%s.%s", reportName, ext)
}

// htmlCoverageReportTemplate is the render engine for html coverage report.
var htmlCoverageReportTemplate = template.Must(
	template.New("htmlReportTemplate").
		Funcs(template.FuncMap{"FormatPercent": FormatPercent}).
		Funcs(template.FuncMap{"FormatFraction": FormatFraction}).
		Funcs(template.FuncMap{"NormalizeLines": normalizeLines}).
		Parse(htmlCoverageReport),
)

// normalizeLines pluralize the noun if number is greater than one.
func normalizeLines(lines int) string {
	if lines < 2 {
		return fmt.Sprintf("%d line", lines)
	}
	return fmt.Sprintf("%d lines", lines)
}
