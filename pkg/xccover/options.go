package xccover

import (
	"fmt"
	"io"

	"github.com/Azure/xccover/pkg/action"
	"github.com/Azure/xccover/pkg/dbclient"
	"github.com/Azure/xccover/pkg/report"
	"github.com/sirupsen/logrus"
)

const (
	DefaultReportName = "coverage"
	// ReportOutputName is the step output that receives the markdown report.
	ReportOutputName = "report"
)

// ReportOption contains the input for xccover report command.
type ReportOption struct {
	ResultBundle string
	Targets      report.TargetFilter
	Xcrun        string

	CoverageBaseline float64
	ReportFormat     report.Format
	ReportName       string
	OutputDir        string
	Style            string
	Colored          bool
	StepSummary      bool
	RepositoryPath   string

	DbOption *dbclient.DBOption

	Executor     Executor
	OutputWriter action.OutputWriter
	Stdout       io.Writer
	Logger       logrus.FieldLogger
}

// NewReportOption returns a ReportOption with default values.
func NewReportOption() *ReportOption {
	return &ReportOption{
		Xcrun:          DefaultXcrun,
		ReportFormat:   report.MarkdownFormat,
		ReportName:     DefaultReportName,
		Style:          report.DefaultStyle,
		RepositoryPath: "./",
		DbOption:       &dbclient.DBOption{},
	}
}

func (o *ReportOption) Validate() error {
	if o.CoverageBaseline < 0 || o.CoverageBaseline > 100 {
		return fmt.Errorf("coverage baseline must be between 0 and 100, got %.2f", o.CoverageBaseline)
	}
	if err := o.Targets.Validate(); err != nil {
		return err
	}
	if o.DbOption == nil {
		return nil
	}
	return o.DbOption.Validate()
}
