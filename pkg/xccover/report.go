package xccover

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/xccover/pkg/action"
	"github.com/Azure/xccover/pkg/dbclient"
	"github.com/Azure/xccover/pkg/gittool"
	"github.com/Azure/xccover/pkg/report"
	"github.com/sirupsen/logrus"
)

// NewReportRunner creates the runner that turns a result bundle into a coverage report.
func NewReportRunner(o *ReportOption) (XCCover, error) {
	var (
		dbClient dbclient.DbClient
		err      error
	)

	logger := o.Logger
	if logger == nil {
		logger = logrus.New()
	}
	logger = logger.WithField("source", "report")

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("validate option: %w", err)
	}

	if o.DbOption != nil && o.DbOption.DataCollectionEnabled {
		dbClient, err = o.DbOption.GetDbClient(logger)
		if err != nil {
			return nil, fmt.Errorf("get db client: %w", err)
		}
	}

	var reportGenerator report.ReportGenerator
	if o.OutputDir != "" {
		reportGenerator, err = report.NewReportGenerator(o.ReportFormat, o.OutputDir, o.ReportName, nil, logger)
		if err != nil {
			return nil, fmt.Errorf("report generator: %w", err)
		}
	}

	outputWriter := o.OutputWriter
	if outputWriter == nil {
		outputWriter = action.NewOutputWriter(io.Discard, io.Discard)
	}

	stdout := o.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	logger.Debugf("result bundle: %s, targets: %v, output dir: %s", o.ResultBundle, o.Targets, o.OutputDir)

	return &reportRunner{
		resultBundle:     o.ResultBundle,
		targets:          o.Targets,
		coverageBaseline: o.CoverageBaseline,
		style:            o.Style,
		colored:          o.Colored,
		stepSummary:      o.StepSummary,
		repositoryPath:   o.RepositoryPath,
		extractor:        NewExtractor(o.Executor, o.Xcrun, logger),
		reportGenerator:  reportGenerator,
		dbClient:         dbClient,
		outputWriter:     outputWriter,
		stdout:           stdout,
		logger:           logger,
	}, nil
}

var _ XCCover = (*reportRunner)(nil)

type reportRunner struct {
	resultBundle     string
	targets          report.TargetFilter
	coverageBaseline float64
	style            string
	colored          bool
	stepSummary      bool
	repositoryPath   string

	extractor       *Extractor
	reportGenerator report.ReportGenerator
	dbClient        dbclient.DbClient
	outputWriter    action.OutputWriter
	stdout          io.Writer

	logger logrus.FieldLogger
}

// Run validates the bundle, extracts and summarizes its coverage, and publishes the markdown report.
// The report output is only set when every step, including the coverage baseline check, succeeds.
func (r *reportRunner) Run(ctx context.Context) (*report.Summary, error) {
	bundlePath, err := ValidateBundlePath(r.resultBundle)
	if err != nil {
		return nil, WrapError(err, "validate result bundle")
	}

	coverageReport, err := r.extractor.Extract(ctx, bundlePath)
	if err != nil {
		return nil, WrapError(err, "extract coverage")
	}

	summary := report.Summarize(coverageReport, r.targets)
	for _, name := range summary.UnmatchedTargets {
		r.logger.Warnf("target %q matches no target in the result bundle, available targets: %v", name, coverageReport.TargetNames())
	}
	dump(summary, r.logger)

	markdown := report.RenderMarkdown(summary)
	if err := report.Highlight(r.stdout, markdown, r.style, r.colored); err != nil {
		r.logger.WithError(err).Warn("preview report")
	}

	if r.reportGenerator != nil {
		if err := r.reportGenerator.GenerateReport(summary); err != nil {
			return nil, WrapError(fmt.Errorf("generate report: %w", err), "generate report")
		}
	}

	if r.dbClient != nil {
		if err := store(ctx, r.dbClient, summary, r.revision()); err != nil {
			return nil, WrapError(err, "store coverage data")
		}
	}

	if r.coverageBaseline > 0 && summary.CoveragePercent < r.coverageBaseline {
		err := fmt.Errorf("%w: %s%% < %s%%", ErrLowCoverage, report.FormatPercent(summary.CoveragePercent), report.FormatPercent(r.coverageBaseline))
		return summary, WrapErrorWithCode(err, LowCoverageErrorExitCode, "coverage is too low")
	}

	if err := r.outputWriter.SetOutput(ReportOutputName, markdown); err != nil {
		return nil, WrapError(fmt.Errorf("set output %s: %w", ReportOutputName, err), "set output")
	}

	if r.stepSummary {
		if err := r.outputWriter.AppendSummary(markdown); err != nil {
			return nil, WrapError(fmt.Errorf("append step summary: %w", err), "append step summary")
		}
	}

	r.logger.Infof("overall coverage %s%% of %d targets", report.FormatPercent(summary.CoveragePercent), len(summary.Targets))
	return summary, nil
}

// revision returns the commit and branch the coverage belongs to, fields are empty when the repository cannot be read.
func (r *reportRunner) revision() revision {
	var rev revision
	client, err := gittool.NewGitClient(r.repositoryPath)
	if err != nil {
		r.logger.WithError(err).Warn("git repository")
		return rev
	}

	if rev.commitID, err = client.HeadCommit(); err != nil {
		r.logger.WithError(err).Warn("head commit")
	}
	if rev.branch, err = client.Branch(); err != nil {
		r.logger.WithError(err).Warn("branch")
	}
	return rev
}

// RenderBundle runs the pipeline without any side effect and returns the markdown report.
func RenderBundle(ctx context.Context, resultBundle string, targets report.TargetFilter, executor Executor) (string, error) {
	var buf bytes.Buffer
	o := NewReportOption()
	o.ResultBundle = resultBundle
	o.Targets = targets
	o.Executor = executor
	o.Stdout = &buf
	o.OutputWriter = action.NewConsoleOutputWriter(io.Discard)

	runner, err := NewReportRunner(o)
	if err != nil {
		return "", err
	}
	if _, err := runner.Run(ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
