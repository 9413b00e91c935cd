package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Azure/xccover/pkg/action"
	"github.com/Azure/xccover/pkg/dbclient"
	"github.com/Azure/xccover/pkg/options"
	"github.com/Azure/xccover/pkg/report"
	"github.com/Azure/xccover/pkg/xccover"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportLong = `Generate a markdown coverage report from an Xcode result bundle.

Use this tool to convert the coverage data of an .xcresult bundle, read with 'xcrun xccov',
into a markdown report, optionally restricted to some build targets.
When running in GitHub Actions the report is written to the 'report' step output,
and inputs can be passed with the INPUT_RESULT-BUNDLE and INPUT_TARGETS variables.
`

	reportExample = `# Generate the coverage report of the app and framework targets.
xccover report --result-bundle build/Test.xcresult --targets MyApp.app,MyKit.framework

# Generate an html report, and coverage should be greater than 80%
xccover report --result-bundle build/Test.xcresult --format html --output /tmp --coverage-baseline 80.0

# Generate the report and send the coverage data to kusto database.
export KUSTO_TENANT_ID=00000000-0000-0000-0000-000000000000
export KUSTO_CLIENT_ID=00000000-0000-0000-0000-000000000000
export KUSTO_CLIENT_SECRET=xxxxxxxxxxxxxxxxxxxx
xccover report --result-bundle build/Test.xcresult \
	--data-collection-enabled \
	--store-type Kusto \
	--endpoint https://your.kusto.windows.net/ \
	--database kustodb_name \
	--event kusto_event
`
)

const (
	FlagVerbose      = "verbose"
	FlagVerboseShort = "v"

	flagDataCollectionEnabled = "data-collection-enabled"
	flagStoreType             = "store-type"
	flagEndpoint              = "endpoint"
	flagDatabase              = "database"
	flagEvent                 = "event"
	flagCustomColumns         = "custom-columns"

	flagXcrun            = "xcrun"
	flagFormat           = "format"
	flagOutput           = "output"
	flagOutputShort      = "o"
	flagReportName       = "report-name"
	flagStyle            = "style"
	flagCoverageBaseline = "coverage-baseline"
	flagStepSummary      = "step-summary"
	flagRepositoryPath   = "repository-path"
)

func createLogger(cmd *cobra.Command, v *viper.Viper) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if v.GetBool(FlagVerbose) {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// isTerminal reports whether the report preview is written to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewXCCoverCommand creates a command object for generating coverage reports of xcode result bundles.
// Step outputs and summaries go to writer.
func NewXCCoverCommand(writer action.OutputWriter) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "xccover",
		Short:         "coverage report tool for xcode result bundles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP(FlagVerbose, FlagVerboseShort, false, "verbose output")

	cmd.PersistentFlags().Bool(flagDataCollectionEnabled, false, "whether or not enable collecting coverage data")
	cmd.PersistentFlags().String(flagStoreType, string(dbclient.None), "db client type")
	cmd.PersistentFlags().String(flagEndpoint, "", "kusto endpoint")
	cmd.PersistentFlags().String(flagDatabase, "", "kusto database")
	cmd.PersistentFlags().String(flagEvent, "", "kusto event")
	cmd.PersistentFlags().StringSlice(flagCustomColumns, []string{}, "custom kusto columns, format: {column}:{datatype}:{value}")

	cmd.AddCommand(newReportCommand(writer))
	cmd.AddCommand(newVersionCommand(Version, Commit, Date))
	return cmd
}

func newReportCommand(writer action.OutputWriter) *cobra.Command {
	o := xccover.NewReportOption()

	cmd := &cobra.Command{
		Use:     "report",
		Short:   "generate markdown coverage report from an xcode result bundle",
		Long:    reportLong,
		Example: reportExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := options.NewViper(cmd.Flags())
			if err != nil {
				return xccover.WrapError(err, "bind flags")
			}

			inputs, err := options.Load(v)
			if err != nil {
				return xccover.WrapError(fmt.Errorf("%w: %w", xccover.ErrInvalidInput, err), "load inputs")
			}

			o.ResultBundle = inputs.ResultBundle
			o.Targets = inputs.Targets
			o.Xcrun = v.GetString(flagXcrun)
			o.ReportFormat = report.Format(v.GetString(flagFormat))
			o.OutputDir = v.GetString(flagOutput)
			o.ReportName = v.GetString(flagReportName)
			o.Style = v.GetString(flagStyle)
			o.CoverageBaseline = v.GetFloat64(flagCoverageBaseline)
			o.StepSummary = v.GetBool(flagStepSummary)
			o.RepositoryPath = v.GetString(flagRepositoryPath)
			o.DbOption = &dbclient.DBOption{
				DataCollectionEnabled: v.GetBool(flagDataCollectionEnabled),
				DbType:                dbclient.ClientType(v.GetString(flagStoreType)),
				KustoOption: dbclient.KustoOption{
					Endpoint:      v.GetString(flagEndpoint),
					Database:      v.GetString(flagDatabase),
					Event:         v.GetString(flagEvent),
					CustomColumns: v.GetStringSlice(flagCustomColumns),
				},
			}

			o.Logger = createLogger(cmd, v)
			o.OutputWriter = writer
			o.Stdout = cmd.OutOrStdout()
			o.Colored = isTerminal(o.Stdout)

			runner, err := xccover.NewReportRunner(o)
			if err != nil {
				return xccover.WrapError(err, "NewReportRunner")
			}

			if _, err := runner.Run(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String(options.InputResultBundle, "", "path of the xcode result bundle (.xcresult)")
	cmd.Flags().String(options.InputTargets, "", "comma separated build targets to include, glob patterns are allowed, all targets when empty")
	cmd.Flags().String(flagXcrun, o.Xcrun, "the xcrun executable used to run xccov")
	cmd.Flags().String(flagFormat, string(o.ReportFormat), "format of the coverage report file, one of: html, json, markdown")
	cmd.Flags().StringP(flagOutput, flagOutputShort, "", "directory of the coverage report file, no file is written when empty")
	cmd.Flags().String(flagReportName, o.ReportName, "coverage report file name")
	cmd.Flags().Float64(flagCoverageBaseline, 0, "returns an error code if overall coverage is less than coverage baseline")
	cmd.Flags().String(flagStyle, o.Style, "report preview format style, refer to https://pygments.org/docs/styles for more information")
	cmd.Flags().Bool(flagStepSummary, false, "append the report to the GitHub step summary")
	cmd.Flags().String(flagRepositoryPath, o.RepositoryPath, "the root directory of git repository")

	return cmd
}
