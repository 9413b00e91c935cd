package xccover

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXccovReport = `{
  "coveredLines": 460,
  "lineCoverage": 0.575,
  "executableLines": 800,
  "targets": [
    {
      "coveredLines": 430,
      "lineCoverage": 0.8534,
      "files": [{"name": "AppDelegate.swift", "path": "/src/AppDelegate.swift", "lineCoverage": 0.9, "coveredLines": 90, "executableLines": 100}],
      "name": "AppTarget",
      "executableLines": 500
    },
    {
      "coveredLines": 30,
      "lineCoverage": 0.1,
      "files": [{"name": "AppTests.swift", "path": "/src/AppTests.swift", "lineCoverage": 0.1, "coveredLines": 30, "executableLines": 300}],
      "name": "TestsTarget",
      "executableLines": 300
    }
  ]
}`

// helperMode selects the behavior of TestHelperProcess.
type helperMode string

const (
	helperReport    helperMode = "report"
	helperMalformed helperMode = "malformed"
	helperFail      helperMode = "fail"
	helperCrash     helperMode = "crash"
)

// fakeXcrun patches execCommand so that every command re-executes the test binary as TestHelperProcess.
func fakeXcrun(t *testing.T, mode helperMode, expectBundle string) {
	t.Helper()
	oldCommand := execCommand
	execCommand = func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"GO_HELPER_MODE="+string(mode),
			"GO_HELPER_EXPECT_BUNDLE="+expectBundle,
		)
		return cmd
	}
	t.Cleanup(func() { execCommand = oldCommand })
}

func TestCommandExecutor_Run(t *testing.T) {
	executor := NewCommandExecutor()

	t.Run("captures stdout", func(t *testing.T) {
		fakeXcrun(t, helperReport, "/tmp/Run.xcresult")

		result, err := executor.Run(context.Background(), "xcrun", xccovArgs("/tmp/Run.xcresult")...)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ExitCode)
		assert.JSONEq(t, sampleXccovReport, string(result.Stdout))
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		fakeXcrun(t, helperFail, "/tmp/Run.xcresult")

		result, err := executor.Run(context.Background(), "xcrun", xccovArgs("/tmp/Run.xcresult")...)
		require.NoError(t, err)
		assert.Equal(t, 3, result.ExitCode)
		assert.Equal(t, "error: Failed to load result bundle", result.Stderr)
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := executor.Run(context.Background(), "this_command_does_not_exist_12345")
		assert.Error(t, err)
	})
}

func TestExtractor_Extract(t *testing.T) {
	newExtractor := func() (*Extractor, *bytes.Buffer) {
		var logBuf bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&logBuf)
		return NewExtractor(nil, "", logger), &logBuf
	}

	t.Run("parses the report", func(t *testing.T) {
		bundle := "/tmp/My Tests; rm -rf $HOME.xcresult"
		fakeXcrun(t, helperReport, bundle)

		extractor, logBuf := newExtractor()
		report, err := extractor.Extract(context.Background(), bundle)
		require.NoError(t, err)

		assert.Equal(t, 800, report.ExecutableLines)
		assert.Equal(t, 460, report.CoveredLines)
		assert.Equal(t, []string{"AppTarget", "TestsTarget"}, report.TargetNames())
		assert.Contains(t, logBuf.String(), "xcrun xccov view --report --json")
	})

	t.Run("malformed output", func(t *testing.T) {
		fakeXcrun(t, helperMalformed, "/tmp/Run.xcresult")

		extractor, _ := newExtractor()
		report, err := extractor.Extract(context.Background(), "/tmp/Run.xcresult")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrMalformedOutput)
		assert.Contains(t, err.Error(), "Error: Unable to read coverage data")
		assert.Contains(t, err.Error(), "note: the archive may be incomplete")
	})

	t.Run("non-zero exit", func(t *testing.T) {
		fakeXcrun(t, helperFail, "/tmp/Run.xcresult")

		extractor, _ := newExtractor()
		report, err := extractor.Extract(context.Background(), "/tmp/Run.xcresult")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrExternalTool)

		var toolErr *ExternalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, 3, toolErr.ExitCode)
		assert.Contains(t, err.Error(), "status 3")
		assert.Contains(t, err.Error(), "Failed to load result bundle")
	})

	t.Run("terminated by signal", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("processes are not terminated by signals on windows")
		}
		fakeXcrun(t, helperCrash, "/tmp/Run.xcresult")

		extractor, _ := newExtractor()
		report, err := extractor.Extract(context.Background(), "/tmp/Run.xcresult")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrExternalTool)

		var toolErr *ExternalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, -1, toolErr.ExitCode)
		assert.Nil(t, toolErr.Err)
		assert.Contains(t, toolErr.Signal, "killed")
		assert.Contains(t, err.Error(), "status -1")
		assert.Contains(t, err.Error(), "fatal: crashed")
		assert.NotContains(t, err.Error(), "<nil>")
	})

	t.Run("spawn failure", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&logBuf)

		extractor := NewExtractor(nil, "this_command_does_not_exist_12345", logger)
		_, err := extractor.Extract(context.Background(), "/tmp/Run.xcresult")
		assert.ErrorIs(t, err, ErrExternalTool)

		var toolErr *ExternalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, -1, toolErr.ExitCode)
	})
}

// TestHelperProcess is not a real test. It's used as a fake xcrun for exec.Command patching.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}

	// xcrun xccov view --report --json <bundle>
	expect := append([]string{"xcrun"}, xccovArgs(os.Getenv("GO_HELPER_EXPECT_BUNDLE"))...)
	if fmt.Sprint(args) != fmt.Sprint(expect) || len(args) != len(expect) {
		fmt.Fprintf(os.Stderr, "unexpected argv: %q", args)
		os.Exit(97)
	}

	switch helperMode(os.Getenv("GO_HELPER_MODE")) {
	case helperReport:
		fmt.Fprint(os.Stdout, sampleXccovReport)
		os.Exit(0)
	case helperMalformed:
		fmt.Fprint(os.Stdout, "Error: Unable to read coverage data")
		fmt.Fprint(os.Stderr, "note: the archive may be incomplete")
		os.Exit(0)
	case helperFail:
		fmt.Fprint(os.Stderr, "error: Failed to load result bundle\n")
		os.Exit(3)
	case helperCrash:
		fmt.Fprint(os.Stderr, "fatal: crashed\n")
		if p, err := os.FindProcess(os.Getpid()); err == nil {
			_ = p.Kill()
		}
		time.Sleep(10 * time.Second)
	}
	os.Exit(2)
}
