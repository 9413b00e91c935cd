package xccover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Azure/xccover/pkg/parser"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultXcrun is the developer tool launcher that locates xccov in the active Xcode.
	DefaultXcrun = "xcrun"
)

// execCommand is replaced in tests.
var execCommand = exec.CommandContext

// ExecutionResult holds the outcome of a command execution.
type ExecutionResult struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
	// Signal describes the signal that terminated the process, e.g. "signal: killed".
	Signal string
}

// Executor runs an external program with an explicit argument vector.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (*ExecutionResult, error)
}

// CommandExecutor runs commands on the host without a shell.
type CommandExecutor struct{}

var _ Executor = (*CommandExecutor)(nil)

func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

// Run executes the command and captures its output in memory.
// A non-zero exit is reported through ExitCode, only a failure to start the process is returned as error.
func (e *CommandExecutor) Run(ctx context.Context, name string, args ...string) (*ExecutionResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ExecutionResult{
		Stdout: stdout.Bytes(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		result.ExitCode = exitErr.ExitCode()
		// ExitCode is -1 when the process was terminated by a signal
		if result.ExitCode == -1 && exitErr.ProcessState != nil {
			result.Signal = exitErr.ProcessState.String()
		}
	}
	return result, nil
}

// Extractor runs `xccov view --report --json` on a result bundle and parses the report.
type Extractor struct {
	executor Executor
	xcrun    string
	parser   *parser.Parser
	logger   logrus.FieldLogger
}

func NewExtractor(executor Executor, xcrun string, logger logrus.FieldLogger) *Extractor {
	if executor == nil {
		executor = NewCommandExecutor()
	}
	if xcrun == "" {
		xcrun = DefaultXcrun
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Extractor{
		executor: executor,
		xcrun:    xcrun,
		parser:   parser.NewParser(logger),
		logger:   logger.WithField("source", "extractor"),
	}
}

// xccovArgs returns the argument vector for xcrun, the bundle path stays one discrete argument.
func xccovArgs(bundlePath string) []string {
	return []string{"xccov", "view", "--report", "--json", bundlePath}
}

// Extract returns the coverage report of the validated bundle.
func (e *Extractor) Extract(ctx context.Context, bundlePath string) (*parser.CoverageReport, error) {
	args := xccovArgs(bundlePath)
	command := fmt.Sprintf("%s %s", e.xcrun, strings.Join(args[:len(args)-1], " "))

	e.logger.Infof("run coverage tool: %s %q", command, bundlePath)
	result, err := e.executor.Run(ctx, e.xcrun, args...)
	if err != nil {
		err = &ExternalToolError{Command: command, ExitCode: -1, Err: err}
		e.logger.WithError(err).Error()
		return nil, err
	}

	if result.ExitCode != 0 {
		err := &ExternalToolError{Command: command, ExitCode: result.ExitCode, Signal: result.Signal, Stderr: result.Stderr}
		e.logger.WithError(err).Error()
		return nil, err
	}
	if result.Stderr != "" {
		e.logger.Debugf("%s stderr: %s", command, result.Stderr)
	}

	report, err := e.parser.Parse(result.Stdout)
	if err != nil {
		err := newMalformedOutputError(command, result.Stdout, result.Stderr, err)
		e.logger.WithError(err).Error()
		return nil, err
	}

	return report, nil
}
