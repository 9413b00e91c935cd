// Package action connects xccover to the GitHub Actions runner: step outputs,
// the job summary and failure annotations.
package action

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	envActions     = "GITHUB_ACTIONS"
	envOutput      = "GITHUB_OUTPUT"
	envStepSummary = "GITHUB_STEP_SUMMARY"

	filePermissions = 0o644
)

// OutputWriter publishes the result of a step.
type OutputWriter interface {
	// SetOutput sets the step output name to value.
	SetOutput(name, value string) error
	// AppendSummary appends markdown to the job summary.
	AppendSummary(content string) error
	// SetFailed reports the failure reason of the step.
	SetFailed(message string)
}

// NewOutputWriter returns a FileOutputWriter when running in GitHub Actions,
// otherwise a ConsoleOutputWriter that only reports failures on stderr.
func NewOutputWriter(stdout, stderr io.Writer) OutputWriter {
	if os.Getenv(envActions) == "true" {
		return NewFileOutputWriter(os.Getenv(envOutput), os.Getenv(envStepSummary), stdout)
	}
	return NewConsoleOutputWriter(stderr)
}

// ConsoleOutputWriter is used outside of CI, outputs and summaries are dropped.
type ConsoleOutputWriter struct {
	stderr io.Writer
}

var _ OutputWriter = (*ConsoleOutputWriter)(nil)

// NewConsoleOutputWriter returns a ConsoleOutputWriter reporting failures on stderr, nil discards them.
func NewConsoleOutputWriter(stderr io.Writer) *ConsoleOutputWriter {
	if stderr == nil {
		stderr = io.Discard
	}
	return &ConsoleOutputWriter{stderr: stderr}
}

func (w *ConsoleOutputWriter) SetOutput(_, _ string) error {
	return nil
}

func (w *ConsoleOutputWriter) AppendSummary(_ string) error {
	return nil
}

func (w *ConsoleOutputWriter) SetFailed(message string) {
	if w.stderr == nil {
		return
	}
	fmt.Fprintf(w.stderr, "Error: %s\n", message)
}

// FileOutputWriter writes outputs to the files provided by the runner ($GITHUB_OUTPUT, $GITHUB_STEP_SUMMARY)
// and workflow commands to stdout.
type FileOutputWriter struct {
	outputPath  string
	summaryPath string
	commands    io.Writer
}

var _ OutputWriter = (*FileOutputWriter)(nil)

func NewFileOutputWriter(outputPath, summaryPath string, commands io.Writer) *FileOutputWriter {
	return &FileOutputWriter{
		outputPath:  outputPath,
		summaryPath: summaryPath,
		commands:    commands,
	}
}

// SetOutput appends name=value to the output file.
// Multiline values use the heredoc format name<<DELIMITER, the delimiter never occurs in value.
func (w *FileOutputWriter) SetOutput(name, value string) error {
	if w.outputPath == "" {
		return nil
	}

	var entry string
	if strings.ContainsAny(value, "\r\n") {
		delimiter := "EOF"
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		entry = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		entry = fmt.Sprintf("%s=%s\n", name, value)
	}

	return appendFile(w.outputPath, entry)
}

// AppendSummary appends content to the job summary file.
func (w *FileOutputWriter) AppendSummary(content string) error {
	if w.summaryPath == "" {
		return nil
	}
	return appendFile(w.summaryPath, content)
}

// SetFailed emits an error annotation, the caller exits non-zero to fail the step.
func (w *FileOutputWriter) SetFailed(message string) {
	fmt.Fprintf(w.commands, "::error::%s\n", escapeData(message))
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// escapeData escapes a workflow command value.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
