package xccover

import (
	"errors"
	"fmt"
)

const (
	GeneralErrorExitCode     = 1  // bash general error exit code
	LowCoverageErrorExitCode = 12 // coverage is lower than the coverage baseline exit code
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrInvalidPathType = errors.New("path must be a file or directory")
	ErrExternalTool    = errors.New("external tool failed")
	ErrMalformedOutput = errors.New("malformed output")
	ErrLowCoverage     = errors.New("coverage is lower than the coverage baseline")
)

// XCCoverError carries the detail error information for xccover error
type XCCoverError struct {
	ExitCode   int
	Err        error
	ErrMessage string
}

func WrapErrorWithCode(err error, exitCode int, errMessage string) *XCCoverError {
	return &XCCoverError{
		ExitCode:   exitCode,
		Err:        err,
		ErrMessage: errMessage,
	}
}

func WrapError(err error, errMessage string) *XCCoverError {
	return WrapErrorWithCode(err, GeneralErrorExitCode, errMessage)
}

func (e *XCCoverError) Error() string {
	return e.Err.Error()
}

func (e *XCCoverError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var xe *XCCoverError
	if errors.As(err, &xe) {
		return xe.ExitCode
	}
	return GeneralErrorExitCode
}

// ExternalToolError is returned when the coverage tool cannot be started or exits with a non-zero status.
// Err is only set when the process could not be started, ExitCode is -1 then.
// Signal names the signal that terminated the process, if any.
type ExternalToolError struct {
	Command  string
	ExitCode int
	Signal   string
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", ErrExternalTool, e.Command, e.Err)
	}

	var msg string
	if e.Signal != "" {
		msg = fmt.Sprintf("%s: %s terminated by %s, status %d", ErrExternalTool, e.Command, e.Signal, e.ExitCode)
	} else {
		msg = fmt.Sprintf("%s: %s exited with status %d", ErrExternalTool, e.Command, e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalToolError) Is(target error) bool {
	return target == ErrExternalTool
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// maxExcerptBytes bounds the tool output quoted in MalformedOutputError.
const maxExcerptBytes = 256

// MalformedOutputError is returned when the coverage tool output is not a valid report.
// Excerpt and Stderr carry the tool's diagnostic context.
type MalformedOutputError struct {
	Command string
	Excerpt string
	Stderr  string
	Err     error
}

func newMalformedOutputError(command string, stdout []byte, stderr string, err error) *MalformedOutputError {
	excerpt := string(stdout)
	if len(excerpt) > maxExcerptBytes {
		excerpt = excerpt[:maxExcerptBytes] + "..."
	}
	return &MalformedOutputError{
		Command: command,
		Excerpt: excerpt,
		Stderr:  stderr,
		Err:     err,
	}
}

func (e *MalformedOutputError) Error() string {
	msg := fmt.Sprintf("%s from %s: %s; output: %q", ErrMalformedOutput, e.Command, e.Err, e.Excerpt)
	if e.Stderr != "" {
		msg += "; stderr: " + e.Stderr
	}
	return msg
}

func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}
