package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/numerics/internal/client"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/GriffinCanCode/numerics/pkg/numeric/expr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The computation failed (parse error, division by zero, ...)
	ExitCommandError = 2 // Bad flags or arguments
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
	// Reported is set once the error has been written to the output, so
	// main does not print it twice.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written by the command.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// ErrorType names the class of a numeric, expression or remote error.
func ErrorType(err error) string {
	var remote *client.RemoteError
	if errors.As(err, &remote) && remote.Type != "" {
		return remote.Type
	}
	if t := expr.ErrorType(err); t != "" {
		return t
	}
	return numeric.ErrorType(err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Success writes data as JSON, or text in text mode.
func (f *OutputFormatter) Success(data interface{}, text string) error {
	if f.Format == "json" {
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Fail reports err and returns an ExitError with code ExitFailure that main
// will not print again.
func (f *OutputFormatter) Fail(err error) error {
	errType := ErrorType(err)
	if f.Format == "json" {
		if werr := f.writeJSON(CLIResponse{
			Status: "error",
			Error:  &CLIError{Type: errType, Message: err.Error()},
		}); werr != nil {
			return werr
		}
	} else {
		fmt.Fprintf(f.errWriter(), "Error [%s]: %s\n", errType, err.Error())
	}
	return &ExitError{Code: ExitFailure, Message: errType, Err: err, Reported: true}
}

// Warn writes a non-fatal notice to the error stream in text mode. JSON
// output carries warnings inside the payload instead.
func (f *OutputFormatter) Warn(format string, args ...interface{}) {
	if f.Format == "json" {
		return
	}
	fmt.Fprintf(f.errWriter(), "warning: "+format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func (f *OutputFormatter) writeJSON(resp CLIResponse) error {
	data, err := sonic.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = f.Writer.Write(append(data, '\n'))
	return err
}
