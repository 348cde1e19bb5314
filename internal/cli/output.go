package cli

import (
	"encoding/json"
	"errors"
	"io"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1 // runtime failure: storage, config, I/O
	ExitUsage   = 2 // bad arguments, unknown task id
	ExitAuth    = 3 // not logged in or invalid credentials
)

// ExitError carries the exit code for an error returned from a command.
type ExitError struct {
	Code    int
	Message string
	// Hint is printed under the message in text mode.
	Hint string
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(msg string) *ExitError {
	return &ExitError{Code: ExitUsage, Message: msg}
}

func failure(msg string, err error) *ExitError {
	return &ExitError{Code: ExitFailure, Message: msg, Err: err}
}

// GetExitCode returns ExitFailure for errors that are not ExitErrors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func errorCode(code int) string {
	switch code {
	case ExitUsage:
		return "usage"
	case ExitAuth:
		return "auth"
	}
	return "failure"
}

// Response is the --format json envelope.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// OutputFormatter writes JSON envelopes.
type OutputFormatter struct {
	Writer io.Writer
}

func (f *OutputFormatter) Success(data any) error {
	return f.encode(Response{Status: "ok", Data: data})
}

func (f *OutputFormatter) Error(code, message, details string) error {
	return f.encode(Response{
		Status: "error",
		Error:  &ResponseError{Code: code, Message: message, Details: details},
	})
}

func (f *OutputFormatter) encode(r Response) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
