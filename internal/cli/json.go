package cli

import (
	"encoding/json"
	"errors"
	"os"
)

// Set by --json.
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool       `json:"ok"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count   int    `json:"count,omitempty"`
	Profile string `json:"profile,omitempty"`
}

// reportedError is a failure that was already written as a JSON envelope.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// suggestedError carries a hint printed under the error in text mode.
type suggestedError struct {
	err        error
	suggestion string
}

func (e *suggestedError) Error() string { return e.err.Error() }
func (e *suggestedError) Unwrap() error { return e.err }

// outputJSON writes resp to stdout as indented JSON.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess writes an ok envelope. Warnings are optional.
func outputSuccess(data any, meta *Meta, warnings ...Warning) {
	outputJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func isJSONOutput() bool {
	return jsonOutput
}

// report turns err into the value a command returns. JSON mode writes the
// error envelope now and marks the error as reported so Execute stays
// quiet; text mode leaves printing to Execute. Both exit non-zero.
func report(code string, err error, details any, suggestion string) error {
	if !jsonOutput {
		return &suggestedError{err: err, suggestion: suggestion}
	}
	outputJSON(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    err.Error(),
		Details:    details,
		Suggestion: suggestion,
	}})
	return &reportedError{err: err}
}

func handleError(code string, err error, suggestion string) error {
	return report(code, err, nil, suggestion)
}

func handleErrorMsg(code, message, suggestion string) error {
	return report(code, errors.New(message), nil, suggestion)
}

func handleErrorWithDetails(code, message, suggestion string, details any) error {
	return report(code, errors.New(message), details, suggestion)
}
