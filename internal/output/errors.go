// ABOUTME: Structured command errors and exit codes
// ABOUTME: Maps client, validation and role failures to user-facing messages

package output

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fatih/color"

	"github.com/markalston/jobboard/internal/client"
)

// Exit code constants
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// FromAPI classifies an error returned by the client. Backend-reported
// failures exit 1; transport failures exit 2.
func FromAPI(summary string, err error) *CLIError {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &CLIError{
			Summary:    summary,
			Detail:     err.Error(),
			Suggestion: "Check --api-url and that the backend is running",
			ExitCode:   ExitUsageError,
		}
	}

	e := &CLIError{Summary: summary, Detail: apiErr.Message, ExitCode: ExitFailure}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		e.Suggestion = "Run 'jobboard login' to sign in again"
	case http.StatusForbidden:
		e.Suggestion = "This action needs a different account role"
	case http.StatusNotFound:
		e.Suggestion = "Check the id; it may have been deleted"
	}
	return e
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
