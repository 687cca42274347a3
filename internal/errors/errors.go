// Package errors provides structured error handling for the autover CLI.
// Expected failures (bad input, bad configuration, missing tags) are CLIErrors
// carrying a category, a sentinel and remediation guidance. Anything else is
// treated as unexpected.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Project errors concern discovered project files and their contents.
	Project
	// Repository errors concern the git repository and its tags.
	Repository
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Project:
		return "Project Error"
	case Repository:
		return "Repository Error"
	default:
		return "Error"
	}
}

// Sentinels identifying each kind of user error. Match with errors.Is.
var (
	ErrInvalidVersion            = stderrors.New("invalid version")
	ErrInvalidIncrementType      = stderrors.New("invalid increment type")
	ErrNoVersionElement          = stderrors.New("no version element")
	ErrNoValidProject            = stderrors.New("no valid project")
	ErrInvalidProject            = stderrors.New("invalid project")
	ErrNotGitRepository          = stderrors.New("not a valid git repository")
	ErrConfiguredProjectNotFound = stderrors.New("configured project not found")
	ErrInvalidVersionTag         = stderrors.New("invalid version tag")
	ErrInvalidArgument           = stderrors.New("invalid argument")
	ErrInvalidConfiguration      = stderrors.New("invalid configuration")
	ErrHealthCheckFailed         = stderrors.New("health check failed")
)

// CLIError is a structured, expected failure with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Configuration, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Err is the sentinel identifying the failure, optionally wrapping a cause.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *CLIError) Unwrap() error {
	return e.Err
}

func newError(category ErrorCategory, sentinel error, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
		Err:         sentinel,
	}
}

// WrapWithMessage wraps cause as a user error of the given sentinel.
func WrapWithMessage(cause error, category ErrorCategory, sentinel error, message string, remediation ...string) *CLIError {
	if cause == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, cause),
		Remediation: remediation,
		Err:         fmt.Errorf("%w: %w", sentinel, cause),
	}
}

// IsCLIError reports whether err is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
