package cli

import apperrors "github.com/autover/autover/internal/errors"

// Exit codes for the autover CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitUserError indicates an expected failure caused by input, configuration
	// or repository state; the message explains how to fix it
	ExitUserError = 1

	// ExitUnhandled indicates an unexpected failure such as an I/O error or a bug
	ExitUnhandled = -1
)

// ExitCode maps the error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case apperrors.IsCLIError(err):
		return ExitUserError
	default:
		return ExitUnhandled
	}
}
