// Package errors provides centralized error handling for lint-staged.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrVCSUnavailable indicates the command was not run inside a git working copy,
	// or the git executable could not be found.
	ErrVCSUnavailable = errors.New("not a git working copy")

	// ErrVCSQueryFailed indicates that querying the git index for staged files failed.
	ErrVCSQueryFailed = errors.New("failed to query git index")

	// ErrInvalidConfig indicates that the configuration was missing, unvalidated,
	// or failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStashFailed indicates that saving unstaged changes aside failed.
	// Nothing was stashed when this error is returned.
	ErrStashFailed = errors.New("failed to stash unstaged changes")

	// ErrRestoreConflict indicates that restoring the stashed changes conflicted.
	// The stash entry is preserved and must be resolved manually.
	ErrRestoreConflict = errors.New("stash restore conflict")

	// ErrCommandFailed indicates that a configured command exited with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrTasksFailed indicates that one or more tasks failed. Cleanup still ran.
	ErrTasksFailed = errors.New("one or more tasks failed")

	// ErrFoldFailed indicates that fixes could not be carried over onto the restored tree.
	ErrFoldFailed = errors.New("failed to fold fixes into restored changes")

	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrLockHeld indicates another lint-staged process holds the working copy lock.
	ErrLockHeld = errors.New("working copy is locked by another lint-staged process")

	// ErrConfigNotFound indicates that no configuration file was found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidTransition indicates the workflow attempted an invalid state transition.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
