package tui

import lserrors "github.com/rodrigobdz/lint-staged/internal/errors"

// ActionableError wraps an error with an actionable suggestion.
//
// Example usage:
//
//	err := NewActionableError("No lint-staged configuration was found.", "Add a .lintstagedrc file")
//	output.Error(err)
//	// Outputs: ✖ No lint-staged configuration was found.
//	//          ▸ Try: Add a .lintstagedrc file
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion provides actionable guidance for resolving the error.
	Suggestion string

	// Context provides optional additional information about the error.
	// When present, it is appended to the message in parentheses.
	Context string

	cause error
}

// NewActionableError creates a new ActionableError with message and suggestion.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// ActionableFrom converts err into an ActionableError using the user-facing
// message table. The original error is kept as context and for unwrapping.
func ActionableFrom(err error) *ActionableError {
	if err == nil {
		return nil
	}
	msg, action := lserrors.Actionable(err)
	ae := &ActionableError{Message: msg, Suggestion: action, cause: err}
	if msg != err.Error() {
		ae.Context = err.Error()
	}
	return ae
}

// Error implements the error interface.
// Returns the message with context if provided, e.g., "file not found (/path/to/file)".
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// Unwrap returns the error the suggestion was derived from, if any.
func (e *ActionableError) Unwrap() error {
	return e.cause
}

// WithContext adds optional context to the error.
// Returns the same error for method chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
