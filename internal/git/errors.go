// Package git provides the git operations lint-staged depends on.
// This file provides error sentinel re-exports from internal/errors.
package git

import (
	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// ErrGitOperation is re-exported from internal/errors for convenience.
// Use errors.Is(err, ErrGitOperation) to check for git operation failures.
var ErrGitOperation = lserrors.ErrGitOperation

// ErrVCSUnavailable is re-exported from internal/errors for convenience.
// Returned when the path is not inside a git working tree.
var ErrVCSUnavailable = lserrors.ErrVCSUnavailable

// ErrVCSQueryFailed is re-exported from internal/errors for convenience.
// Returned when the staged file list cannot be read.
var ErrVCSQueryFailed = lserrors.ErrVCSQueryFailed
