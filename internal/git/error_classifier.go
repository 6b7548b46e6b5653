// Package git provides the git operations lint-staged depends on.
// This file contains error classification utilities for git stderr output.
package git

import "strings"

// ErrorType represents the classification of a git error.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the error could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeLockFile indicates another git process holds index.lock.
	ErrorTypeLockFile
	// ErrorTypeConflict indicates a merge conflict while applying changes.
	ErrorTypeConflict
	// ErrorTypeNotRepository indicates the directory is not a git working copy.
	ErrorTypeNotRepository
	// ErrorTypeNoInitialCommit indicates HEAD does not exist yet.
	ErrorTypeNoInitialCommit
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeLockFile:
		return "lock_file"
	case ErrorTypeConflict:
		return "conflict"
	case ErrorTypeNotRepository:
		return "not_repository"
	case ErrorTypeNoInitialCommit:
		return "no_initial_commit"
	default:
		return "unknown"
	}
}

// PatternMatcher checks if a string contains any of a list of patterns.
// It performs case-insensitive matching on the lowercased input.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with the given patterns.
// All patterns should be lowercase for consistent matching.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches returns true if the input string contains any of the patterns.
// The input is lowercased before matching.
func (m *PatternMatcher) Matches(s string) bool {
	return m.MatchesLower(strings.ToLower(s))
}

// MatchesLower checks if an already-lowercased string matches any pattern.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	// lockFilePatterns matches index.lock contention between git processes.
	lockFilePatterns = NewPatternMatcher(
		"index.lock",
		".lock': file exists",
		"could not lock",
		"unable to create",
		"another git process seems to be running",
	)

	// conflictPatterns matches conflicts reported by stash pop and apply.
	conflictPatterns = NewPatternMatcher(
		"conflict",
		"could not restore untracked files",
		"already exists, no checkout",
		"your local changes to the following files would be overwritten",
		"patch does not apply",
	)

	// notRepositoryPatterns matches commands run outside a working copy.
	notRepositoryPatterns = NewPatternMatcher(
		"not a git repository",
		"this operation must be run in a work tree",
	)

	// noInitialCommitPatterns matches operations that need HEAD.
	noInitialCommitPatterns = NewPatternMatcher(
		"you do not have the initial commit yet",
		"ambiguous argument 'head'",
		"not a valid object name: 'head'",
	)
)

// ClassifyError determines the error type from an error string.
// Lock file errors take priority since they are transient and retried.
func ClassifyError(errStr string) ErrorType {
	lower := strings.ToLower(errStr)
	switch {
	case lockFilePatterns.MatchesLower(lower):
		return ErrorTypeLockFile
	case notRepositoryPatterns.MatchesLower(lower):
		return ErrorTypeNotRepository
	case noInitialCommitPatterns.MatchesLower(lower):
		return ErrorTypeNoInitialCommit
	case conflictPatterns.MatchesLower(lower):
		return ErrorTypeConflict
	default:
		return ErrorTypeUnknown
	}
}

// MatchesLockFileError checks if the error string indicates index.lock contention.
func MatchesLockFileError(errStr string) bool {
	return ClassifyError(errStr) == ErrorTypeLockFile
}

// MatchesConflictError checks if the error string indicates a conflict.
func MatchesConflictError(errStr string) bool {
	return ClassifyError(errStr) == ErrorTypeConflict
}
