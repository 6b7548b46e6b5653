// Package git provides the git operations lint-staged depends on.
// This file defines the Runner interface for git CLI operations.
package git

import "context"

// Runner defines the git operations used to discover staged files and to
// protect unstaged work while commands run.
// All operations run in the working tree root and use context for cancellation.
type Runner interface {
	// ListStagedFiles returns the Added, Copied and Modified entries of the index.
	ListStagedFiles(ctx context.Context) ([]StagedFile, error)

	// HasUnstagedChanges reports whether tracked files differ from the index.
	// Untracked files are not unstaged changes.
	HasUnstagedChanges(ctx context.Context) (bool, error)

	// WriteTree writes the index as a tree object and returns its hash.
	WriteTree(ctx context.Context) (string, error)

	// StashPush stashes the working tree and index, keeping the index checked out.
	// Returns the stash commit hash, or "" when there was nothing to stash.
	StashPush(ctx context.Context, message string) (string, error)

	// StashPop restores the stash entry with the given hash, index included.
	// On failure the entry stays in the stash list.
	StashPop(ctx context.Context, hash string) error

	// StashExists reports whether a stash entry with the given hash is listed.
	StashExists(ctx context.Context, hash string) (bool, error)

	// ResetHard resets the index and working tree to HEAD.
	ResetHard(ctx context.Context) error

	// DiffTrees returns a binary-safe patch between two trees limited to paths.
	DiffTrees(ctx context.Context, from, to string, paths []string) (string, error)

	// ApplyPatch applies a patch to the index (cached) or to the working tree.
	ApplyPatch(ctx context.Context, patch string, cached bool) error

	// Add stages the given paths.
	Add(ctx context.Context, paths []string) error

	// ModifiedFiles returns which of paths have unstaged modifications.
	ModifiedFiles(ctx context.Context, paths []string) ([]string, error)
}
