// Package git provides the git operations lint-staged depends on.
// This file provides repository detection utilities with worktree support.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// RepoInfo contains information about a git working copy.
type RepoInfo struct {
	// Root is the absolute path of the working tree root. Commands run here
	// and staged paths are relative to it.
	Root string

	// GitDir is the absolute path of the git directory for this working tree.
	// For linked worktrees this is .git/worktrees/<name> in the main repository.
	GitDir string

	// IsWorktree indicates if the working tree is a linked worktree.
	IsWorktree bool
}

// DetectRepo returns information about the working copy containing path.
// Returns ErrVCSUnavailable when path is not inside a git working tree.
func DetectRepo(ctx context.Context, path string) (*RepoInfo, error) {
	toplevel, err := RunCommand(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", lserrors.ErrVCSUnavailable, err)
	}
	if toplevel == "" {
		// Bare repositories have no working tree to lint.
		return nil, fmt.Errorf("%w: %s has no working tree", lserrors.ErrVCSUnavailable, path)
	}

	gitDir, err := RunCommand(ctx, path, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lserrors.ErrVCSUnavailable, err)
	}

	return &RepoInfo{
		Root:       filepath.Clean(toplevel),
		GitDir:     filepath.Clean(gitDir),
		IsWorktree: isLinkedWorktreeGitDir(gitDir),
	}, nil
}

// isLinkedWorktreeGitDir reports whether gitDir is a linked worktree's
// private git directory (.git/worktrees/<name>).
func isLinkedWorktreeGitDir(gitDir string) bool {
	return strings.Contains(filepath.ToSlash(gitDir), "/worktrees/")
}
