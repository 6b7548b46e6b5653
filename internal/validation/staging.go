package validation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Stager re-stages files modified by a task's commands.
// This allows for dependency injection and testing.
type Stager interface {
	// StageModifiedFiles stages the unstaged modifications among paths.
	StageModifiedFiles(ctx context.Context, paths []string) error
}

// IndexWriter is the subset of git operations needed to stage fixes.
// It is satisfied by *git.CLIRunner.
type IndexWriter interface {
	// ModifiedFiles returns which of paths have unstaged modifications.
	ModifiedFiles(ctx context.Context, paths []string) ([]string, error)
	// Add stages the given paths.
	Add(ctx context.Context, paths []string) error
}

// GitStager implements Stager with git add, scoped to the paths it is given.
// Files outside a task's own file list are never staged.
type GitStager struct {
	git IndexWriter
}

// NewGitStager creates a stager backed by git.
func NewGitStager(git IndexWriter) *GitStager {
	return &GitStager{git: git}
}

// StageModifiedFiles stages any of paths that commands modified (e.g. by --fix).
//
// Returns nil if no files need staging or staging succeeds.
// Returns error if git operations fail.
func (s *GitStager) StageModifiedFiles(ctx context.Context, paths []string) error {
	log := zerolog.Ctx(ctx)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if len(paths) == 0 {
		return nil
	}

	modified, err := s.git.ModifiedFiles(ctx, paths)
	if err != nil {
		return fmt.Errorf("failed to check modified files: %w", err)
	}
	if len(modified) == 0 {
		log.Debug().Msg("no modified files to stage")
		return nil
	}

	log.Info().
		Int("file_count", len(modified)).
		Strs("files", modified).
		Msg("staging files modified by commands")

	if err := s.git.Add(ctx, modified); err != nil {
		return fmt.Errorf("failed to stage modified files: %w", err)
	}

	return nil
}

var _ Stager = (*GitStager)(nil)
