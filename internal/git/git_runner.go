// Package git provides the git operations lint-staged depends on.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// pathspecChunkSize bounds the number of pathspecs per git invocation so
// large commits stay below the OS argument length limit.
const pathspecChunkSize = 512

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working tree root
	retry   LockRetryConfig
}

// NewRunner creates a new CLIRunner for the given working tree root.
// Returns ErrVCSUnavailable if the directory is not inside a git working tree.
func NewRunner(ctx context.Context, workDir string) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", lserrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir, retry: DefaultLockRetryConfig()}

	out, err := r.runGitCommand(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", lserrors.ErrVCSUnavailable, err)
	}
	if out != "true" {
		return nil, fmt.Errorf("%w: %s is not inside a working tree", lserrors.ErrVCSUnavailable, workDir)
	}

	return r, nil
}

// WorkDir returns the directory git commands run in.
func (r *CLIRunner) WorkDir() string {
	return r.workDir
}

// ListStagedFiles returns the Added, Copied and Modified entries of the index.
// Renames are reported as an addition of the new path.
func (r *CLIRunner) ListStagedFiles(ctx context.Context) ([]StagedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := RunCommandRaw(ctx, r.workDir,
		"diff", "--cached", "--name-status", "-z", "--diff-filter=ACM", "--no-renames")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", lserrors.ErrVCSQueryFailed, err)
	}

	return parseNameStatusZ(output), nil
}

// HasUnstagedChanges reports whether tracked files differ from the index.
func (r *CLIRunner) HasUnstagedChanges(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	output, err := r.runGitCommand(ctx, "diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return output != "", nil
}

// WriteTree writes the index as a tree object and returns its hash.
func (r *CLIRunner) WriteTree(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := r.runGitCommand(ctx, "write-tree")
	if err != nil {
		return "", fmt.Errorf("failed to write index tree: %w", err)
	}
	return hash, nil
}

// StashPush stashes the working tree and index with --keep-index, leaving
// the staged content checked out. Returns "" when git had nothing to stash,
// detected by refs/stash not moving.
func (r *CLIRunner) StashPush(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if message == "" {
		return "", fmt.Errorf("stash message cannot be empty: %w", lserrors.ErrEmptyValue)
	}

	before, err := r.stashTip(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve stash entry: %w", err)
	}

	_, err = RunWithLockRetry(ctx, r.retry, *zerolog.Ctx(ctx), func(ctx context.Context) (string, error) {
		return r.runGitCommand(ctx, "stash", "push", "--keep-index", "--message", message)
	})
	if err != nil {
		return "", fmt.Errorf("failed to stash changes: %w", err)
	}

	// The entry exists now; resolve it even when ctx was canceled.
	after, err := r.stashTip(context.WithoutCancel(ctx))
	if err != nil {
		return "", fmt.Errorf("stash pushed but its entry could not be resolved: %w", err)
	}
	if after == before {
		return "", nil
	}
	return after, nil
}

// stashTip returns the commit refs/stash points at, or "" without stashes.
func (r *CLIRunner) stashTip(ctx context.Context) (string, error) {
	return RunWithLockRetry(ctx, r.retry, *zerolog.Ctx(ctx), func(ctx context.Context) (string, error) {
		return r.runGitCommand(ctx, "for-each-ref", "--format=%(objectname)", "refs/stash")
	})
}

// StashPop restores the stash entry with the given hash, including its index.
// Conflicts are reported as ErrRestoreConflict; git keeps the entry in that case.
func (r *CLIRunner) StashPop(ctx context.Context, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, found, err := r.stashRef(ctx, hash)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("stash %s is not in the stash list: %w", hash, lserrors.ErrGitOperation)
	}

	if _, err := r.runGitCommand(ctx, "stash", "pop", "--index", ref); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if MatchesConflictError(err.Error()) {
			return fmt.Errorf("%w: %w", lserrors.ErrRestoreConflict, err)
		}
		return fmt.Errorf("failed to pop %s: %w", ref, err)
	}
	return nil
}

// StashExists reports whether a stash entry with the given hash is listed.
func (r *CLIRunner) StashExists(ctx context.Context, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, found, err := r.stashRef(ctx, hash)
	return found, err
}

// stashRef maps a stash commit hash to its current stash@{n} selector.
// Commands may push or drop stash entries while they run, so the position
// is looked up right before use.
func (r *CLIRunner) stashRef(ctx context.Context, hash string) (string, bool, error) {
	if hash == "" {
		return "", false, fmt.Errorf("stash hash cannot be empty: %w", lserrors.ErrEmptyValue)
	}

	output, err := r.runGitCommand(ctx, "stash", "list", "--format=%gd %H")
	if err != nil {
		return "", false, fmt.Errorf("failed to list stash entries: %w", err)
	}

	for _, line := range strings.Split(output, "\n") {
		ref, entryHash, ok := strings.Cut(strings.TrimSpace(line), " ")
		if ok && entryHash == hash {
			return ref, true, nil
		}
	}
	return "", false, nil
}

// ResetHard resets the index and working tree to HEAD.
// Untracked files are left alone.
func (r *CLIRunner) ResetHard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := RunWithLockRetryVoid(ctx, r.retry, *zerolog.Ctx(ctx), func(ctx context.Context) error {
		_, err := r.runGitCommand(ctx, "reset", "--hard", "--quiet", "HEAD")
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to reset working tree: %w", err)
	}
	return nil
}

// DiffTrees returns a binary patch from tree "from" to tree "to" limited to paths.
// An empty paths slice yields an empty patch.
func (r *CLIRunner) DiffTrees(ctx context.Context, from, to string, paths []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if from == to {
		return "", nil
	}

	var patch strings.Builder
	for _, chunk := range chunkPaths(paths, pathspecChunkSize) {
		args := append([]string{"diff-tree", "-r", "-p", "--binary", "--no-renames", from, to, "--"}, literalPathspecs(chunk)...)
		output, err := RunCommandRaw(ctx, r.workDir, args...)
		if err != nil {
			return "", fmt.Errorf("failed to diff trees: %w", err)
		}
		patch.WriteString(output)
	}
	return patch.String(), nil
}

// ApplyPatch applies a patch produced by DiffTrees.
// With cached it updates only the index; otherwise only the working tree.
func (r *CLIRunner) ApplyPatch(ctx context.Context, patch string, cached bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if patch == "" {
		return nil
	}

	args := []string{"apply", "--whitespace=nowarn"}
	if cached {
		args = append(args, "--cached")
	}
	args = append(args, "-")

	err := RunWithLockRetryVoid(ctx, r.retry, *zerolog.Ctx(ctx), func(ctx context.Context) error {
		_, err := RunCommandWithInput(ctx, r.workDir, patch, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}
	return nil
}

// Add stages the given paths. Concurrent tasks may stage at the same time,
// so index.lock contention is retried.
func (r *CLIRunner) Add(ctx context.Context, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, chunk := range chunkPaths(paths, pathspecChunkSize) {
		args := append([]string{"add", "--"}, literalPathspecs(chunk)...)
		err := RunWithLockRetryVoid(ctx, r.retry, *zerolog.Ctx(ctx), func(ctx context.Context) error {
			_, err := r.runGitCommand(ctx, args...)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to add files: %w", err)
		}
	}
	return nil
}

// ModifiedFiles returns which of paths differ between the index and the working tree.
func (r *CLIRunner) ModifiedFiles(ctx context.Context, paths []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var modified []string
	for _, chunk := range chunkPaths(paths, pathspecChunkSize) {
		args := append([]string{"diff", "--name-only", "-z", "--"}, literalPathspecs(chunk)...)
		output, err := RunCommandRaw(ctx, r.workDir, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to list modified files: %w", err)
		}
		modified = append(modified, splitZ(output)...)
	}
	return modified, nil
}

// runGitCommand executes a git command and returns its output.
// This is a convenience wrapper around RunCommand that uses the runner's workDir.
func (r *CLIRunner) runGitCommand(ctx context.Context, args ...string) (string, error) {
	return RunCommand(ctx, r.workDir, args...)
}

// literalPathspecs disables glob magic so file names like "[id].js" match themselves.
func literalPathspecs(paths []string) []string {
	specs := make([]string, len(paths))
	for i, p := range paths {
		specs[i] = ":(literal)" + p
	}
	return specs
}

// chunkPaths splits paths into slices of at most size entries.
func chunkPaths(paths []string, size int) [][]string {
	var chunks [][]string
	for len(paths) > size {
		chunks = append(chunks, paths[:size])
		paths = paths[size:]
	}
	if len(paths) > 0 {
		chunks = append(chunks, paths)
	}
	return chunks
}
