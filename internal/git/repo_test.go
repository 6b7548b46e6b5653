package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

func TestDetectRepo(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) string
		wantErr    error
		isWorktree bool
	}{
		{
			name: "main repository",
			setup: func(t *testing.T) string {
				t.Helper()
				return setupTestRepo(t)
			},
		},
		{
			name: "subdirectory",
			setup: func(t *testing.T) string {
				t.Helper()
				repoPath := setupTestRepo(t)
				sub := filepath.Join(repoPath, "pkg", "deep")
				require.NoError(t, os.MkdirAll(sub, 0o750))
				return sub
			},
		},
		{
			name: "linked worktree",
			setup: func(t *testing.T) string {
				t.Helper()
				repoPath := setupTestRepo(t)
				createFile(t, repoPath, "README.md", "# Test")
				commitInitial(t, repoPath)

				wtPath := filepath.Join(t.TempDir(), "worktree")
				cmd := exec.CommandContext(context.Background(), "git", "worktree", "add", wtPath, "-b", "feature") //#nosec G204 -- test code with safe inputs
				cmd.Dir = repoPath
				require.NoError(t, cmd.Run(), "failed to create worktree")

				return wtPath
			},
			isWorktree: true,
		},
		{
			name: "not a git repo",
			setup: func(t *testing.T) string {
				t.Helper()
				return t.TempDir()
			},
			wantErr: lserrors.ErrVCSUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			info, err := DetectRepo(context.Background(), path)

			if tt.wantErr != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, info)
			assert.True(t, filepath.IsAbs(info.Root))
			assert.True(t, filepath.IsAbs(info.GitDir))
			assert.Equal(t, tt.isWorktree, info.IsWorktree)
			assert.DirExists(t, info.GitDir)
		})
	}
}

func TestDetectRepo_ContextCancellation(t *testing.T) {
	repoPath := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DetectRepo(ctx, repoPath)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsLinkedWorktreeGitDir(t *testing.T) {
	assert.False(t, isLinkedWorktreeGitDir("/repo/.git"))
	assert.True(t, isLinkedWorktreeGitDir("/repo/.git/worktrees/feature"))
}
