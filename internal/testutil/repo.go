// Package testutil provides git repository fixtures for tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ErrMockGit is returned by fake git collaborators to simulate a failing git command.
var ErrMockGit = errors.New("mock git failure")

// Repo is a throwaway git repository rooted in a test temp dir.
type Repo struct {
	t    *testing.T
	Root string
}

// NewRepo initializes an empty repository with a local identity and
// signing disabled.
func NewRepo(t *testing.T) *Repo {
	t.Helper()

	r := &Repo{t: t, Root: t.TempDir()}
	r.Git("init", "--quiet")
	r.Git("config", "user.email", "test@lint-staged.local")
	r.Git("config", "user.name", "lint-staged Test")
	r.Git("config", "commit.gpgsign", "false")
	return r
}

// Git runs a git command in the repository and returns its trimmed stdout.
// The test fails if the command fails.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()

	out, err := r.TryGit(args...)
	require.NoError(r.t, err, "git %s failed: %s", strings.Join(args, " "), out)
	return out
}

// TryGit runs a git command and returns its trimmed combined output and error.
func (r *Repo) TryGit(args ...string) (string, error) {
	cmd := exec.CommandContext(context.Background(), "git", args...) //#nosec G204 -- test code with safe inputs
	cmd.Dir = r.Root
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Write creates or overwrites a file, creating parent directories.
func (r *Repo) Write(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.Root, filepath.FromSlash(name))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o600))
}

// Read returns the working tree content of a file.
func (r *Repo) Read(name string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.Root, filepath.FromSlash(name))) //#nosec G304 -- test path
	require.NoError(r.t, err)
	return string(data)
}

// Staged returns the index content of a file.
func (r *Repo) Staged(name string) string {
	r.t.Helper()

	cmd := exec.CommandContext(context.Background(), "git", "show", ":"+name) //#nosec G204 -- test code with safe inputs
	cmd.Dir = r.Root
	out, err := cmd.Output()
	require.NoError(r.t, err, "git show :%s failed", name)
	return string(out)
}

// Stage writes a file and adds it to the index.
func (r *Repo) Stage(name, content string) {
	r.t.Helper()

	r.Write(name, content)
	r.Git("add", "--", name)
}

// Commit stages everything and commits it.
func (r *Repo) Commit(message string) {
	r.t.Helper()

	r.Git("add", "-A")
	r.Git("commit", "--quiet", "--allow-empty", "-m", message)
}

// StashCount returns the number of stash entries.
func (r *Repo) StashCount() int {
	r.t.Helper()

	out := r.Git("stash", "list")
	if out == "" {
		return 0
	}
	return len(strings.Split(out, "\n"))
}
