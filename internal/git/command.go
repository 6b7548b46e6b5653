// Package git provides the git operations lint-staged depends on.
// This file provides shared git command execution utilities.
package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// RunCommand executes a git command in the specified directory and returns its
// trimmed output. All errors are wrapped with ErrGitOperation and include
// stderr for debugging.
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	out, err := runGit(ctx, workDir, nil, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RunCommandRaw is RunCommand without output trimming, for NUL-separated
// listings and patches where trailing bytes are significant.
func RunCommandRaw(ctx context.Context, workDir string, args ...string) (string, error) {
	return runGit(ctx, workDir, nil, args...)
}

// RunCommandWithInput executes a git command feeding input on stdin.
func RunCommandWithInput(ctx context.Context, workDir, input string, args ...string) (string, error) {
	out, err := runGit(ctx, workDir, strings.NewReader(input), args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func runGit(ctx context.Context, workDir string, stdin io.Reader, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir
	cmd.Stdin = stdin
	// Output and error classification expect untranslated messages.
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANGUAGE=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// stdout is included too: "git stash" reports conflicts there.
		detail := strings.TrimSpace(stderr.String())
		if out := strings.TrimSpace(stdout.String()); out != "" {
			detail = strings.TrimSpace(detail + "\n" + out)
		}
		if detail != "" {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], detail, lserrors.ErrGitOperation)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], lserrors.ErrGitOperation)
	}

	return stdout.String(), nil
}
