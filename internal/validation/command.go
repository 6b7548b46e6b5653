package validation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// killDelay is how long a canceled command has to exit after it was
// interrupted before it is killed.
const killDelay = 3 * time.Second

// CommandRunner runs one shell command line in a directory.
//
// SECURITY NOTE: The commands executed by this package come from the project's
// lint-staged configuration (.lintstagedrc* or the "lint-staged" key of package.json).
// These are treated as trusted input because:
//   - The configuration is committed to the repository (anyone who can modify it
//     already has repository write access and could add arbitrary scripts)
//   - The same commands would run from an npm script or a Makefile target
//
// The sh -c invocation is intentional to support shell features (pipes, redirects, etc.)
// commonly used in lint commands like "eslint --fix && prettier --write".
// File arguments appended to the command are shell-quoted.
type CommandRunner interface {
	// Run executes a shell command and returns its output.
	Run(ctx context.Context, workDir, command string) (stdout, stderr string, exitCode int, err error)
}

// LiveOutputRunner defines a command runner that supports live output streaming.
type LiveOutputRunner interface {
	CommandRunner
	// RunWithLiveOutput executes a command and streams output to the writer while also capturing it.
	RunWithLiveOutput(ctx context.Context, workDir, command string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner runs commands with sh -c. On cancellation the shell
// gets SIGINT, then SIGKILL after killDelay.
type DefaultCommandRunner struct{}

// Run executes a shell command using sh -c.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir, command string) (stdout, stderr string, exitCode int, err error) {
	return r.runCommand(ctx, workDir, command, nil)
}

// RunWithLiveOutput executes a command and streams output to liveOut while also capturing it.
func (r *DefaultCommandRunner) RunWithLiveOutput(ctx context.Context, workDir, command string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	return r.runCommand(ctx, workDir, command, liveOut)
}

func (r *DefaultCommandRunner) runCommand(ctx context.Context, workDir, command string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = workDir
	// SIGINT first; WaitDelay escalates to SIGKILL.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = killDelay

	var outBuf, errBuf bytes.Buffer
	if liveOut != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, liveOut)
		cmd.Stderr = io.MultiWriter(&errBuf, liveOut)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		exitCode = exitErr.ExitCode()
	default:
		// Killed by a signal or never started.
		exitCode = 1
	}

	return stdout, stderr, exitCode, err
}

var (
	_ CommandRunner    = (*DefaultCommandRunner)(nil)
	_ LiveOutputRunner = (*DefaultCommandRunner)(nil)
)
