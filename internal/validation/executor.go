package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/rodrigobdz/lint-staged/internal/config"
	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
	"github.com/rodrigobdz/lint-staged/internal/logging"
	"github.com/rodrigobdz/lint-staged/internal/planner"
)

// DefaultTimeout is the default timeout for a single command invocation.
const DefaultTimeout = 5 * time.Minute

// Options controls how command templates are bound to a task's files.
type Options struct {
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
	// Invocation is config.InvocationBatch or config.InvocationPerFile.
	Invocation string
	// ChunkSize limits files per batch invocation. 0 means unlimited.
	ChunkSize int
	// Relative passes repository-relative paths instead of absolute ones.
	Relative bool
	// AutoStage re-stages a task's own files after the task succeeds.
	AutoStage bool
}

// OptionsFromConfig extracts executor options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Timeout:    cfg.Timeout,
		Invocation: cfg.Invocation,
		ChunkSize:  cfg.ChunkSize,
		Relative:   cfg.Relative,
		AutoStage:  cfg.AutoStage,
	}
}

// Executor runs the commands of a task against its files.
type Executor struct {
	runner     CommandRunner
	stager     Stager
	workDir    string
	opts       Options
	liveOutput io.Writer // Optional: if set, streams command output in real-time
}

// NewExecutor creates an executor running commands with sh -c in workDir.
func NewExecutor(workDir string, opts Options) *Executor {
	return NewExecutorWithRunner(workDir, opts, &DefaultCommandRunner{})
}

// NewExecutorWithRunner creates an executor with custom runner (for testing).
func NewExecutorWithRunner(workDir string, opts Options, runner CommandRunner) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Invocation == "" {
		opts.Invocation = config.InvocationBatch
	}
	return &Executor{
		runner:  runner,
		workDir: workDir,
		opts:    opts,
	}
}

// SetLiveOutput configures the executor to stream command output in real-time.
// When set, stdout and stderr are written to w as they are produced.
func (e *Executor) SetLiveOutput(w io.Writer) {
	e.liveOutput = w
}

// SetStager sets the stager used when AutoStage is enabled.
func (e *Executor) SetStager(s Stager) {
	e.stager = s
}

// RunTask executes the task's commands strictly in order, stopping at the
// first failure. Nothing is rolled back. A task without files is skipped.
func (e *Executor) RunTask(ctx context.Context, task planner.Task) TaskResult {
	result := TaskResult{
		Index:     task.Index(),
		Pattern:   task.Pattern(),
		Title:     task.Title(),
		FileCount: task.FileCount(),
	}
	if task.Skipped() {
		result.Status = TaskStatusSkipped
		result.SkipReason = task.SkipReason()
		return result
	}

	log := zerolog.Ctx(ctx).With().Str("pattern", task.Pattern()).Logger()
	ctx = log.WithContext(ctx)
	startTime := time.Now()
	defer func() { result.DurationMs = time.Since(startTime).Milliseconds() }()

	commands := task.Commands()
	files := e.arguments(task.Files())
	for i, command := range commands {
		for _, invocation := range e.bind(command, files) {
			cmdResult, err := e.runSingle(ctx, invocation, i+1, len(commands))
			result.Results = append(result.Results, *cmdResult)
			if err != nil {
				result.Status = TaskStatusFailed
				result.Errors = append(result.Errors, CommandError{
					Command:  command,
					ExitCode: cmdResult.ExitCode,
					Output:   combinedOutput(cmdResult),
					Err:      err,
				})
				return result
			}
		}
	}

	result.Status = TaskStatusSuccess
	if e.opts.AutoStage && e.stager != nil {
		if err := e.stager.StageModifiedFiles(ctx, task.Files()); err != nil {
			log.Warn().Err(err).Msg("failed to stage files modified by commands")
		}
	}
	return result
}

// arguments converts repository-relative paths to the form passed to commands.
func (e *Executor) arguments(files []string) []string {
	if e.opts.Relative || e.workDir == "" {
		return files
	}
	abs := make([]string, len(files))
	for i, f := range files {
		abs[i] = filepath.Join(e.workDir, filepath.FromSlash(f))
	}
	return abs
}

// bind expands one command template into the invocations that cover files.
func (e *Executor) bind(command string, files []string) []string {
	if e.opts.Invocation == config.InvocationPerFile {
		invocations := make([]string, 0, len(files))
		for _, f := range files {
			invocations = append(invocations, command+" "+shellescape.Quote(f))
		}
		return invocations
	}

	size := e.opts.ChunkSize
	if size <= 0 || size > len(files) {
		size = len(files)
	}
	var invocations []string
	for start := 0; start < len(files); start += size {
		end := min(start+size, len(files))
		invocations = append(invocations, command+" "+shellescape.QuoteCommand(files[start:end]))
	}
	return invocations
}

func combinedOutput(r *Result) string {
	out := strings.TrimRight(r.Stdout, "\n")
	if errOut := strings.TrimRight(r.Stderr, "\n"); errOut != "" {
		if out != "" {
			out += "\n"
		}
		out += errOut
	}
	if out == "" {
		out = r.Error
	}
	return out
}

// runSingle executes one invocation with timeout handling.
func (e *Executor) runSingle(ctx context.Context, command string, cmdNum, totalCmds int) (*Result, error) {
	log := zerolog.Ctx(ctx)

	if result, err := e.validateWorkDir(command, log); err != nil {
		return result, err
	}

	startTime := time.Now()
	log.Info().
		Str("command", command).
		Str("work_dir", e.workDir).
		Int("command_num", cmdNum).
		Int("total_commands", totalCmds).
		Msg("executing command")

	cmdCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	stdout, stderr, exitCode, runErr := e.executeCommand(cmdCtx, command)

	completedAt := time.Now()
	duration := completedAt.Sub(startTime)

	result := &Result{
		Command:     command,
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		DurationMs:  duration.Milliseconds(),
		StartedAt:   startTime,
		CompletedAt: completedAt,
	}

	return e.handleCommandOutcome(ctx, cmdCtx, result, exitCode, duration, runErr, log)
}

// validateWorkDir checks if the work directory exists before running a command.
func (e *Executor) validateWorkDir(command string, log *zerolog.Logger) (*Result, error) {
	if e.workDir == "" {
		return nil, nil //nolint:nilnil // No validation needed when workDir is empty
	}

	if _, err := os.Stat(e.workDir); os.IsNotExist(err) {
		log.Error().
			Str("work_dir", e.workDir).
			Str("command", command).
			Msg("work directory missing before command")
		result := &Result{
			Command:  command,
			ExitCode: 1,
			Error:    fmt.Sprintf("work directory missing: %s", e.workDir),
		}
		return result, lserrors.Wrapf(lserrors.ErrCommandFailed, "work directory missing: %s", e.workDir)
	}

	return nil, nil //nolint:nilnil // Validation passed, no result or error needed
}

// executeCommand runs the command and returns raw output.
func (e *Executor) executeCommand(ctx context.Context, command string) (stdout, stderr string, exitCode int, runErr error) {
	if e.liveOutput != nil {
		if liveRunner, ok := e.runner.(LiveOutputRunner); ok {
			return liveRunner.RunWithLiveOutput(ctx, e.workDir, command, e.liveOutput)
		}
	}

	return e.runner.Run(ctx, e.workDir, command)
}

// handleCommandOutcome processes the result and determines success/failure.
func (e *Executor) handleCommandOutcome(ctx, cmdCtx context.Context, result *Result, exitCode int, duration time.Duration, runErr error, log *zerolog.Logger) (*Result, error) {
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		result.Success = false
		result.Error = "command timed out"

		// Command failures are reported in the summary; the log keeps the detail.
		log.Info().
			Str("command", result.Command).
			Dur("duration_ms", duration).
			Str("stdout", logging.SafeValue("stdout", result.Stdout)).
			Str("stderr", logging.SafeValue("stderr", result.Stderr)).
			Msg("command timed out")

		return result, fmt.Errorf("%w after %s", lserrors.ErrCommandTimeout, e.opts.Timeout)
	}

	if ctx.Err() != nil {
		result.Success = false
		result.Error = "context canceled"
		return result, ctx.Err()
	}

	if runErr != nil || exitCode != 0 {
		result.Success = false
		if runErr != nil {
			result.Error = runErr.Error()
		} else {
			result.Error = fmt.Sprintf("exit code %d", exitCode)
		}

		log.Info().
			Str("command", result.Command).
			Int("exit_code", exitCode).
			Dur("duration_ms", duration).
			Str("stderr", logging.SafeValue("stderr", result.Stderr)).
			Msg("command failed")

		return result, fmt.Errorf("%w: exit code %d", lserrors.ErrCommandFailed, exitCode)
	}

	result.Success = true

	log.Info().
		Str("command", result.Command).
		Int("exit_code", exitCode).
		Dur("duration_ms", duration).
		Msg("command completed")

	return result, nil
}
