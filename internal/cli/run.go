package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/errors"
	"github.com/rodrigobdz/lint-staged/internal/flock"
	"github.com/rodrigobdz/lint-staged/internal/git"
	"github.com/rodrigobdz/lint-staged/internal/guard"
	"github.com/rodrigobdz/lint-staged/internal/signal"
	"github.com/rodrigobdz/lint-staged/internal/tui"
	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// ReportedError is returned once a run's outcome has been rendered. It
// carries the exit code so the caller does not print the error again.
type ReportedError struct {
	Code int
	Err  error
}

func (e *ReportedError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already rendered to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return stderrors.As(err, &reported)
}

// runLintStaged runs the workflow for the repository containing the
// working directory.
func runLintStaged(cmd *cobra.Command, flags *GlobalFlags, runFlags *RunFlags) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	repo, err := git.DetectRepo(ctx, cwd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, repo.Root, configOverrides(cmd, flags, runFlags))
	if err != nil {
		return err
	}

	lock, err := flock.Acquire(filepath.Join(repo.GitDir, constants.LockFileName))
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			log.Warn().Err(releaseErr).Msg("failed to release lock")
		}
	}()

	handler := signal.NewHandler(ctx)
	defer handler.Stop()

	outcome, runErr := runWorkflow(handler.Context(), cmd, repo, cfg)
	if runErr != nil {
		log.Debug().Err(runErr).Msg("run did not succeed")
	}

	tui.RenderSummary(summaryWriter(cmd, flags.Output), flags.Output, outcome)

	code := outcome.ExitCode()
	if sigCode, ok := handler.ExitCode(); ok {
		code = sigCode
		log.Warn().Str("signal", handler.Received().String()).Msg("interrupted")
	}
	if code == ExitSuccess {
		return nil
	}
	return &ReportedError{Code: code, Err: runErr}
}

// loadConfig loads and validates the configuration. Failures are invalid
// input and exit with code 2.
func loadConfig(ctx context.Context, repoRoot string, overrides config.Overrides) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(ctx, repoRoot, overrides)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, errors.NewExitCode2Error(err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", cfg.SourcePath).
		Int("patterns", len(cfg.Linters)).
		Bool("concurrent", cfg.Concurrent).
		Str("renderer", cfg.Renderer).
		Msg("configuration loaded")
	return cfg, nil
}

// runWorkflow builds the collaborators for repo and runs one workflow.
func runWorkflow(ctx context.Context, cmd *cobra.Command, repo *git.RepoInfo, cfg *config.Config) (workflow.Outcome, error) {
	runner, err := git.NewRunner(ctx, repo.Root)
	if err != nil {
		return workflow.Outcome{State: workflow.StateFailed, Failure: workflow.FailureVCS, Err: err}, err
	}

	executor := validation.NewExecutor(repo.Root, validation.OptionsFromConfig(cfg))
	executor.SetStager(validation.NewGitStager(runner))
	if cfg.Verbose {
		executor.SetLiveOutput(cmd.ErrOrStderr())
	}

	orchestrator := workflow.NewOrchestrator(runner, guard.New(runner), executor,
		workflow.WithReporter(newReporter(cmd, cfg.Renderer)),
	)
	return orchestrator.Run(ctx, cfg)
}

// newReporter builds the progress renderer. The json renderer writes to
// stdout; the others write to stderr, redrawing in place only on a terminal.
func newReporter(cmd *cobra.Command, renderer string) workflow.Reporter {
	if renderer == config.RendererJSON {
		return tui.NewReporter(renderer, cmd.OutOrStdout(), tui.ReporterOptions{})
	}

	w := cmd.ErrOrStderr()
	opts := tui.ReporterOptions{Width: tui.DefaultTerminalWidth}
	if f, ok := w.(*os.File); ok {
		opts.Interactive = tui.IsTerminal(f)
		opts.Width = tui.TerminalWidth(f)
	}
	return tui.NewReporter(renderer, w, opts)
}

// summaryWriter returns stdout for JSON output and stderr otherwise.
func summaryWriter(cmd *cobra.Command, format string) io.Writer {
	if format == OutputJSON {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

// printError renders an error that ended the command before any outcome
// was reported.
func printError(cmd *cobra.Command, format string, err error) {
	if !IsValidOutputFormat(format) {
		format = OutputText
	}
	tui.NewOutput(summaryWriter(cmd, format), format).Error(tui.ActionableFrom(err))
}
