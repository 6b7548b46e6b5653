package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates the root command. Invoked without a subcommand it runs
// the configured tasks against the staged files.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()
	runFlags := &RunFlags{}

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Run linters against staged git files",
		Long: `lint-staged runs the commands configured for each glob pattern against the
files staged for commit, and only those files.

Unstaged changes in partially staged files are stashed while the commands
run and restored afterwards. Fixes made by the commands are folded back
into the index.

Configuration is read from .lintstagedrc, .lintstagedrc.yaml,
.lintstagedrc.yml, .lintstagedrc.json, or the "lint-staged" key of
package.json at the repository root.`,
		Version: formatVersion(info),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLintStaged(cmd, flags, runFlags)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			resolveGlobalFlags(v, flags)

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			logger := InitLogger(flags.Verbose || flags.Debug, flags.Quiet)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		// Execute prints errors through the tui output, with suggestions.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	AddGlobalFlags(cmd, flags)
	AddRunFlags(cmd, runFlags)

	AddConfigCommand(cmd, flags, runFlags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are printed before returning; use ExitCodeForError to pick the
// process exit code.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return execute(ctx, cmd, flags)
}

func execute(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil && !IsReported(err) {
		printError(cmd, flags.Output, err)
	}
	return err
}
