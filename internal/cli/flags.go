// Package cli provides the command-line interface for lint-staged.
package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error, including failed tasks.
	ExitError = 1
	// ExitInvalidInput indicates invalid flags or an invalid configuration.
	ExitInvalidInput = 2
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// Debug enables debug logging and the verbose renderer.
	Debug bool
	// ConfigPath replaces configuration file discovery.
	ConfigPath string
}

// RunFlags holds flags that override configuration options for a run.
type RunFlags struct {
	// Concurrent is applied only when the flag was set explicitly.
	Concurrent bool
	// MaxConcurrency overrides max_concurrency when positive.
	MaxConcurrency int
	// Renderer overrides the configured renderer when non-empty.
	Renderer string
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "print debug logs and use the verbose renderer")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "path to a configuration file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("debug", "quiet")
}

// AddRunFlags adds the flags that override configuration options. They are
// persistent so "config" shows their effect.
func AddRunFlags(cmd *cobra.Command, flags *RunFlags) {
	cmd.PersistentFlags().BoolVar(&flags.Concurrent, "concurrent", true, "run tasks for different patterns concurrently")
	cmd.PersistentFlags().IntVar(&flags.MaxConcurrency, "max-concurrency", 0, "maximum number of tasks running at once")
	cmd.PersistentFlags().StringVarP(&flags.Renderer, "renderer", "r", "", "progress renderer (update|verbose|silent|json)")
}

// BindGlobalFlags binds global flags to Viper for environment variable
// support. The LINT_STAGED_ prefix is used for environment variables
// (e.g., LINT_STAGED_OUTPUT, LINT_STAGED_DEBUG).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet", "debug", "config"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// resolveGlobalFlags copies the bound values back into flags, so
// environment variables apply where no flag was given.
func resolveGlobalFlags(v *viper.Viper, flags *GlobalFlags) {
	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
	flags.Debug = v.GetBool("debug")
	flags.ConfigPath = v.GetString("config")
}

// configOverrides turns the parsed flags into configuration overrides.
func configOverrides(cmd *cobra.Command, global *GlobalFlags, run *RunFlags) config.Overrides {
	o := config.Overrides{
		ConfigPath: global.ConfigPath,
		Verbose:    global.Debug,
	}
	if cmd.Flags().Changed("concurrent") {
		concurrent := run.Concurrent
		o.Concurrent = &concurrent
	}
	o.MaxConcurrency = run.MaxConcurrency
	o.Renderer = run.Renderer
	return o
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, the carried code for errors
// returned after a run was reported, ExitInvalidInput (2) for user input
// errors, and ExitError (1) for all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var reported *ReportedError
	if stderrors.As(err, &reported) {
		return reported.Code
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	if stderrors.Is(err, errors.ErrInvalidOutputFormat) {
		return ExitInvalidInput
	}

	// Cobra flag parsing errors (mutually exclusive flags, unknown flags, etc.)
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts 0 arg(s)",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
