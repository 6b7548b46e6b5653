package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigobdz/lint-staged/internal/errors"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitError)
	assert.Equal(t, 2, ExitInvalidInput)
}

func TestGlobalFlags_Defaults(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)

	assert.Equal(t, OutputText, flags.Output)
	assert.False(t, flags.Verbose)
	assert.False(t, flags.Quiet)
	assert.False(t, flags.Debug)
	assert.Empty(t, flags.ConfigPath)
}

func TestAddGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, &GlobalFlags{})

	tests := []struct {
		name      string
		shorthand string
	}{
		{"output", "o"},
		{"verbose", "v"},
		{"quiet", "q"},
		{"debug", "d"},
		{"config", "c"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := cmd.PersistentFlags().Lookup(tc.name)
			require.NotNil(t, f)
			assert.Equal(t, tc.shorthand, f.Shorthand)
		})
	}
}

func TestAddGlobalFlags_VerboseQuietExclusive(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AddGlobalFlags(cmd, &GlobalFlags{})
	cmd.SetArgs([]string{"--verbose", "--quiet"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestBindGlobalFlags_Env(t *testing.T) {
	t.Setenv("LINT_STAGED_OUTPUT", "json")
	t.Setenv("LINT_STAGED_DEBUG", "true")

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)

	v := viper.New()
	require.NoError(t, BindGlobalFlags(v, cmd))
	resolveGlobalFlags(v, flags)

	assert.Equal(t, OutputJSON, flags.Output)
	assert.True(t, flags.Debug)
	assert.False(t, flags.Quiet)
}

func TestBindGlobalFlags_FlagBeatsEnv(t *testing.T) {
	t.Setenv("LINT_STAGED_OUTPUT", "json")

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)
	require.NoError(t, cmd.PersistentFlags().Set("output", "text"))

	v := viper.New()
	require.NoError(t, BindGlobalFlags(v, cmd))
	resolveGlobalFlags(v, flags)

	assert.Equal(t, OutputText, flags.Output)
}

func TestConfigOverrides(t *testing.T) {
	t.Parallel()

	t.Run("concurrent untouched", func(t *testing.T) {
		t.Parallel()
		cmd := &cobra.Command{Use: "test"}
		run := &RunFlags{}
		AddRunFlags(cmd, run)
		require.NoError(t, cmd.ParseFlags([]string{"--max-concurrency", "3"}))

		o := configOverrides(cmd, &GlobalFlags{ConfigPath: "lint.yaml"}, run)
		assert.Nil(t, o.Concurrent)
		assert.Equal(t, 3, o.MaxConcurrency)
		assert.Equal(t, "lint.yaml", o.ConfigPath)
		assert.False(t, o.Verbose)
	})

	t.Run("concurrent disabled", func(t *testing.T) {
		t.Parallel()
		cmd := &cobra.Command{Use: "test"}
		run := &RunFlags{}
		AddRunFlags(cmd, run)
		require.NoError(t, cmd.ParseFlags([]string{"--concurrent=false", "--renderer", "silent"}))

		o := configOverrides(cmd, &GlobalFlags{Debug: true}, run)
		require.NotNil(t, o.Concurrent)
		assert.False(t, *o.Concurrent)
		assert.Equal(t, "silent", o.Renderer)
		assert.True(t, o.Verbose, "debug forces verbose mode")
	})
}

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidOutputFormat("text"))
	assert.True(t, IsValidOutputFormat("json"))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"reported failure", &ReportedError{Code: 1, Err: errors.ErrTasksFailed}, ExitError},
		{"reported interrupt", &ReportedError{Code: 130}, 130},
		{"wrapped reported", fmt.Errorf("outer: %w", &ReportedError{Code: 2}), ExitInvalidInput},
		{"exit code 2", errors.NewExitCode2Error(errors.ErrInvalidConfig), ExitInvalidInput},
		{"invalid output format", fmt.Errorf("%w: xml", errors.ErrInvalidOutputFormat), ExitInvalidInput},
		{"unknown flag", stderrors.New("unknown flag: --nope"), ExitInvalidInput}, //nolint:err113 // cobra error text
		{"extra argument", stderrors.New(`unknown command "x" for "lint-staged"`), ExitInvalidInput}, //nolint:err113 // cobra error text
		{"vcs unavailable", errors.ErrVCSUnavailable, ExitError},
		{"lock held", errors.ErrLockHeld, ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ExitCodeForError(tc.err))
		})
	}
}

func TestReportedError(t *testing.T) {
	t.Parallel()

	err := &ReportedError{Code: 1, Err: errors.ErrTasksFailed}
	assert.Equal(t, errors.ErrTasksFailed.Error(), err.Error())
	require.ErrorIs(t, err, errors.ErrTasksFailed)
	assert.True(t, IsReported(fmt.Errorf("wrap: %w", err)))

	assert.Equal(t, "exit status 130", (&ReportedError{Code: 130}).Error())
	assert.False(t, IsReported(errors.ErrTasksFailed))
}
