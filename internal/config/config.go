// Package config provides configuration management for lint-staged with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (LINT_STAGED_* prefix)
//  3. Project config (.lintstagedrc*, or the "lint-staged" key of package.json)
//  4. Built-in defaults
//
// The linters mapping (glob pattern -> commands) is order-sensitive: tasks are
// displayed, and in sequential mode executed, in declaration order. It is
// therefore decoded from the raw YAML node tree rather than through Viper,
// which does not preserve map key order.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Renderer names accepted by the renderer option.
const (
	RendererUpdate  = "update"
	RendererVerbose = "verbose"
	RendererSilent  = "silent"
	RendererJSON    = "json"
)

// Invocation modes accepted by the invocation option.
const (
	// InvocationBatch passes all matched files (or chunks of chunk_size files)
	// to a single command invocation.
	InvocationBatch = "batch"

	// InvocationPerFile runs every command once per matched file.
	InvocationPerFile = "per_file"
)

// Config is the root configuration structure for lint-staged.
type Config struct {
	// Linters maps glob patterns to the commands run against matching staged
	// files. Declaration order is preserved.
	Linters []Linter `yaml:"-" mapstructure:"-"`

	// Concurrent runs tasks for different patterns in parallel.
	// Default: true
	Concurrent bool `yaml:"concurrent" mapstructure:"concurrent"`

	// MaxConcurrency bounds the number of tasks running at once when Concurrent is true.
	// Default: number of CPUs
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// AbortOnError stops launching tasks after the first failure.
	// Only valid in sequential mode; concurrent runs always collect every error.
	// Default: !Concurrent
	AbortOnError bool `yaml:"abort_on_error" mapstructure:"abort_on_error"`

	// ChunkSize limits the number of files passed to a single invocation in
	// batch mode. 0 means unlimited.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// Invocation selects how command templates are bound to files: "batch" or "per_file".
	// Default: "batch"
	Invocation string `yaml:"invocation" mapstructure:"invocation"`

	// Timeout is the maximum duration of a single command invocation.
	// Default: 5 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Renderer selects the progress renderer: "update", "verbose", "silent" or "json".
	// Default: "update"
	Renderer string `yaml:"renderer" mapstructure:"renderer"`

	// AutoStage re-stages modifications commands made to their own task's files
	// after the task succeeds. When false, fixing commands must run "git add" themselves.
	// Default: false
	AutoStage bool `yaml:"auto_stage" mapstructure:"auto_stage"`

	// Relative passes repository-relative paths to commands instead of absolute paths.
	// Default: true
	Relative bool `yaml:"relative" mapstructure:"relative"`

	// Verbose enables debug logging and the verbose renderer.
	// Default: false
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// SourcePath is the file the configuration was read from.
	SourcePath string `yaml:"-" mapstructure:"-"`

	validated bool
	// abortOnErrorSet records an explicit abort_on_error from file or env.
	abortOnErrorSet bool
}

// Linter binds a glob pattern to an ordered list of commands.
type Linter struct {
	// Pattern is a gitignore-style glob matched against repository-relative paths.
	Pattern string
	// Commands run in order against the files matching Pattern.
	Commands []string
}

// Validated reports whether the configuration passed Validate.
// The workflow refuses to run an unvalidated configuration.
func (c *Config) Validated() bool {
	return c != nil && c.validated
}

// Patterns returns the configured patterns in declaration order.
func (c *Config) Patterns() []string {
	patterns := make([]string, 0, len(c.Linters))
	for _, l := range c.Linters {
		patterns = append(patterns, l.Pattern)
	}
	return patterns
}
