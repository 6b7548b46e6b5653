// Package constants provides centralized constant values used throughout lint-staged.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the name used for the binary, the home directory and log files.
const AppName = "lint-staged"

// EnvPrefix is the prefix for environment variable overrides (e.g. LINT_STAGED_CONCURRENT).
const EnvPrefix = "LINT_STAGED"

// Directory names used by lint-staged.
const (
	// HomeDir is the hidden directory name where lint-staged stores logs.
	// This directory is created in the user's home directory.
	HomeDir = ".lint-staged"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Execution defaults.
const (
	// DefaultCommandTimeout is the default maximum duration of a single command.
	DefaultCommandTimeout = 5 * time.Minute

	// DefaultChunkSize of 0 passes every matched file to a single invocation.
	DefaultChunkSize = 0

	// DefaultRenderer is the progress renderer used when none is configured.
	DefaultRenderer = "update"

	// DefaultInvocation is the command binding mode used when none is configured.
	DefaultInvocation = "batch"
)

// Git workflow constants.
const (
	// StashMessage identifies the stash entry created for unstaged changes.
	StashMessage = "lint-staged automatic backup"

	// LockFileName is the advisory lock file created inside the git directory
	// for the duration of a run.
	LockFileName = "lint-staged.lock"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before the log is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days to retain rotated log files.
	LogMaxAgeDays = 14

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)
