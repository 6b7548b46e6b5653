// Package validation runs the commands configured for each task and
// aggregates their outcomes under a concurrency policy.
//
// This package defines the core types and interfaces for running configured
// commands against staged files with timeout handling, output capture, and logging.
package validation

import (
	"time"
)

// TaskStatus is the outcome of a single task.
type TaskStatus string

// Task statuses.
const (
	// TaskStatusSuccess means every command of the task exited zero.
	TaskStatusSuccess TaskStatus = "success"
	// TaskStatusFailed means a command failed; later commands were not run.
	TaskStatusFailed TaskStatus = "failed"
	// TaskStatusSkipped means the task matched no staged files.
	TaskStatusSkipped TaskStatus = "skipped"
	// TaskStatusNotRun means the task was not launched because an earlier task failed.
	TaskStatusNotRun TaskStatus = "not_run"
)

// Result captures the outcome of a single command invocation.
type Result struct {
	Command     string    `json:"command"`
	Success     bool      `json:"success"`
	ExitCode    int       `json:"exit_code"`
	Stdout      string    `json:"stdout"`
	Stderr      string    `json:"stderr"`
	DurationMs  int64     `json:"duration_ms"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// CommandError records the command that stopped a task.
type CommandError struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
	Err      error  `json:"-"`
}

// Error implements the error interface.
func (e CommandError) Error() string {
	if e.Err != nil {
		return e.Command + ": " + e.Err.Error()
	}
	return e.Command
}

// Unwrap returns the underlying error.
func (e CommandError) Unwrap() error {
	return e.Err
}

// TaskResult is the outcome of one task.
type TaskResult struct {
	Index      int            `json:"index"`
	Pattern    string         `json:"pattern"`
	Title      string         `json:"title"`
	Status     TaskStatus     `json:"status"`
	FileCount  int            `json:"file_count"`
	Results    []Result       `json:"results,omitempty"`
	Errors     []CommandError `json:"errors,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// OK reports whether the task did not fail. Skipped tasks are OK.
func (r TaskResult) OK() bool {
	return r.Status != TaskStatusFailed
}

// Ran reports whether any command of the task was executed.
func (r TaskResult) Ran() bool {
	return r.Status == TaskStatusSuccess || r.Status == TaskStatusFailed
}

// ExecutionResult aggregates every task outcome of one scheduler run.
type ExecutionResult struct {
	// Results holds one entry per task in declaration order.
	Results []TaskResult `json:"results"`
	// HasErrors is true when any executed task failed.
	HasErrors  bool  `json:"has_errors"`
	DurationMs int64 `json:"duration_ms"`
}

// Failed returns the failed task results in declaration order.
func (r ExecutionResult) Failed() []TaskResult {
	var failed []TaskResult
	for _, t := range r.Results {
		if t.Status == TaskStatusFailed {
			failed = append(failed, t)
		}
	}
	return failed
}

// FailedCommands returns the number of failed commands across all tasks.
func (r ExecutionResult) FailedCommands() int {
	n := 0
	for _, t := range r.Results {
		n += len(t.Errors)
	}
	return n
}

// Executed returns the results of tasks that ran at least one command.
func (r ExecutionResult) Executed() []TaskResult {
	var ran []TaskResult
	for _, t := range r.Results {
		if t.Ran() {
			ran = append(ran, t)
		}
	}
	return ran
}
