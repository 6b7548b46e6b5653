package tui

import (
	"fmt"
	"io"

	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// ReporterOptions configures NewReporter.
type ReporterOptions struct {
	// Interactive is true when w is a terminal that supports cursor movement.
	Interactive bool
	// Width is the terminal width; lines are truncated to fit.
	Width int
}

// NewReporter returns the progress reporter for a renderer name.
// The update renderer needs an interactive terminal and falls back to the
// verbose renderer otherwise.
func NewReporter(renderer string, w io.Writer, opts ReporterOptions) workflow.Reporter {
	switch renderer {
	case config.RendererSilent:
		return workflow.NopReporter{}
	case config.RendererJSON:
		return NewJSONReporter(w)
	case config.RendererUpdate:
		if opts.Interactive {
			return NewUpdateReporter(w, opts.Width)
		}
	}
	return NewVerboseReporter(w)
}

// taskLine renders the one-line label of a task.
func taskLine(task planner.Task) string {
	return fmt.Sprintf("%s (%s)", task.Title(), pluralFiles(task.FileCount()))
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// resultSuffix describes how a finished task ended.
func resultSuffix(r validation.TaskResult) string {
	switch r.Status {
	case validation.TaskStatusFailed:
		return fmt.Sprintf("[FAILED] %s", FormatDuration(r.DurationMs))
	case validation.TaskStatusNotRun:
		return "[SKIPPED]"
	case validation.TaskStatusSuccess, validation.TaskStatusSkipped:
	}
	return FormatDuration(r.DurationMs)
}

// FormatDuration formats a duration in milliseconds for display (e.g., "1.2s").
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
