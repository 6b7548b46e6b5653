package tui

import (
	"fmt"
	"io"

	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// Summary messages.
const (
	MsgNoStagedFiles = "No staged files found."
	MsgNoTasks       = "No staged files match any configured task."
	MsgAllPassed     = "All checks passed."
)

// jsonSummary is the final object written by the json renderer.
type jsonSummary struct {
	Type       string                  `json:"type"`
	State      string                  `json:"state"`
	Result     workflow.Result         `json:"result,omitempty"`
	Failure    workflow.Failure        `json:"failure,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Suggestion string                  `json:"suggestion,omitempty"`
	ExitCode   int                     `json:"exit_code"`
	DurationMs int64                   `json:"duration_ms"`
	Files      []string                `json:"files"`
	Stash      string                  `json:"stash,omitempty"`
	Results    []validation.TaskResult `json:"results,omitempty"`
}

// RenderSummary writes the final result of a run: which of "no files
// matched", "all checks passed", the failed commands with their output, or
// the manual recovery steps after a restore conflict.
func RenderSummary(w io.Writer, format string, outcome workflow.Outcome) {
	if format == FormatJSON {
		renderJSONSummary(w, outcome)
		return
	}

	out := NewTTYOutput(w)
	switch {
	case outcome.State == workflow.StateDone && outcome.Result == workflow.ResultNoTasks:
		if len(outcome.Context.Files) == 0 {
			out.Info(MsgNoStagedFiles)
		} else {
			out.Info(MsgNoTasks)
		}
	case outcome.State == workflow.StateDone && outcome.Result == workflow.ResultSuccess:
		out.Success(fmt.Sprintf("%s %s", MsgAllPassed, StyleDim.Render(FormatDuration(outcome.Duration.Milliseconds()))))
	case outcome.State == workflow.StateDone:
		exec := outcome.Execution()
		_, _ = fmt.Fprint(w, "\n"+validation.FormatFailures(exec))
		out.Error(NewActionableError(failedCommandsMessage(exec.FailedCommands()), suggestion(outcome.Err)))
	default:
		ae := ActionableFrom(outcome.Err)
		if ae == nil {
			ae = NewActionableError(string(outcome.Failure), "")
		}
		out.Error(ae)
		if outcome.Failure == workflow.FailureRestoreConflict && outcome.Context.Stash.Hash != "" {
			out.Warning(fmt.Sprintf("Your unstaged changes are kept in stash %s (%q).",
				outcome.Context.Stash.Hash, outcome.Context.Stash.Message))
		}
	}
}

func renderJSONSummary(w io.Writer, outcome workflow.Outcome) {
	s := jsonSummary{
		Type:       "result",
		State:      outcome.State.String(),
		Result:     outcome.Result,
		Failure:    outcome.Failure,
		ExitCode:   outcome.ExitCode(),
		DurationMs: outcome.Duration.Milliseconds(),
		Files:      outcome.Context.Files,
		Stash:      outcome.Context.Stash.Hash,
		Results:    outcome.Context.Results,
	}
	if s.Files == nil {
		s.Files = []string{}
	}
	if outcome.Err != nil {
		ae := ActionableFrom(outcome.Err)
		s.Error = ae.Error()
		s.Suggestion = ae.Suggestion
	}
	_ = NewJSONOutput(w).JSON(s)
}

func failedCommandsMessage(n int) string {
	if n == 1 {
		return "1 command failed."
	}
	return fmt.Sprintf("%d commands failed.", n)
}

func suggestion(err error) string {
	if ae := ActionableFrom(err); ae != nil {
		return ae.Suggestion
	}
	return ""
}
