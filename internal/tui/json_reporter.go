package tui

import (
	"encoding/json"
	"io"

	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// jsonEvent is one line of the json renderer's output.
type jsonEvent struct {
	Event   string                 `json:"event"`
	Phase   string                 `json:"phase,omitempty"`
	Title   string                 `json:"title,omitempty"`
	Reason  string                 `json:"reason,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Pattern string                 `json:"pattern,omitempty"`
	Files   []string               `json:"files,omitempty"`
	Result  *validation.TaskResult `json:"result,omitempty"`
}

// JSONReporter writes one JSON object per event, for machine consumers.
type JSONReporter struct {
	encoder *json.Encoder
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{encoder: json.NewEncoder(w)}
}

// PhaseStarted implements workflow.Reporter.
func (r *JSONReporter) PhaseStarted(phase workflow.State) {
	r.emit(jsonEvent{Event: "phase_started", Phase: phase.String(), Title: phase.Title()})
}

// PhaseCompleted implements workflow.Reporter.
func (r *JSONReporter) PhaseCompleted(phase workflow.State) {
	r.emit(jsonEvent{Event: "phase_completed", Phase: phase.String(), Title: phase.Title()})
}

// PhaseSkipped implements workflow.Reporter.
func (r *JSONReporter) PhaseSkipped(phase workflow.State, reason string) {
	r.emit(jsonEvent{Event: "phase_skipped", Phase: phase.String(), Title: phase.Title(), Reason: reason})
}

// PhaseFailed implements workflow.Reporter.
func (r *JSONReporter) PhaseFailed(phase workflow.State, err error) {
	ev := jsonEvent{Event: "phase_failed", Phase: phase.String(), Title: phase.Title()}
	if err != nil {
		ev.Error = err.Error()
	}
	r.emit(ev)
}

// TaskStarted implements workflow.Reporter.
func (r *JSONReporter) TaskStarted(task planner.Task) {
	r.emit(jsonEvent{Event: "task_started", Pattern: task.Pattern(), Title: task.Title(), Files: task.Files()})
}

// TaskFinished implements workflow.Reporter.
func (r *JSONReporter) TaskFinished(res validation.TaskResult) {
	r.emit(jsonEvent{Event: "task_finished", Pattern: res.Pattern, Result: &res})
}

// TaskSkipped implements workflow.Reporter.
func (r *JSONReporter) TaskSkipped(task planner.Task) {
	r.emit(jsonEvent{Event: "task_skipped", Pattern: task.Pattern(), Reason: task.SkipReason()})
}

func (r *JSONReporter) emit(ev jsonEvent) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = r.encoder.Encode(ev)
}

var _ workflow.Reporter = (*JSONReporter)(nil)
