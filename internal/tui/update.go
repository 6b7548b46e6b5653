package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// updateLine is one row of the redrawn block.
type updateLine struct {
	phase  workflow.State
	task   int // -1 for phase rows
	icon   string
	text   string
	suffix string
	style  lipgloss.Style
}

// UpdateReporter redraws a block of status lines in place as the run
// progresses: one line per phase, with task lines nested under
// "Running linters...". Calls are serialized by the orchestrator.
type UpdateReporter struct {
	out    *termenv.Output
	styles *OutputStyles
	width  int
	lines  []updateLine
	drawn  int
}

// NewUpdateReporter creates an UpdateReporter writing to an interactive terminal.
func NewUpdateReporter(w io.Writer, width int) *UpdateReporter {
	CheckNoColor()
	return &UpdateReporter{
		out:    termenv.NewOutput(w, termenv.WithProfile(lipgloss.ColorProfile())),
		styles: NewOutputStyles(),
		width:  width,
	}
}

// PhaseStarted implements workflow.Reporter.
func (r *UpdateReporter) PhaseStarted(phase workflow.State) {
	r.setPhase(phase, IconRunning, "", r.styles.Info)
}

// PhaseCompleted implements workflow.Reporter.
func (r *UpdateReporter) PhaseCompleted(phase workflow.State) {
	r.setPhase(phase, IconSuccess, "", r.styles.Success)
}

// PhaseSkipped implements workflow.Reporter.
func (r *UpdateReporter) PhaseSkipped(phase workflow.State, reason string) {
	r.setPhase(phase, IconSkipped, reason, r.styles.Warning)
}

// PhaseFailed implements workflow.Reporter.
func (r *UpdateReporter) PhaseFailed(phase workflow.State, _ error) {
	r.setPhase(phase, IconFailed, "", r.styles.Error)
}

// TaskStarted implements workflow.Reporter.
func (r *UpdateReporter) TaskStarted(task planner.Task) {
	r.setTask(task.Index(), IconRunning, taskLine(task), "", r.styles.Info)
}

// TaskFinished implements workflow.Reporter.
func (r *UpdateReporter) TaskFinished(res validation.TaskResult) {
	text := fmt.Sprintf("%s (%s)", res.Title, pluralFiles(res.FileCount))
	r.setTask(res.Index, TaskStatusIcon(res.Status), text, resultSuffix(res), r.styles.TaskStatusStyle(res.Status))
}

// TaskSkipped implements workflow.Reporter.
func (r *UpdateReporter) TaskSkipped(task planner.Task) {
	r.setTask(task.Index(), IconSkipped, task.SkipReason(), "", r.styles.Warning)
}

func (r *UpdateReporter) setPhase(phase workflow.State, icon, suffix string, style lipgloss.Style) {
	line := updateLine{phase: phase, task: -1, icon: icon, text: phase.Title(), suffix: suffix, style: style}
	if i := r.find(phase, -1); i >= 0 {
		r.lines[i] = line
	} else {
		r.lines = append(r.lines, line)
	}
	r.redraw()
}

func (r *UpdateReporter) setTask(index int, icon, text, suffix string, style lipgloss.Style) {
	line := updateLine{phase: workflow.StateRunTasks, task: index, icon: icon, text: text, suffix: suffix, style: style}
	if i := r.find(workflow.StateRunTasks, index); i >= 0 {
		r.lines[i] = line
		r.redraw()
		return
	}

	// Keep task rows sorted by declaration order directly under their phase.
	at := len(r.lines)
	for i, l := range r.lines {
		if l.phase == workflow.StateRunTasks && (l.task > index) {
			at = i
			break
		}
		if l.phase > workflow.StateRunTasks {
			at = i
			break
		}
	}
	r.lines = append(r.lines, updateLine{})
	copy(r.lines[at+1:], r.lines[at:])
	r.lines[at] = line
	r.redraw()
}

func (r *UpdateReporter) find(phase workflow.State, task int) int {
	for i, l := range r.lines {
		if l.phase == phase && l.task == task {
			return i
		}
	}
	return -1
}

func (r *UpdateReporter) redraw() {
	if r.drawn > 0 {
		r.out.ClearLines(r.drawn)
	}
	var b strings.Builder
	for _, l := range r.lines {
		b.WriteString(r.render(l))
		b.WriteByte('\n')
	}
	_, _ = r.out.WriteString(b.String())
	r.drawn = len(r.lines)
}

func (r *UpdateReporter) render(l updateLine) string {
	indent := ""
	if l.task >= 0 {
		indent = "  "
	}
	text := indent + l.icon + " " + l.text
	if l.suffix != "" {
		text += " " + l.suffix
	}
	if r.width > 0 {
		text = Truncate(text, r.width-1)
	}
	return l.style.Render(text)
}

var _ workflow.Reporter = (*UpdateReporter)(nil)
