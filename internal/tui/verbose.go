package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
	"github.com/rodrigobdz/lint-staged/internal/workflow"
)

// VerboseReporter prints one line per event, in order, plus the output of
// every command. It never moves the cursor, so it suits CI logs and pipes.
type VerboseReporter struct {
	w      io.Writer
	styles *OutputStyles
}

// NewVerboseReporter creates a VerboseReporter.
func NewVerboseReporter(w io.Writer) *VerboseReporter {
	CheckNoColor()
	return &VerboseReporter{w: w, styles: NewOutputStyles()}
}

// PhaseStarted implements workflow.Reporter.
func (r *VerboseReporter) PhaseStarted(phase workflow.State) {
	r.println(r.styles.Info.Render(IconRunning + " " + phase.Title()))
}

// PhaseCompleted implements workflow.Reporter.
func (r *VerboseReporter) PhaseCompleted(phase workflow.State) {
	r.println(r.styles.Success.Render(IconSuccess + " " + phase.Title()))
}

// PhaseSkipped implements workflow.Reporter.
func (r *VerboseReporter) PhaseSkipped(phase workflow.State, reason string) {
	r.println(r.styles.Warning.Render(fmt.Sprintf("%s %s [SKIPPED] %s", IconSkipped, phase.Title(), reason)))
}

// PhaseFailed implements workflow.Reporter.
func (r *VerboseReporter) PhaseFailed(phase workflow.State, err error) {
	r.println(r.styles.Error.Render(fmt.Sprintf("%s %s [FAILED]", IconFailed, phase.Title())))
	if err != nil {
		r.println(r.styles.Dim.Render("  " + err.Error()))
	}
}

// TaskStarted implements workflow.Reporter.
func (r *VerboseReporter) TaskStarted(task planner.Task) {
	r.println(r.styles.Info.Render("  " + IconRunning + " " + taskLine(task)))
}

// TaskFinished implements workflow.Reporter.
func (r *VerboseReporter) TaskFinished(res validation.TaskResult) {
	style := r.styles.TaskStatusStyle(res.Status)
	r.println(style.Render(fmt.Sprintf("  %s %s %s", TaskStatusIcon(res.Status), res.Title, resultSuffix(res))))

	for _, cmd := range res.Results {
		r.println(r.styles.Dim.Render("    $ " + cmd.Command))
		for _, out := range []string{cmd.Stdout, cmd.Stderr} {
			out = strings.TrimRight(out, "\n")
			if out == "" {
				continue
			}
			for _, line := range strings.Split(out, "\n") {
				r.println("      " + line)
			}
		}
	}
}

// TaskSkipped implements workflow.Reporter.
func (r *VerboseReporter) TaskSkipped(task planner.Task) {
	r.println(r.styles.Warning.Render("  " + IconSkipped + " " + task.SkipReason()))
}

func (r *VerboseReporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

var _ workflow.Reporter = (*VerboseReporter)(nil)
