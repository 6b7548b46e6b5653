package workflow

import (
	"slices"
	"time"

	"github.com/rodrigobdz/lint-staged/internal/guard"
	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
)

// Context is the state threaded through the phases of a run. Phases take
// a Context by value and return a new one; the final value is frozen into
// the Outcome.
type Context struct {
	// Files are the staged paths, in index order.
	Files []string `json:"files"`
	// Tasks is the plan, one per configured pattern.
	Tasks []planner.Task `json:"-"`
	// HasStash is true once unstaged changes were stashed.
	HasStash bool `json:"has_stash"`
	// HasErrors is true when any executed task failed.
	HasErrors bool `json:"has_errors"`
	// Stash is the handle of the stash entry, zero when HasStash is false.
	Stash guard.Stash `json:"stash"`
	// Fixes are the staged fixes carried over onto the restored tree.
	Fixes guard.FixPatch `json:"fixes"`
	// Results holds one entry per task in declaration order.
	Results []validation.TaskResult `json:"results"`
	// FoldErr records a failure to capture fixes; restore still runs.
	FoldErr error `json:"-"`
}

// withFiles returns a copy of c holding files.
func (c Context) withFiles(files []string) Context {
	c.Files = slices.Clone(files)
	return c
}

// withTasks returns a copy of c holding tasks.
func (c Context) withTasks(tasks []planner.Task) Context {
	c.Tasks = slices.Clone(tasks)
	return c
}

// withStash returns a copy of c holding the stash handle.
func (c Context) withStash(s guard.Stash) Context {
	c.Stash = s
	c.HasStash = !s.IsZero()
	return c
}

// withExecution returns a copy of c holding task results.
func (c Context) withExecution(r validation.ExecutionResult) Context {
	c.Results = slices.Clone(r.Results)
	c.HasErrors = r.HasErrors
	return c
}

// withFixes returns a copy of c holding fixes or the fold error.
func (c Context) withFixes(p guard.FixPatch, err error) Context {
	c.Fixes = p
	c.FoldErr = err
	return c
}

// ExecutedFiles returns the union of the files of tasks that ran.
func (c Context) ExecutedFiles() []string {
	ran := make([]planner.Task, 0, len(c.Tasks))
	for _, r := range c.Results {
		if r.Ran() && r.Index < len(c.Tasks) {
			ran = append(ran, c.Tasks[r.Index])
		}
	}
	return planner.Files(ran)
}

// Outcome is the terminal result of a run.
type Outcome struct {
	// State is StateDone or StateFailed.
	State State `json:"state"`
	// Result is set when State is StateDone.
	Result Result `json:"result,omitempty"`
	// Failure is set when State is StateFailed.
	Failure Failure `json:"failure,omitempty"`
	// Err is the cause of a failure or of WithErrors.
	Err error `json:"-"`
	// Context is the final, frozen run context.
	Context Context `json:"context"`
	// Visited lists the states entered, in order.
	Visited   []State       `json:"visited"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Succeeded reports whether the run ended in Done(Success) or Done(NoTasks).
func (o Outcome) Succeeded() bool {
	return o.State == StateDone && o.Result != ResultWithErrors
}

// ExitCode maps the outcome to the process exit code: 0 for success or no
// tasks, 2 for invalid configuration, 1 otherwise.
func (o Outcome) ExitCode() int {
	switch {
	case o.Succeeded():
		return 0
	case o.State == StateFailed && o.Failure == FailureInvalidConfig:
		return 2
	default:
		return 1
	}
}

// Execution rebuilds the scheduler result from the frozen context.
func (o Outcome) Execution() validation.ExecutionResult {
	return validation.ExecutionResult{
		Results:   slices.Clone(o.Context.Results),
		HasErrors: o.Context.HasErrors,
	}
}
