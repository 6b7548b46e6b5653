package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rodrigobdz/lint-staged/internal/clock"
	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/ctxutil"
	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
	"github.com/rodrigobdz/lint-staged/internal/git"
	"github.com/rodrigobdz/lint-staged/internal/guard"
	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
)

// StagedFileSource lists the files staged for commit. *git.CLIRunner implements it.
type StagedFileSource interface {
	ListStagedFiles(ctx context.Context) ([]git.StagedFile, error)
}

// StateGuard protects unstaged work around task execution. *guard.Guard implements it.
type StateGuard interface {
	HasUnstagedChanges(ctx context.Context) (bool, error)
	StashSave(ctx context.Context) (guard.Stash, error)
	FoldFixes(ctx context.Context, stash guard.Stash, files []string) (guard.FixPatch, error)
	StashPop(ctx context.Context, stash guard.Stash, fixes guard.FixPatch) error
}

// Orchestrator runs the staged-change workflow.
type Orchestrator struct {
	files    StagedFileSource
	guard    StateGuard
	runner   validation.TaskRunner
	reporter Reporter
	clock    clock.Clock
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// WithClock sets the clock used to time the run.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.clock = c
		}
	}
}

// NewOrchestrator creates an orchestrator over its collaborators.
func NewOrchestrator(files StagedFileSource, g StateGuard, runner validation.TaskRunner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		files:  files,
		guard:  g,
		runner: runner,
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// machine tracks the current state of a single run.
type machine struct {
	state   State
	visited []State
	log     *zerolog.Logger
}

func (m *machine) enter(to State) {
	if err := transition(m.state, to); err != nil {
		// Unreachable unless the phase functions below are miswired.
		panic(err)
	}
	m.log.Debug().Str("from", m.state.String()).Str("to", to.String()).Msg("workflow transition")
	m.state = to
	m.visited = append(m.visited, to)
}

// Run executes one workflow over cfg and returns its terminal outcome.
//
// The returned error is nil only for Done(Success) and Done(NoTasks). For
// Done(WithErrors) it wraps ErrTasksFailed; for Failed outcomes it carries
// the cause. UpdateIndex and RestoreStash run on a context detached from
// ctx's cancellation, so an interrupt during task execution still restores
// the developer's unstaged work.
func (o *Orchestrator) Run(ctx context.Context, cfg *config.Config) (Outcome, error) {
	log := zerolog.Ctx(ctx)
	rep := newSyncReporter(o.reporter)
	m := &machine{state: StateInit, visited: []State{StateInit}, log: log}
	started := o.clock.Now()

	finish := func(wc Context, out Outcome) (Outcome, error) {
		out.Context = wc
		out.Visited = m.visited
		out.StartedAt = started
		out.Duration = clock.Since(o.clock, started)
		log.Info().
			Str("state", out.State.String()).
			Str("result", string(out.Result)).
			Str("failure", string(out.Failure)).
			Dur("duration", out.Duration).
			Msg("workflow finished")
		return out, out.Err
	}
	done := func(wc Context, result Result, err error) (Outcome, error) {
		m.enter(StateDone)
		return finish(wc, Outcome{State: StateDone, Result: result, Err: err})
	}
	fail := func(wc Context, failure Failure, err error) (Outcome, error) {
		m.enter(StateFailed)
		return finish(wc, Outcome{State: StateFailed, Failure: failure, Err: err})
	}

	var wc Context

	// Init
	if !cfg.Validated() {
		return fail(wc, FailureInvalidConfig, lserrors.Wrap(lserrors.ErrInvalidConfig, "invalid config provided"))
	}
	staged, err := o.files.ListStagedFiles(ctx)
	if err != nil {
		return fail(wc, FailureVCS, err)
	}
	wc = wc.withFiles(git.Paths(staged))

	// Plan
	m.enter(StatePlan)
	wc = wc.withTasks(planner.Plan(cfg.Linters, wc.Files))
	if len(wc.Files) == 0 {
		log.Info().Msg("no staged files")
		return done(wc, ResultNoTasks, nil)
	}
	if len(planner.Runnable(wc.Tasks)) == 0 {
		for _, task := range wc.Tasks {
			rep.TaskSkipped(task)
		}
		log.Info().Int("staged", len(wc.Files)).Msg("no staged files match any pattern")
		return done(wc, ResultNoTasks, nil)
	}

	// DetectUnstaged
	m.enter(StateDetectUnstaged)
	dirty, err := o.guard.HasUnstagedChanges(ctx)
	if err != nil {
		return fail(wc, FailureVCS, err)
	}

	if dirty {
		m.enter(StateStash)
		wc, err = o.stash(ctx, rep, wc)
		if err != nil {
			return fail(wc, FailureStash, err)
		}
	} else {
		rep.PhaseSkipped(StateStash, ReasonNoUnstagedChanges)
	}

	// RunTasks
	m.enter(StateRunTasks)
	wc = o.runTasks(ctx, rep, cfg, wc)

	if !wc.HasStash {
		return done(wc, resultOf(wc), o.tasksErr(ctx, wc))
	}

	cleanupCtx := ctxutil.Detached(ctx)

	if wc.HasErrors {
		rep.PhaseSkipped(StateUpdateIndex, ReasonTasksFailed)
	} else {
		m.enter(StateUpdateIndex)
		wc = o.updateIndex(cleanupCtx, rep, wc)
	}

	m.enter(StateRestoreStash)
	wc, err = o.restore(cleanupCtx, rep, wc)
	switch {
	case errors.Is(err, lserrors.ErrRestoreConflict):
		return fail(wc, FailureRestoreConflict, err)
	case err != nil:
		return fail(wc, FailureFold, err)
	case wc.FoldErr != nil:
		return fail(wc, FailureFold, wc.FoldErr)
	}

	return done(wc, resultOf(wc), o.tasksErr(ctx, wc))
}

// stash moves unstaged changes aside. A nil error with no stash means git
// found nothing to save after all; the run continues without one.
func (o *Orchestrator) stash(ctx context.Context, rep Reporter, wc Context) (Context, error) {
	rep.PhaseStarted(StateStash)
	stash, err := o.guard.StashSave(ctx)
	if err != nil {
		rep.PhaseFailed(StateStash, err)
		return wc, err
	}
	rep.PhaseCompleted(StateStash)
	return wc.withStash(stash), nil
}

func (o *Orchestrator) runTasks(ctx context.Context, rep Reporter, cfg *config.Config, wc Context) Context {
	rep.PhaseStarted(StateRunTasks)
	scheduler := validation.NewScheduler(o.runner)
	scheduler.SetObserver(rep)
	wc = wc.withExecution(scheduler.Execute(ctx, wc.Tasks, validation.PolicyFromConfig(cfg)))
	if wc.HasErrors {
		rep.PhaseFailed(StateRunTasks, lserrors.ErrTasksFailed)
	} else {
		rep.PhaseCompleted(StateRunTasks)
	}
	return wc
}

// updateIndex captures staged fixes. A failure is recorded on the context
// and reported after restore, which always runs.
func (o *Orchestrator) updateIndex(ctx context.Context, rep Reporter, wc Context) Context {
	rep.PhaseStarted(StateUpdateIndex)
	fixes, err := o.guard.FoldFixes(ctx, wc.Stash, wc.ExecutedFiles())
	if err != nil {
		rep.PhaseFailed(StateUpdateIndex, err)
		return wc.withFixes(guard.FixPatch{}, err)
	}
	rep.PhaseCompleted(StateUpdateIndex)
	return wc.withFixes(fixes, nil)
}

func (o *Orchestrator) restore(ctx context.Context, rep Reporter, wc Context) (Context, error) {
	rep.PhaseStarted(StateRestoreStash)
	if err := o.guard.StashPop(ctx, wc.Stash, wc.Fixes); err != nil {
		rep.PhaseFailed(StateRestoreStash, err)
		return wc, err
	}
	rep.PhaseCompleted(StateRestoreStash)
	return wc, nil
}

// tasksErr returns the aggregate error of a Done run, noting an interrupt.
func (o *Orchestrator) tasksErr(ctx context.Context, wc Context) error {
	if !wc.HasErrors {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", lserrors.ErrTasksFailed, err)
	}
	return lserrors.ErrTasksFailed
}

func resultOf(wc Context) Result {
	if wc.HasErrors {
		return ResultWithErrors
	}
	return ResultSuccess
}
