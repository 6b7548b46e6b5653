package validation

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rodrigobdz/lint-staged/internal/config"
	"github.com/rodrigobdz/lint-staged/internal/planner"
)

// Concurrency selects how many tasks may run at once.
type Concurrency struct {
	limit int
}

// Sequential runs tasks one at a time in list order.
func Sequential() Concurrency {
	return Concurrency{}
}

// Bounded runs up to n tasks at once. n < 1 is treated as 1.
func Bounded(n int) Concurrency {
	return Concurrency{limit: max(n, 1)}
}

// IsSequential reports whether tasks run one at a time in list order.
func (c Concurrency) IsSequential() bool {
	return c.limit == 0
}

// Limit returns the maximum number of tasks running at once.
func (c Concurrency) Limit() int {
	return max(c.limit, 1)
}

// String implements fmt.Stringer.
func (c Concurrency) String() string {
	if c.IsSequential() {
		return "sequential"
	}
	return "bounded(" + strconv.Itoa(c.limit) + ")"
}

// Policy controls task scheduling.
type Policy struct {
	Concurrency Concurrency
	// AbortOnFirstError stops launching tasks after the first failure.
	// Only honored in sequential mode; bounded runs let every task finish.
	AbortOnFirstError bool
}

// PolicyFromConfig derives the scheduling policy from a configuration.
func PolicyFromConfig(cfg *config.Config) Policy {
	if !cfg.Concurrent {
		return Policy{Concurrency: Sequential(), AbortOnFirstError: cfg.AbortOnError}
	}
	return Policy{Concurrency: Bounded(cfg.MaxConcurrency)}
}

// TaskRunner runs a single task. *Executor implements it.
type TaskRunner interface {
	RunTask(ctx context.Context, task planner.Task) TaskResult
}

// Observer receives task lifecycle notifications. Calls may come from
// several goroutines at once in bounded mode.
type Observer interface {
	TaskStarted(task planner.Task)
	TaskFinished(result TaskResult)
	TaskSkipped(task planner.Task)
}

// Scheduler fans tasks out to a TaskRunner under a Policy.
type Scheduler struct {
	runner   TaskRunner
	observer Observer
}

// NewScheduler creates a scheduler.
func NewScheduler(runner TaskRunner) *Scheduler {
	return &Scheduler{runner: runner}
}

// SetObserver sets or updates the task observer.
func (s *Scheduler) SetObserver(o Observer) {
	s.observer = o
}

// Execute runs every non-skipped task and returns one result per task in
// declaration order, regardless of completion order. Tasks without files
// are recorded as skipped and never run. Task failures are collected, not
// returned: HasErrors is true when any executed task failed.
func (s *Scheduler) Execute(ctx context.Context, tasks []planner.Task, policy Policy) ExecutionResult {
	log := zerolog.Ctx(ctx)
	startTime := time.Now()

	results := make([]TaskResult, len(tasks))
	var runnable []int
	for i, task := range tasks {
		if task.Skipped() {
			results[i] = skippedResult(task)
			s.notifySkipped(task)
			continue
		}
		runnable = append(runnable, i)
	}

	log.Info().
		Int("task_count", len(tasks)).
		Int("runnable", len(runnable)).
		Str("concurrency", policy.Concurrency.String()).
		Bool("abort_on_first_error", policy.AbortOnFirstError).
		Msg("executing tasks")

	if policy.Concurrency.IsSequential() {
		s.runSequential(ctx, tasks, runnable, results, policy.AbortOnFirstError)
	} else {
		s.runBounded(ctx, tasks, runnable, results, policy.Concurrency.Limit())
	}

	exec := ExecutionResult{Results: results, DurationMs: time.Since(startTime).Milliseconds()}
	for _, r := range results {
		if !r.OK() {
			exec.HasErrors = true
		}
	}

	log.Info().
		Bool("has_errors", exec.HasErrors).
		Int64("duration_ms", exec.DurationMs).
		Msg("tasks finished")

	return exec
}

// runSequential executes tasks in list order. With abort set, tasks after the
// first failure are recorded as not run.
func (s *Scheduler) runSequential(ctx context.Context, tasks []planner.Task, runnable []int, results []TaskResult, abort bool) {
	failed := false
	for _, i := range runnable {
		if failed && abort {
			results[i] = notRunResult(tasks[i])
			continue
		}
		results[i] = s.run(ctx, tasks[i])
		if !results[i].OK() {
			failed = true
		}
	}
}

// runBounded executes tasks concurrently with at most limit in flight.
// IMPORTANT: goroutines return nil and use the original ctx, not an errgroup
// derived one, so one failing task never cancels the others.
func (s *Scheduler) runBounded(ctx context.Context, tasks []planner.Task, runnable []int, results []TaskResult, limit int) {
	var g errgroup.Group
	g.SetLimit(limit)

	var mu sync.Mutex
	for _, i := range runnable {
		g.Go(func() error {
			r := s.run(ctx, tasks[i])
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}

	// Always nil since goroutines return nil.
	_ = g.Wait()
}

func (s *Scheduler) run(ctx context.Context, task planner.Task) TaskResult {
	if s.observer != nil {
		s.observer.TaskStarted(task)
	}
	r := s.runner.RunTask(ctx, task)
	if s.observer != nil {
		s.observer.TaskFinished(r)
	}
	return r
}

func (s *Scheduler) notifySkipped(task planner.Task) {
	if s.observer != nil {
		s.observer.TaskSkipped(task)
	}
}

func skippedResult(task planner.Task) TaskResult {
	return TaskResult{
		Index:      task.Index(),
		Pattern:    task.Pattern(),
		Title:      task.Title(),
		Status:     TaskStatusSkipped,
		SkipReason: task.SkipReason(),
	}
}

func notRunResult(task planner.Task) TaskResult {
	return TaskResult{
		Index:      task.Index(),
		Pattern:    task.Pattern(),
		Title:      task.Title(),
		Status:     TaskStatusNotRun,
		FileCount:  task.FileCount(),
		SkipReason: "Skipped after an earlier task failed",
	}
}
