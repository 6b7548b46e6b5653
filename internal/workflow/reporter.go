package workflow

import (
	"sync"

	"github.com/rodrigobdz/lint-staged/internal/planner"
	"github.com/rodrigobdz/lint-staged/internal/validation"
)

// Reporter receives progress notifications. It is observational only: a
// reporter cannot change the course of a run.
type Reporter interface {
	PhaseStarted(phase State)
	PhaseCompleted(phase State)
	PhaseSkipped(phase State, reason string)
	PhaseFailed(phase State, err error)
	validation.Observer
}

// Skip reasons reported for phases that did not run.
const (
	ReasonNoUnstagedChanges = "No unstaged files found..."
	ReasonTasksFailed       = "Skipping index update since there are errors"
)

// NopReporter discards every notification.
type NopReporter struct{}

// PhaseStarted implements Reporter.
func (NopReporter) PhaseStarted(State) {}

// PhaseCompleted implements Reporter.
func (NopReporter) PhaseCompleted(State) {}

// PhaseSkipped implements Reporter.
func (NopReporter) PhaseSkipped(State, string) {}

// PhaseFailed implements Reporter.
func (NopReporter) PhaseFailed(State, error) {}

// TaskStarted implements Reporter.
func (NopReporter) TaskStarted(planner.Task) {}

// TaskFinished implements Reporter.
func (NopReporter) TaskFinished(validation.TaskResult) {}

// TaskSkipped implements Reporter.
func (NopReporter) TaskSkipped(planner.Task) {}

var _ Reporter = NopReporter{}

// syncReporter serializes calls so implementations need no locking of their
// own; task notifications arrive from several goroutines in bounded mode.
type syncReporter struct {
	mu    sync.Mutex
	inner Reporter
}

func newSyncReporter(r Reporter) *syncReporter {
	if r == nil {
		r = NopReporter{}
	}
	return &syncReporter{inner: r}
}

func (s *syncReporter) PhaseStarted(phase State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PhaseStarted(phase)
}

func (s *syncReporter) PhaseCompleted(phase State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PhaseCompleted(phase)
}

func (s *syncReporter) PhaseSkipped(phase State, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PhaseSkipped(phase, reason)
}

func (s *syncReporter) PhaseFailed(phase State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PhaseFailed(phase, err)
}

func (s *syncReporter) TaskStarted(task planner.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.TaskStarted(task)
}

func (s *syncReporter) TaskFinished(result validation.TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.TaskFinished(result)
}

func (s *syncReporter) TaskSkipped(task planner.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.TaskSkipped(task)
}
