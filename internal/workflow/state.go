// Package workflow drives one lint-staged run as an explicit state machine.
//
// This file defines the states and the transitions between them. The
// orchestrator checks every transition against ValidTransitions; no state
// is entered twice.
//
// Import rules:
//   - CAN import: internal/config, internal/errors, internal/git, internal/guard,
//     internal/planner, internal/validation, internal/clock, internal/ctxutil, std lib
//   - MUST NOT import: internal/cli, internal/tui
package workflow

import (
	"fmt"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// State is a phase of a run.
type State int

// Workflow states in the order a full run visits them.
const (
	StateInit State = iota
	StatePlan
	StateDetectUnstaged
	StateStash
	StateRunTasks
	StateUpdateIndex
	StateRestoreStash
	StateDone
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePlan:
		return "plan"
	case StateDetectUnstaged:
		return "detect_unstaged"
	case StateStash:
		return "stash"
	case StateRunTasks:
		return "run_tasks"
	case StateUpdateIndex:
		return "update_index"
	case StateRestoreStash:
		return "restore_stash"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ValidTransitions defines all allowed state transitions.
// Format: from_state -> []to_states
//
// The state machine follows this flow:
//
//	Init → Plan, Failed
//	Plan → DetectUnstaged, Done
//	DetectUnstaged → Stash, RunTasks, Failed
//	Stash → RunTasks, Failed
//	RunTasks → UpdateIndex, RestoreStash, Done
//	UpdateIndex → RestoreStash
//	RestoreStash → Done, Failed
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[State][]State{
	StateInit:           {StatePlan, StateFailed},
	StatePlan:           {StateDetectUnstaged, StateDone},
	StateDetectUnstaged: {StateStash, StateRunTasks, StateFailed},
	StateStash:          {StateRunTasks, StateFailed},
	StateRunTasks:       {StateUpdateIndex, StateRestoreStash, StateDone},
	StateUpdateIndex:    {StateRestoreStash},
	StateRestoreStash:   {StateDone, StateFailed},
}

// IsValidTransition checks if a transition from one state to another is allowed.
// Returns false for transitions from terminal states or to the same state.
func IsValidTransition(from, to State) bool {
	if from == to {
		return false
	}
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Title is the progress line shown while the phase runs. Phases without a
// title are not reported.
func (s State) Title() string {
	switch s {
	case StateStash:
		return "Stashing changes..."
	case StateRunTasks:
		return "Running linters..."
	case StateUpdateIndex:
		return "Updating index..."
	case StateRestoreStash:
		return "Restoring local changes..."
	case StateInit, StatePlan, StateDetectUnstaged, StateDone, StateFailed:
	}
	return ""
}

// IsTerminal returns true for Done and Failed.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// transition validates a state change.
func transition(from, to State) error {
	if !IsValidTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", lserrors.ErrInvalidTransition, from, to)
	}
	return nil
}

// Result classifies a Done run.
type Result string

// Done results.
const (
	// ResultNoTasks means nothing was staged or no task matched; git was not touched.
	ResultNoTasks Result = "no_tasks"
	// ResultSuccess means every executed task passed.
	ResultSuccess Result = "success"
	// ResultWithErrors means at least one task failed; unstaged work was restored.
	ResultWithErrors Result = "with_errors"
)

// Failure classifies a Failed run.
type Failure string

// Failure kinds.
const (
	FailureInvalidConfig   Failure = "invalid_config"
	FailureVCS             Failure = "vcs_error"
	FailureStash           Failure = "stash_error"
	FailureRestoreConflict Failure = "restore_conflict"
	FailureFold            Failure = "fold_error"
)
