package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateInit, StatePlan, true},
		{StateInit, StateFailed, true},
		{StatePlan, StateDone, true},
		{StatePlan, StateDetectUnstaged, true},
		{StateDetectUnstaged, StateStash, true},
		{StateDetectUnstaged, StateRunTasks, true},
		{StateStash, StateRunTasks, true},
		{StateRunTasks, StateUpdateIndex, true},
		{StateRunTasks, StateRestoreStash, true},
		{StateRunTasks, StateDone, true},
		{StateUpdateIndex, StateRestoreStash, true},
		{StateRestoreStash, StateDone, true},
		{StateRestoreStash, StateFailed, true},

		{StateInit, StateInit, false},
		{StateInit, StateRunTasks, false},
		{StatePlan, StateStash, false},
		{StateStash, StateUpdateIndex, false},
		{StateRunTasks, StateFailed, false},
		{StateUpdateIndex, StateDone, false},
		{StateDone, StateInit, false},
		{StateFailed, StatePlan, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestTransition_Error(t *testing.T) {
	err := transition(StateDone, StatePlan)
	require.ErrorIs(t, err, lserrors.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "done -> plan")

	require.NoError(t, transition(StateInit, StatePlan))
}

func TestState_TerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range []State{StateDone, StateFailed} {
		assert.True(t, s.IsTerminal())
		assert.Empty(t, ValidTransitions[s])
	}
	assert.False(t, StateRunTasks.IsTerminal())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "detect_unstaged", StateDetectUnstaged.String())
	assert.Equal(t, "restore_stash", StateRestoreStash.String())
	assert.Equal(t, "state(42)", State(42).String())
}

func TestState_Title(t *testing.T) {
	assert.Equal(t, "Stashing changes...", StateStash.Title())
	assert.Equal(t, "Running linters...", StateRunTasks.Title())
	assert.Equal(t, "Updating index...", StateUpdateIndex.Title())
	assert.Equal(t, "Restoring local changes...", StateRestoreStash.Title())
	assert.Empty(t, StatePlan.Title())
}

func TestOutcome_ExitCode(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    int
	}{
		{"success", Outcome{State: StateDone, Result: ResultSuccess}, 0},
		{"no tasks", Outcome{State: StateDone, Result: ResultNoTasks}, 0},
		{"with errors", Outcome{State: StateDone, Result: ResultWithErrors}, 1},
		{"invalid config", Outcome{State: StateFailed, Failure: FailureInvalidConfig}, 2},
		{"vcs", Outcome{State: StateFailed, Failure: FailureVCS}, 1},
		{"restore conflict", Outcome{State: StateFailed, Failure: FailureRestoreConflict}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.ExitCode())
		})
	}
}
