package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
	"github.com/rodrigobdz/lint-staged/internal/validation"
)

func TestTaskResult_OKAndRan(t *testing.T) {
	tests := []struct {
		status validation.TaskStatus
		ok     bool
		ran    bool
	}{
		{validation.TaskStatusSuccess, true, true},
		{validation.TaskStatusFailed, false, true},
		{validation.TaskStatusSkipped, true, false},
		{validation.TaskStatusNotRun, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := validation.TaskResult{Status: tt.status}
			assert.Equal(t, tt.ok, r.OK())
			assert.Equal(t, tt.ran, r.Ran())
		})
	}
}

func TestCommandError(t *testing.T) {
	e := validation.CommandError{Command: "eslint", Err: lserrors.ErrCommandFailed}
	assert.Equal(t, "eslint: command failed", e.Error())
	require.ErrorIs(t, e, lserrors.ErrCommandFailed)

	assert.Equal(t, "eslint", validation.CommandError{Command: "eslint"}.Error())
}

func TestExecutionResult_Accessors(t *testing.T) {
	result := validation.ExecutionResult{Results: []validation.TaskResult{
		{Pattern: "a", Status: validation.TaskStatusFailed, Errors: []validation.CommandError{{Command: "x"}}},
		{Pattern: "b", Status: validation.TaskStatusSuccess},
		{Pattern: "c", Status: validation.TaskStatusSkipped},
		{Pattern: "d", Status: validation.TaskStatusFailed, Errors: []validation.CommandError{{Command: "y"}}},
	}}

	failed := result.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "a", failed[0].Pattern)
	assert.Equal(t, "d", failed[1].Pattern)
	assert.Equal(t, 2, result.FailedCommands())
	assert.Len(t, result.Executed(), 3)
}
