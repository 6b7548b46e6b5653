package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigobdz/lint-staged/internal/validation"
)

func TestFormatFailures_NothingFailed(t *testing.T) {
	result := validation.ExecutionResult{Results: []validation.TaskResult{
		{Pattern: "*.js", Status: validation.TaskStatusSuccess},
		{Pattern: "*.md", Status: validation.TaskStatusSkipped},
	}}

	assert.Empty(t, validation.FormatFailures(result))
}

func TestFormatFailures_ShowsCommandAndOutput(t *testing.T) {
	result := validation.ExecutionResult{HasErrors: true, Results: []validation.TaskResult{
		{Pattern: "*.js", Status: validation.TaskStatusSuccess},
		{
			Pattern: "*.css",
			Status:  validation.TaskStatusFailed,
			Errors: []validation.CommandError{
				{Command: "stylelint", ExitCode: 2, Output: "b.css:3 unexpected unit\n"},
			},
		},
	}}

	out := validation.FormatFailures(result)

	assert.Contains(t, out, "✖ stylelint found some errors (*.css)")
	assert.Contains(t, out, "exit code 2")
	assert.Contains(t, out, "  b.css:3 unexpected unit\n")
	assert.NotContains(t, out, "*.js")
}

func TestFormatFailures_TruncatesLongOutput(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	result := validation.ExecutionResult{Results: []validation.TaskResult{{
		Pattern: "*.go",
		Status:  validation.TaskStatusFailed,
		Errors:  []validation.CommandError{{Command: "go vet", ExitCode: 1, Output: strings.Join(lines, "\n")}},
	}}}

	out := validation.FormatFailures(result)

	assert.Contains(t, out, "60 more lines truncated")
	assert.Equal(t, 40, strings.Count(out, "  line\n"))
}
