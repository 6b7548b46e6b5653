package tui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigobdz/lint-staged/internal/validation"
)

func TestHasColorSupport(t *testing.T) {
	t.Run("NO_COLOR set", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})

	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		t.Setenv("NO_COLOR", "")
		_ = os.Unsetenv("NO_COLOR")
		assert.False(t, HasColorSupport())
	})

	t.Run("color terminal", func(t *testing.T) {
		t.Setenv("TERM", "xterm-256color")
		t.Setenv("NO_COLOR", "")
		_ = os.Unsetenv("NO_COLOR")
		assert.True(t, HasColorSupport())
	})
}

func TestTaskStatusIcon(t *testing.T) {
	tests := []struct {
		status validation.TaskStatus
		want   string
	}{
		{validation.TaskStatusSuccess, IconSuccess},
		{validation.TaskStatusFailed, IconFailed},
		{validation.TaskStatusSkipped, IconSkipped},
		{validation.TaskStatusNotRun, IconSkipped},
		{validation.TaskStatus("unknown"), "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, TaskStatusIcon(tt.status))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Running t…", Truncate("Running tasks for *.js", 10))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
	assert.Equal(t, "日本…", Truncate("日本語のファイル", 5), "wide runes count as two cells")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	assert.Equal(t, DefaultTerminalWidth, TerminalWidth(f))
	assert.Equal(t, DefaultTerminalWidth, TerminalWidth(nil))
	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250))
	assert.Equal(t, "1.5s", FormatDuration(1500))
}
