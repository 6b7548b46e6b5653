// Package tui renders lint-staged progress and results to the terminal.
//
// This package provides a centralized style system using Lip Gloss for consistent
// styling. All colors use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across components:
//   - ColorPrimary (Blue): running phases and tasks
//   - ColorSuccess (Green): passed tasks and completed phases
//   - ColorWarning (Yellow): skipped work and warnings
//   - ColorError (Red): failed commands
//   - ColorMuted (Gray): secondary text
//
// # Status Icons
//
// Every status line carries an icon, a color and text, so output stays
// readable with colors disabled.
//
// # NO_COLOR Support
//
// Call CheckNoColor() before writing styled text to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rodrigobdz/lint-staged/internal/validation"
)

//nolint:gochecknoglobals // Intentional package-level constants for styling API
var (
	// ColorPrimary is blue, used for running phases and tasks.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for passed tasks and completed phases.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for skipped work and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed commands.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Icons shown next to phases and tasks.
const (
	IconRunning = "❯"
	IconSuccess = "✔"
	IconFailed  = "✖"
	IconSkipped = "↓"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconPending = "◼"
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this before rendering styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// TaskStatusIcon returns the icon for a task status.
func TaskStatusIcon(status validation.TaskStatus) string {
	switch status {
	case validation.TaskStatusSuccess:
		return IconSuccess
	case validation.TaskStatusFailed:
		return IconFailed
	case validation.TaskStatusSkipped, validation.TaskStatusNotRun:
		return IconSkipped
	}
	return "?"
}

// TaskStatusStyle returns the style for a task status line.
func (s *OutputStyles) TaskStatusStyle(status validation.TaskStatus) lipgloss.Style {
	switch status {
	case validation.TaskStatusSuccess:
		return s.Success
	case validation.TaskStatusFailed:
		return s.Error
	case validation.TaskStatusSkipped, validation.TaskStatusNotRun:
		return s.Warning
	}
	return s.Dim
}

// DefaultTerminalWidth is used when terminal width cannot be determined.
const DefaultTerminalWidth = 80

// TerminalWidth returns the width of the terminal attached to f, or
// DefaultTerminalWidth when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int on supported platforms
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int on supported platforms
}

// Truncate shortens s to at most width display cells, appending an ellipsis
// when it was cut. Wide runes (CJK, emoji) count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
