package validation

import (
	"fmt"
	"strings"
)

// maxOutputLines is the maximum number of output lines shown per failed command.
// Longer output is truncated to prevent overwhelming the user.
const maxOutputLines = 40

// FormatFailures formats the failed tasks of an ExecutionResult for
// human-readable display. It returns "" when nothing failed.
func FormatFailures(result ExecutionResult) string {
	failed := result.Failed()
	if len(failed) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, t := range failed {
		for _, cmdErr := range t.Errors {
			sb.WriteString(formatCommandError(t.Pattern, cmdErr))
		}
	}
	return sb.String()
}

// formatCommandError formats a single failed command.
func formatCommandError(pattern string, e CommandError) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("✖ %s found some errors (%s)\n", e.Command, pattern))
	if e.ExitCode != 0 {
		sb.WriteString(fmt.Sprintf("  exit code %d\n", e.ExitCode))
	}
	if out := truncateLines(e.Output, maxOutputLines); out != "" {
		for _, line := range strings.Split(out, "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// truncateLines keeps the first n lines of s.
func truncateLines(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n...[%d more lines truncated, run with --verbose for full output]", len(lines)-n)
}
