package planner

import "slices"

// Task binds one configured pattern to its commands and the staged files it
// matched. Tasks are immutable: accessors return copies.
type Task struct {
	index    int
	pattern  string
	commands []string
	files    []string
}

// NewTask creates a task. index is the pattern's position in the configuration.
func NewTask(index int, pattern string, commands, files []string) Task {
	return Task{
		index:    index,
		pattern:  pattern,
		commands: slices.Clone(commands),
		files:    slices.Clone(files),
	}
}

// Index returns the pattern's position in the configuration.
func (t Task) Index() int { return t.index }

// Pattern returns the glob pattern.
func (t Task) Pattern() string { return t.pattern }

// Commands returns the command templates in execution order.
func (t Task) Commands() []string { return slices.Clone(t.commands) }

// Files returns the matched repository-relative paths in staged order.
func (t Task) Files() []string { return slices.Clone(t.files) }

// FileCount returns the number of matched files.
func (t Task) FileCount() int { return len(t.files) }

// Skipped reports whether the task matched no files and must not run.
func (t Task) Skipped() bool { return len(t.files) == 0 }

// Title is the display name of the task.
func (t Task) Title() string { return "Running tasks for " + t.pattern }

// SkipReason explains why a skipped task did not run.
func (t Task) SkipReason() string { return "No staged files match " + t.pattern }
