// Package planner partitions staged files into tasks, one per configured
// pattern, in declaration order.
package planner

import (
	"github.com/rodrigobdz/lint-staged/internal/config"
)

// Plan builds one Task per linter, in declaration order, holding the subset
// of files matching the linter's pattern. A file may belong to several tasks.
// Files keep their input order; duplicates are dropped.
//
// An empty file list yields tasks that are all skipped. Plan has no error
// conditions: patterns are checked by config.Validate.
func Plan(linters []config.Linter, files []string) []Task {
	files = dedupe(files)

	tasks := make([]Task, 0, len(linters))
	for i, l := range linters {
		m := NewMatcher(l.Pattern)

		var matched []string
		for _, f := range files {
			if m.Match(f) {
				matched = append(matched, f)
			}
		}
		tasks = append(tasks, NewTask(i, l.Pattern, l.Commands, matched))
	}
	return tasks
}

// Runnable returns the tasks that matched at least one file.
func Runnable(tasks []Task) []Task {
	runnable := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Skipped() {
			runnable = append(runnable, t)
		}
	}
	return runnable
}

// Files returns the union of the files of the given tasks, in first-seen order.
func Files(tasks []Task) []string {
	var all []string
	for _, t := range tasks {
		all = append(all, t.files...)
	}
	return dedupe(all)
}

func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
