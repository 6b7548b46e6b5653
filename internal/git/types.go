// Package git provides the git operations lint-staged depends on.
// This file defines types used by the Runner.
package git

import "strings"

// FileStatus is the index status of a staged file.
type FileStatus string

// Statuses reported for files that can be linted in place.
// Deleted, renamed-away and unmerged entries are never reported.
const (
	StatusAdded    FileStatus = "A"
	StatusCopied   FileStatus = "C"
	StatusModified FileStatus = "M"
)

// StagedFile is a file whose content is recorded in the index.
type StagedFile struct {
	Path   string     // Path relative to the repository root, "/"-separated
	Status FileStatus // Added, Copied or Modified
}

// parseNameStatusZ parses `git diff --name-status -z` output.
// Records are NUL-separated "STATUS\0PATH" pairs; copy and rename records
// carry a source and a destination path. Statuses outside
// Added/Copied/Modified are dropped.
func parseNameStatusZ(output string) []StagedFile {
	fields := splitZ(output)
	files := make([]StagedFile, 0, len(fields)/2)

	for i := 0; i < len(fields); {
		status := fields[i]
		i++
		pathCount := 1
		if status[0] == 'R' || status[0] == 'C' {
			pathCount = 2
		}
		if i+pathCount > len(fields) {
			break
		}
		path := fields[i+pathCount-1]
		i += pathCount

		switch s := FileStatus(status[:1]); s {
		case StatusAdded, StatusCopied, StatusModified:
			files = append(files, StagedFile{Path: path, Status: s})
		}
	}

	return files
}

// splitZ splits NUL-terminated git output into its non-empty entries.
func splitZ(output string) []string {
	parts := strings.Split(output, "\x00")
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

// Paths returns the paths of files in order.
func Paths(files []StagedFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
