package git

import "testing"

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeUnknown, "unknown"},
		{ErrorTypeLockFile, "lock_file"},
		{ErrorTypeConflict, "conflict"},
		{ErrorTypeNotRepository, "not_repository"},
		{ErrorTypeNoInitialCommit, "no_initial_commit"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.errType.String(); got != tt.expected {
				t.Errorf("ErrorType.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		errStr   string
		expected ErrorType
	}{
		{"lock - index.lock", "fatal: Unable to create '/repo/.git/index.lock': File exists.", ErrorTypeLockFile},
		{"lock - another process", "Another git process seems to be running in this repository", ErrorTypeLockFile},
		{"conflict - merge", "CONFLICT (content): Merge conflict in a.txt", ErrorTypeConflict},
		{"conflict - untracked", "a.txt already exists, no checkout\nerror: could not restore untracked files from stash", ErrorTypeConflict},
		{"conflict - overwritten", "error: Your local changes to the following files would be overwritten by merge", ErrorTypeConflict},
		{"conflict - patch", "error: patch failed: a.txt:1\nerror: a.txt: patch does not apply", ErrorTypeConflict},
		{"not repository", "fatal: not a git repository (or any of the parent directories): .git", ErrorTypeNotRepository},
		{"no initial commit", "You do not have the initial commit yet", ErrorTypeNoInitialCommit},
		{"unknown", "fatal: something else entirely", ErrorTypeUnknown},
		{"empty", "", ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.errStr); got != tt.expected {
				t.Errorf("ClassifyError(%q) = %v, want %v", tt.errStr, got, tt.expected)
			}
		})
	}
}

func TestClassifyError_LockTakesPriority(t *testing.T) {
	errStr := "CONFLICT while writing: Unable to create '.git/index.lock'"
	if got := ClassifyError(errStr); got != ErrorTypeLockFile {
		t.Errorf("ClassifyError() = %v, want %v", got, ErrorTypeLockFile)
	}
}

func TestPatternMatcher_Matches(t *testing.T) {
	m := NewPatternMatcher("foo", "bar baz")

	tests := []struct {
		input string
		want  bool
	}{
		{"has foo inside", true},
		{"HAS FOO INSIDE", true},
		{"bar baz", true},
		{"bar", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := m.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesFunctions(t *testing.T) {
	if !MatchesLockFileError("fatal: Unable to create '.git/index.lock': File exists.") {
		t.Error("MatchesLockFileError should match index.lock contention")
	}
	if MatchesLockFileError("CONFLICT (content)") {
		t.Error("MatchesLockFileError should not match conflicts")
	}
	if !MatchesConflictError("CONFLICT (content): Merge conflict in x") {
		t.Error("MatchesConflictError should match merge conflicts")
	}
	if MatchesConflictError("fatal: not a git repository") {
		t.Error("MatchesConflictError should not match repository errors")
	}
}
