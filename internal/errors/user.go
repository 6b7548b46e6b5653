package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map so wrapped errors resolve via errors.Is().
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrRestoreConflict,
		info: ErrorInfo{
			Message: "Restoring your unstaged changes requires manual intervention.",
			Action:  "Your changes are kept in the stash list. Resolve the conflict, then run 'git stash pop'.",
		},
	},
	{
		err: ErrStashFailed,
		info: ErrorInfo{
			Message: "Could not stash unstaged changes. Your working tree was left untouched.",
			Action:  "Check 'git status' and 'git stash list', then retry the commit.",
		},
	},
	{
		err: ErrFoldFailed,
		info: ErrorInfo{
			Message: "Fixes were staged but could not be merged into your unstaged changes.",
			Action:  "Inspect 'git diff' and 'git diff --cached' for the affected files.",
		},
	},
	{
		err: ErrTasksFailed,
		info: ErrorInfo{
			Message: "One or more commands failed. Check the output above for details.",
			Action:  "Fix the reported issues, stage the changes and commit again.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "A command exceeded its timeout.",
			Action:  "Increase 'timeout' in your lint-staged configuration.",
		},
	},
	{
		err: ErrVCSUnavailable,
		info: ErrorInfo{
			Message: "lint-staged must be run inside a git working copy.",
			Action:  "Run the command from within a git repository.",
		},
	},
	{
		err: ErrVCSQueryFailed,
		info: ErrorInfo{
			Message: "Could not read the list of staged files from git.",
			Action:  "Run 'git status' to check the repository state.",
		},
	},
	{
		err: ErrLockHeld,
		info: ErrorInfo{
			Message: "Another lint-staged process is running in this repository.",
			Action:  "Wait for it to finish before committing again.",
		},
	},
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "No lint-staged configuration was found.",
			Action:  "Add a .lintstagedrc file or a \"lint-staged\" key to package.json.",
		},
	},
	{
		err: ErrInvalidConfig,
		info: ErrorInfo{
			Message: "The lint-staged configuration is invalid.",
			Action:  "Run 'lint-staged config' to inspect the resolved configuration.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format specified.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "A git command failed.",
			Action:  "Run with --verbose for details.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
