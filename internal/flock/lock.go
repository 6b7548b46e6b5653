package flock

import (
	"fmt"
	"os"
	"path/filepath"

	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// Lock is a held advisory lock on a file.
type Lock struct {
	file *os.File
}

// Acquire creates path if needed and locks it exclusively without blocking.
// Returns ErrLockHeld when another process holds the lock.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- path is inside the git directory
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", lserrors.ErrLockHeld, path)
	}

	// Record the holder for whoever inspects a stuck lock.
	if err := f.Truncate(0); err == nil {
		_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	}

	return &Lock{file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.file.Name()
}

// Release unlocks and closes the lock file. The file itself is left in
// place; removing it would race with a process about to lock it.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	name := l.file.Name()
	unlockErr := Unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return fmt.Errorf("failed to unlock %s: %w", name, unlockErr)
	}
	return closeErr
}
