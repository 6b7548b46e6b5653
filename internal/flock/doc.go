// Package flock provides the advisory lock that serializes lint-staged runs
// on one working copy.
//
// The lock is an exclusive, non-blocking file lock that works on both Unix
// and Windows. A second invocation fails fast instead of waiting:
//
//	lock, err := flock.Acquire(filepath.Join(gitDir, constants.LockFileName))
//	if err != nil {
//	    // errors.Is(err, lserrors.ErrLockHeld) when another run holds it
//	}
//	defer lock.Release()
package flock
