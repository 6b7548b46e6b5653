// Package ctxutil provides context helpers shared by the workflow phases.
package ctxutil

import "context"

// Canceled returns the context error once ctx is done, nil otherwise.
// Phases call it on entry so a canceled run does not start new git work.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// Detached returns a context that keeps ctx's values (logger, run id) but
// is never canceled. Restore phases run on it so an interrupt during
// command execution still puts the developer's work back.
func Detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
