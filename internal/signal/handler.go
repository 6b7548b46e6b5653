// Package signal turns SIGINT and SIGTERM into context cancellation for a
// lint-staged run.
//
// The first signal cancels the command context so running commands stop.
// Later signals are swallowed while the handler is active: the restore
// phases run on a detached context and must not be cut short by a second
// Ctrl+C.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler manages graceful shutdown by listening for interrupt signals.
// It wraps a context and cancels it when SIGINT or SIGTERM is received.
type Handler struct {
	ctx         context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{} // signals listen() to exit cleanly
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal

	mu       sync.Mutex
	received os.Signal
}

// NewHandler creates a signal handler that listens for SIGINT and SIGTERM.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	outcome, err := orchestrator.Run(h.Context(), cfg)
//	if code, ok := h.ExitCode(); ok {
//	    os.Exit(code)
//	}
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 ensures signal.Notify doesn't drop signals if handler is busy.
		// See: https://pkg.go.dev/os/signal#Notify
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context.
// Use this context for all operations that should be interruptible.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when an interrupt signal is received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Received returns the first signal received, or nil.
func (h *Handler) Received() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// ExitCode returns the conventional shell exit code for the received
// signal (128 + signal number) and true, or false when no signal arrived.
func (h *Handler) ExitCode() (int, bool) {
	sig := h.Received()
	if sig == nil {
		return 0, false
	}
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s), true
	}
	return 130, true
}

// Stop cleans up the signal handler and stops listening for signals.
// Always call this when done to prevent resource leaks.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done) // Signal listen() to exit before closing sigChan
		h.cancel()
	})
}

// handleSignal records the first signal and cancels the context.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel()
		close(h.interrupted)
	})
}

// listen waits for the first signal. Afterwards signal.Notify stays
// registered until Stop, so further signals fill the buffered channel and
// are dropped instead of terminating the process.
func (h *Handler) listen() {
	select {
	case <-h.ctx.Done():
	case <-h.done:
	case sig := <-h.sigChan:
		h.handleSignal(sig)
	}
}
