// Package readiness implements the single synchronization primitive every
// backend realisation (PortAudio callback, timer, Linux epoll) drives: a
// level-triggered gate that the period driver blocks on between periods.
package readiness

import (
	"context"
	"sync"
)

// Gate is a one-bit, test-and-clear readiness flag with a single waiting
// reader. SetPending is safe to call from any goroutine, including a
// realtime audio callback thread; it never blocks and never allocates once
// steady state is reached.
//
// Ordering guarantee: a SetPending that happens-before a Wait call is
// observed by that Wait even if Wait had not yet started waiting (the flag
// is tested before the select), so a readiness signal can never be missed
// between two periods.
type Gate struct {
	mu      sync.Mutex
	pending bool
	waker   chan struct{}
}

// NewGate returns a gate with no pending signal.
func NewGate() *Gate {
	return &Gate{}
}

// SetPending marks the gate ready and wakes a blocked Wait, if any.
func (g *Gate) SetPending() {
	g.mu.Lock()
	g.pending = true
	w := g.waker
	g.waker = nil
	g.mu.Unlock()
	if w != nil {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until SetPending has been called at least once since the last
// successful Wait, or until ctx is done. On success it clears the pending
// flag before returning.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	if g.pending {
		g.pending = false
		g.mu.Unlock()
		return nil
	}
	w := make(chan struct{}, 1)
	g.waker = w
	g.mu.Unlock()

	select {
	case <-w:
		g.mu.Lock()
		g.pending = false
		g.mu.Unlock()
		return nil
	case <-ctx.Done():
		g.mu.Lock()
		if g.waker == w {
			g.waker = nil
		}
		g.mu.Unlock()
		return ctx.Err()
	}
}
