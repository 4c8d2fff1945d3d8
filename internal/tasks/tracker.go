package tasks

import (
	"context"
	"errors"
	"sync"
)

// ErrTrackerClosed is returned by Track after Close.
var ErrTrackerClosed = errors.New("task tracker is closed")

// Tracker keeps at most one live polling loop. Starting a new one fully stops
// the previous one first.
type Tracker struct {
	poller *Poller

	trackMu sync.Mutex // serializes Track

	mu      sync.Mutex
	current *Handle
	closed  bool
}

// NewTracker creates a tracker over poller.
func NewTracker(poller *Poller) *Tracker {
	return &Tracker{poller: poller}
}

// Track stops the current loop, waits for it to exit and starts polling taskID.
// Track must not be called from inside an Observer callback.
func (t *Tracker) Track(ctx context.Context, taskID string, obs Observer) (*Handle, error) {
	t.trackMu.Lock()
	defer t.trackMu.Unlock()

	t.mu.Lock()
	prev := t.current
	t.current = nil
	t.mu.Unlock()

	if prev != nil {
		prev.Stop()
		<-prev.Done()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrTrackerClosed
	}
	t.current = t.poller.Start(ctx, taskID, obs)
	return t.current, nil
}

// Current returns the live handle, or nil.
func (t *Tracker) Current() *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// IsCurrent reports whether h is the most recently tracked handle.
func (t *Tracker) IsCurrent(h *Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return h != nil && t.current == h
}

// Stop stops the current loop without closing the tracker.
func (t *Tracker) Stop() {
	t.mu.Lock()
	h := t.current
	t.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

// Close stops the current loop and rejects further tracking.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	h := t.current
	t.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}
