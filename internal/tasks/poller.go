// Package tasks tracks backend background tasks by polling their status
// endpoint until they succeed or fail.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/jobsearch-console/internal/api"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// GenericFailureMessage is reported when a failed task carries no error text.
const GenericFailureMessage = "Task failed"

// Fetcher returns the current status of a task.
type Fetcher interface {
	GetTask(ctx context.Context, taskID string) (*types.TaskStatus, error)
}

// Phase is the client-side state of a tracked task.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "PENDING"
	case PhaseSuccess:
		return "SUCCESS"
	case PhaseFailure:
		return "FAILURE"
	default:
		return "IDLE"
	}
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseFailure
}

// Status is the last observed state of a task.
type Status struct {
	TaskID   string
	Phase    Phase
	State    string          // raw backend state, adopted verbatim
	Result   json.RawMessage // set on success
	Err      error           // set on failure
	Attempts int             // status requests issued so far
}

// FailureError is an application-level task failure or a polling failure
// that ended tracking.
type FailureError struct {
	TaskID  string
	Message string
	Cause   error
}

func (e *FailureError) Error() string {
	return e.Message
}

func (e *FailureError) Unwrap() error {
	return e.Cause
}

// Policy controls polling cadence and the bounded retry of transient failures.
type Policy struct {
	Interval   time.Duration // delay between status requests
	RetryLimit int           // consecutive transient failures tolerated; 0 fails on the first one
	MaxBackoff time.Duration // cap for the retry delay
	MaxWait    time.Duration // total time before giving up; 0 waits until stopped
}

// DefaultPolicy returns the standard polling policy.
func DefaultPolicy() Policy {
	return Policy{
		Interval:   2 * time.Second,
		RetryLimit: 3,
		MaxBackoff: 30 * time.Second,
		MaxWait:    30 * time.Minute,
	}
}

// backoff returns the delay before retry number n (1-based).
func (p Policy) backoff(n int) time.Duration {
	delay := p.Interval
	for i := 0; i < n; i++ {
		delay *= 2
		if p.MaxBackoff > 0 && delay >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	return delay
}

// Observer receives task transitions. Every field is optional.
// Exactly one of OnSuccess and OnFailure is called per handle unless the
// handle is stopped first.
type Observer struct {
	OnUpdate  func(Status)
	OnSuccess func(Status)
	OnFailure func(Status)
}

// Poller starts polling loops against a Fetcher.
type Poller struct {
	fetcher Fetcher
	policy  Policy
	logger  *log.Logger
}

// NewPoller creates a poller. A zero interval falls back to the default.
func NewPoller(fetcher Fetcher, policy Policy, logger *log.Logger) *Poller {
	if policy.Interval <= 0 {
		policy.Interval = DefaultPolicy().Interval
	}
	return &Poller{fetcher: fetcher, policy: policy, logger: logger}
}

// Policy returns the active polling policy.
func (p *Poller) Policy() Policy {
	return p.policy
}

// Start begins polling taskID in the background.
func (p *Poller) Start(ctx context.Context, taskID string, obs Observer) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
		status: Status{TaskID: taskID, Phase: PhasePending, State: types.TaskPending},
	}
	go h.run(ctx, p, obs)
	return h
}

func (p *Poller) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// Handle controls one polling loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	// cb is held while an observer callback runs.
	cb sync.Mutex

	mu      sync.Mutex
	status  Status
	stopped bool
}

// TaskID returns the tracked task id.
func (h *Handle) TaskID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status.TaskID
}

// Status returns the last observed status.
func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Stop ends polling and waits for a callback that is already running. No
// request is issued and no callback starts after Stop returns. It is safe to
// call more than once, but not from inside an Observer callback.
func (h *Handle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	h.cancel()

	h.cb.Lock()
	h.cb.Unlock() //nolint:staticcheck // waits out an in-flight callback
}

// Stopped reports whether Stop was called.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Done is closed when the polling loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the loop exits or ctx is done and returns the last status.
// A failed task is returned as *FailureError.
func (h *Handle) Wait(ctx context.Context) (Status, error) {
	select {
	case <-h.done:
	case <-ctx.Done():
		return h.Status(), ctx.Err()
	}

	st := h.Status()
	if st.Phase == PhaseFailure {
		return st, st.Err
	}
	if !st.Phase.Terminal() {
		return st, context.Canceled
	}
	return st, nil
}

// transition records st and reports whether the caller may notify observers.
func (h *Handle) transition(st Status) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || h.status.Phase.Terminal() {
		return false
	}
	h.status = st
	return true
}

// notify records st and calls fn with the callback gate held, so Stop cannot
// return between the check and the call.
func (h *Handle) notify(fn func(Status), st Status) {
	h.cb.Lock()
	defer h.cb.Unlock()
	if h.transition(st) && fn != nil {
		fn(st)
	}
}

func (h *Handle) run(ctx context.Context, p *Poller, obs Observer) {
	defer close(h.done)
	defer h.cancel()

	taskID := h.Status().TaskID
	policy := p.policy

	var deadline <-chan time.Time
	if policy.MaxWait > 0 {
		timer := time.NewTimer(policy.MaxWait)
		defer timer.Stop()
		deadline = timer.C
	}

	delay := policy.Interval
	failures := 0
	attempts := 0

	for {
		wait := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			wait.Stop()
			return
		case <-deadline:
			wait.Stop()
			h.fail(obs, taskID, attempts, "", fmt.Sprintf("task %s did not finish within %v", taskID, policy.MaxWait), context.DeadlineExceeded)
			return
		case <-wait.C:
		}

		attempts++
		remote, err := p.fetcher.GetTask(ctx, taskID)
		if ctx.Err() != nil {
			return
		}

		if err == nil && remote == nil {
			err = fmt.Errorf("empty status response for task %s", taskID)
		}

		if err != nil {
			if retryable(err) && failures < policy.RetryLimit {
				failures++
				delay = policy.backoff(failures)
				p.logf("[poller] task %s: status request failed (%d/%d), retrying in %v: %v", taskID, failures, policy.RetryLimit, delay, err)
				continue
			}
			p.logf("[poller] task %s: giving up: %v", taskID, err)
			h.fail(obs, taskID, attempts, "", err.Error(), err)
			return
		}

		failures = 0
		delay = policy.Interval

		switch remote.State {
		case types.TaskSuccess:
			h.notify(obs.OnSuccess, Status{TaskID: taskID, Phase: PhaseSuccess, State: remote.State, Result: remote.Result, Attempts: attempts})
			return
		case types.TaskFailure:
			msg := GenericFailureMessage
			if remote.Error != nil && *remote.Error != "" {
				msg = *remote.Error
			}
			h.fail(obs, taskID, attempts, remote.State, msg, nil)
			return
		default:
			h.notify(obs.OnUpdate, Status{TaskID: taskID, Phase: PhasePending, State: remote.State, Attempts: attempts})
		}
	}
}

func (h *Handle) fail(obs Observer, taskID string, attempts int, state, msg string, cause error) {
	if state == "" {
		state = types.TaskFailure
	}
	h.notify(obs.OnFailure, Status{
		TaskID:   taskID,
		Phase:    PhaseFailure,
		State:    state,
		Err:      &FailureError{TaskID: taskID, Message: msg, Cause: cause},
		Attempts: attempts,
	})
}

// retryable reports whether a status request failure may be transient.
// Backend errors are retried only for 5xx and 429; everything that never
// reached a response (network errors) is retried.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}

	return true
}
