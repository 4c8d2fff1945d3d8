// Package pages holds the page controllers of the console. A page owns its
// state, orchestrates loading and submission against the backend, and drives
// background task polling. Pages never return load failures to the caller;
// they record them as banners in their snapshot.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/jobsearch-console/internal/api"
	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// Deps are the collaborators shared by every page.
type Deps struct {
	API      *api.Endpoints
	Settings *settings.Service
	Poller   *tasks.Poller
	Logger   *log.Logger

	// ProfileID selects the profile; zero means the backend default.
	ProfileID int
}

// ErrNoTaskID is returned when the backend accepted work without naming a task.
var ErrNoTaskID = errors.New("backend returned no task id")

// taskRef passes an enqueue response through, turning an empty one into
// ErrNoTaskID.
func taskRef(ref *types.TaskRef, err error) (*types.TaskRef, error) {
	if err != nil {
		return nil, err
	}
	if ref == nil || ref.TaskID == "" {
		return nil, ErrNoTaskID
	}
	return ref, nil
}

// ErrClosed is returned by actions on a page that was closed.
var ErrClosed = errors.New("page is closed")

// ValidationError is a local input problem; nothing was sent to the backend.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Resource is one independently loaded piece of page data.
type Resource[T any] struct {
	Loading bool
	Loaded  bool
	Data    T
	Error   string
}

// Empty reports a finished load without error whose data is empty per isEmpty.
func (r Resource[T]) Empty(isEmpty func(T) bool) bool {
	return r.Loaded && r.Error == "" && isEmpty(r.Data)
}

func (r *Resource[T]) begin() {
	r.Loading = true
	r.Error = ""
}

func (r *Resource[T]) finish(data T, err error) {
	r.Loading = false
	r.Loaded = true
	if err != nil {
		r.Error = ErrorText(err)
		return
	}
	r.Data = data
}

// TaskState mirrors the last observed state of a tracked task.
type TaskState struct {
	ID      string
	Phase   tasks.Phase
	State   string
	Message string
	Error   string
}

// Running reports whether the task is being polled.
func (t TaskState) Running() bool {
	return t.Phase == tasks.PhasePending
}

func taskState(st tasks.Status) TaskState {
	ts := TaskState{ID: st.TaskID, Phase: st.Phase, State: st.State}
	if st.Err != nil {
		ts.Error = ErrorText(st.Err)
	}
	return ts
}

// ErrorText renders an error for a banner.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// base carries the teardown guard and task tracking shared by pages.
type base struct {
	deps Deps

	mu      sync.Mutex
	closed  bool
	taskGen int

	tracker *tasks.Tracker
}

func (b *base) init(deps Deps) {
	b.deps = deps
	if deps.Poller != nil {
		b.tracker = tasks.NewTracker(deps.Poller)
	}
}

// update runs fn under the page lock unless the page is closed.
func (b *base) update(fn func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	fn()
	return true
}

// isClosed reports whether Close was called.
func (b *base) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close stops any polling and suppresses every later state write.
func (b *base) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	if b.tracker != nil {
		b.tracker.Close()
	}
}

// trackHandlers are the page callbacks of a tracked task. They only run for
// the latest task of an open page.
type trackHandlers struct {
	onUpdate  func(tasks.Status)
	onSuccess func(tasks.Status)
	onFailure func(tasks.Status)
}

// track starts polling taskID, replacing any task this page was tracking.
// Handlers run under the page lock; after runs without it once a successful
// task was recorded, for follow-up loads.
func (b *base) track(ctx context.Context, taskID string, h trackHandlers, after func(context.Context)) (*tasks.Handle, error) {
	if b.tracker == nil {
		return nil, errors.New("task polling is not configured")
	}

	var gen int
	if !b.update(func() {
		b.taskGen++
		gen = b.taskGen
	}) {
		return nil, ErrClosed
	}

	guarded := func(fn func(tasks.Status)) func(tasks.Status) {
		return func(st tasks.Status) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.closed || gen != b.taskGen || fn == nil {
				return
			}
			fn(st)
		}
	}

	obs := tasks.Observer{
		OnUpdate:  guarded(h.onUpdate),
		OnFailure: guarded(h.onFailure),
		OnSuccess: func(st tasks.Status) {
			applied := false
			guarded(func(st tasks.Status) {
				if h.onSuccess != nil {
					h.onSuccess(st)
				}
				applied = true
			})(st)
			if applied && after != nil {
				after(ctx)
			}
		},
	}

	return b.tracker.Track(ctx, taskID, obs)
}

// waitTask blocks until the current task and its follow-up load finish.
func (b *base) waitTask(ctx context.Context) (tasks.Status, error) {
	if b.tracker == nil {
		return tasks.Status{}, errors.New("task polling is not configured")
	}
	h := b.tracker.Current()
	if h == nil {
		return tasks.Status{}, errors.New("no task is running")
	}
	return h.Wait(ctx)
}

func (b *base) logf(format string, args ...any) {
	if b.deps.Logger != nil {
		b.deps.Logger.Printf(format, args...)
	}
}
