package pages

import (
	"context"
	"errors"

	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// SettingsSnapshot is the state of the settings page.
type SettingsSnapshot struct {
	Saved  settings.Settings
	Draft  settings.Settings
	Notice string
	Error  string
	// DevTask tracks the last dev maintenance chain.
	DevTask  TaskState
	DevError string
	TaskIDs  map[string]string
}

// SettingsPage edits the local preferences and runs dev maintenance calls.
type SettingsPage struct {
	base

	saved    settings.Settings
	draft    settings.Settings
	notice   string
	err      string
	devTask  TaskState
	devError string
	taskIDs  map[string]string
}

// NewSettingsPage creates the page showing the defaults until Load.
func NewSettingsPage(deps Deps) *SettingsPage {
	p := &SettingsPage{saved: settings.Defaults(), draft: settings.Defaults()}
	p.init(deps)
	return p
}

// Load reads the stored settings.
func (p *SettingsPage) Load(ctx context.Context) {
	s := p.deps.Settings.Load(ctx)
	p.update(func() {
		p.saved = s
		p.draft = s
	})
}

// Update applies fn to the draft.
func (p *SettingsPage) Update(fn func(s *settings.Settings)) {
	p.update(func() { fn(&p.draft) })
}

// Save stores the draft and returns the normalized value that was written.
func (p *SettingsPage) Save(ctx context.Context) (settings.Settings, error) {
	var draft settings.Settings
	if !p.update(func() {
		draft = p.draft
		p.notice = ""
		p.err = ""
	}) {
		return draft, ErrClosed
	}

	saved, err := p.deps.Settings.Save(ctx, draft)
	p.update(func() {
		if err != nil {
			p.err = ErrorText(err)
			return
		}
		p.saved = saved
		p.draft = saved
		p.notice = "Settings saved"
	})
	return saved, err
}

// RecomputeAll runs the dev backfill, embedding and recommendation chain and
// follows its last task. Failures only set a banner.
func (p *SettingsPage) RecomputeAll(ctx context.Context) error {
	var limit int
	if !p.update(func() {
		limit = p.saved.RecommendationsLimit
		p.devError = ""
		p.taskIDs = nil
	}) {
		return ErrClosed
	}

	resp, err := p.deps.API.RecomputeAll(ctx, p.deps.ProfileID, limit)
	if err != nil {
		p.update(func() { p.devError = ErrorText(err) })
		return err
	}

	final := resp.FinalTaskID()
	if resp != nil {
		p.update(func() { p.taskIDs = resp.TaskIDs })
	}
	if final == "" {
		err := errors.New("recompute-all returned no recommendation task")
		p.update(func() { p.devError = err.Error() })
		return err
	}
	return p.follow(ctx, final)
}

// Backfill normalizes the legacy profile text into sub-resources.
func (p *SettingsPage) Backfill(ctx context.Context) error {
	if !p.update(func() { p.devError = "" }) {
		return ErrClosed
	}

	ref, err := taskRef(p.deps.API.Backfill(ctx, p.deps.ProfileID))
	if err != nil {
		p.update(func() { p.devError = ErrorText(err) })
		return err
	}
	return p.follow(ctx, ref.TaskID)
}

func (p *SettingsPage) follow(ctx context.Context, taskID string) error {
	p.update(func() { p.devTask = TaskState{ID: taskID, Phase: tasks.PhasePending, State: types.TaskPending} })
	_, err := p.track(ctx, taskID, trackHandlers{
		onUpdate:  func(st tasks.Status) { p.devTask = taskState(st) },
		onSuccess: func(st tasks.Status) { p.devTask = taskState(st) },
		onFailure: func(st tasks.Status) { p.devTask = taskState(st) },
	}, nil)
	return err
}

// WaitTask blocks until the dev task is done.
func (p *SettingsPage) WaitTask(ctx context.Context) (tasks.Status, error) {
	return p.waitTask(ctx)
}

// Snapshot returns a copy of the page state.
func (p *SettingsPage) Snapshot() SettingsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make(map[string]string, len(p.taskIDs))
	for k, v := range p.taskIDs {
		ids[k] = v
	}
	return SettingsSnapshot{
		Saved:    p.saved,
		Draft:    p.draft,
		Notice:   p.notice,
		Error:    p.err,
		DevTask:  p.devTask,
		DevError: p.devError,
		TaskIDs:  ids,
	}
}
