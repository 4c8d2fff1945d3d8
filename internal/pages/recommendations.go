package pages

import (
	"context"

	"github.com/jonathan/jobsearch-console/internal/filter"
	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// RecommendationsSnapshot is the state of the recommendations page.
type RecommendationsSnapshot struct {
	Items    Resource[[]types.Recommendation]
	Visible  []types.Recommendation
	Settings settings.Settings
	// HideReject is the local toggle; rejects are hidden only when the
	// persisted setting is also on.
	HideReject bool
	HideWeak   bool
	Recompute  TaskState
	// RecomputeError is a failure to enqueue the recompute.
	RecomputeError string
}

// RecommendationsPage shows the ranked vacancies of the profile.
type RecommendationsPage struct {
	base

	items          Resource[[]types.Recommendation]
	prefs          settings.Settings
	hideReject     bool
	hideWeak       bool
	recompute      TaskState
	recomputeError string
}

// NewRecommendationsPage creates the page with the settings defaults.
func NewRecommendationsPage(deps Deps) *RecommendationsPage {
	p := &RecommendationsPage{prefs: settings.Defaults(), hideReject: true}
	p.init(deps)
	return p
}

// Load reads the settings and fetches the recommendations up to the
// configured limit.
func (p *RecommendationsPage) Load(ctx context.Context) {
	prefs := settings.Defaults()
	if p.deps.Settings != nil {
		prefs = p.deps.Settings.Load(ctx)
	}

	if !p.update(func() {
		p.prefs = prefs
		p.items.begin()
	}) {
		return
	}

	resp, err := p.deps.API.GetRecommendations(ctx, p.deps.ProfileID, prefs.RecommendationsLimit)
	var items []types.Recommendation
	if resp != nil {
		items = resp.Items
	}
	p.update(func() {
		p.items.finish(items, err)
	})
}

// Recompute enqueues a recommendation rebuild and reloads once it succeeds.
func (p *RecommendationsPage) Recompute(ctx context.Context) error {
	if p.isClosed() {
		return ErrClosed
	}

	var limit int
	p.update(func() {
		limit = p.prefs.RecommendationsLimit
		p.recomputeError = ""
		p.recompute = TaskState{Phase: tasks.PhasePending, State: types.TaskPending}
	})

	ref, err := taskRef(p.deps.API.RecomputeRecommendations(ctx, p.deps.ProfileID, limit))
	if err != nil {
		p.update(func() {
			p.recomputeError = ErrorText(err)
			p.recompute = TaskState{}
		})
		return err
	}
	p.logf("[recommendations] recompute task %s started", ref.TaskID)

	_, err = p.track(ctx, ref.TaskID, trackHandlers{
		onUpdate: func(st tasks.Status) { p.recompute = taskState(st) },
		onSuccess: func(st tasks.Status) {
			p.recompute = taskState(st)
			p.recompute.Message = "Recommendations updated"
		},
		onFailure: func(st tasks.Status) { p.recompute = taskState(st) },
	}, p.Load)
	return err
}

// WaitTask blocks until the running recompute and its reload are done.
func (p *RecommendationsPage) WaitTask(ctx context.Context) (tasks.Status, error) {
	return p.waitTask(ctx)
}

// SetHideReject sets the local reject toggle.
func (p *RecommendationsPage) SetHideReject(hide bool) {
	p.update(func() { p.hideReject = hide })
}

// SetHideWeak sets the local weak-verdict toggle.
func (p *RecommendationsPage) SetHideWeak(hide bool) {
	p.update(func() { p.hideWeak = hide })
}

func (p *RecommendationsPage) criteria() filter.Criteria {
	return filter.Criteria{
		HideReject: p.prefs.HideReject && p.hideReject,
		HideWeak:   p.hideWeak,
	}
}

// Visible returns the recommendations left after verdict filtering.
func (p *RecommendationsPage) Visible() []types.Recommendation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return filter.Recommendations(p.items.Data, p.criteria())
}

// Snapshot returns a copy of the page state.
func (p *RecommendationsPage) Snapshot() RecommendationsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return RecommendationsSnapshot{
		Items:          p.items,
		Visible:        filter.Recommendations(p.items.Data, p.criteria()),
		Settings:       p.prefs,
		HideReject:     p.hideReject,
		HideWeak:       p.hideWeak,
		Recompute:      p.recompute,
		RecomputeError: p.recomputeError,
	}
}
