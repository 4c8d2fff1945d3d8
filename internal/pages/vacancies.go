package pages

import (
	"context"

	"github.com/jonathan/jobsearch-console/internal/filter"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// VacanciesSnapshot is the state of the vacancies page.
type VacanciesSnapshot struct {
	Vacancies Resource[[]types.Vacancy]
	Query     string
	Visible   []types.Vacancy
	Import    TaskState
	// ImportError is a validation or start failure of the import form.
	ImportError string
	// Reloads counts vacancy list loads completed after an import.
	Reloads int
}

// VacanciesPage lists imported vacancies and runs hh.ru imports.
type VacanciesPage struct {
	base

	vacancies   Resource[[]types.Vacancy]
	query       string
	imp         TaskState
	importError string
	reloads     int
}

// NewVacanciesPage creates the page. Call Load to fetch data.
func NewVacanciesPage(deps Deps) *VacanciesPage {
	p := &VacanciesPage{}
	p.init(deps)
	return p
}

// Load fetches the vacancy list.
func (p *VacanciesPage) Load(ctx context.Context) {
	if !p.update(p.vacancies.begin) {
		return
	}

	items, err := p.deps.API.ListVacancies(ctx)
	p.update(func() {
		p.vacancies.finish(items, err)
	})
}

// SetQuery changes the search filter.
func (p *VacanciesPage) SetQuery(query string) {
	p.update(func() { p.query = query })
}

// Visible returns the vacancies matching the current query.
func (p *VacanciesPage) Visible() []types.Vacancy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return filter.Vacancies(p.vacancies.Data, p.query)
}

// StartImport validates req, enqueues the import and polls it. On success
// the vacancy list is reloaded once. Validation failures are returned as
// *ValidationError and never reach the backend.
func (p *VacanciesPage) StartImport(ctx context.Context, req types.HHImportRequest) error {
	if p.isClosed() {
		return ErrClosed
	}

	if err := req.Validate(); err != nil {
		verr := &ValidationError{Message: err.Error(), Cause: err}
		p.update(func() { p.importError = verr.Error() })
		return verr
	}

	p.update(func() {
		p.importError = ""
		p.imp = TaskState{Phase: tasks.PhasePending, State: types.TaskPending}
	})

	ref, err := taskRef(p.deps.API.StartHHImport(ctx, req))
	if err != nil {
		p.update(func() {
			p.importError = ErrorText(err)
			p.imp = TaskState{}
		})
		return err
	}

	p.update(func() {
		p.imp = TaskState{ID: ref.TaskID, Phase: tasks.PhasePending, State: types.TaskPending}
	})
	p.logf("[vacancies] import task %s started for %q", ref.TaskID, req.Text)

	_, err = p.track(ctx, ref.TaskID, trackHandlers{
		onUpdate: func(st tasks.Status) { p.imp = taskState(st) },
		onSuccess: func(st tasks.Status) {
			p.imp = taskState(st)
			p.imp.Message = "Import finished"
		},
		onFailure: func(st tasks.Status) { p.imp = taskState(st) },
	}, func(ctx context.Context) {
		p.Load(ctx)
		p.update(func() { p.reloads++ })
	})
	return err
}

// WaitTask blocks until the running import and its reload are done.
func (p *VacanciesPage) WaitTask(ctx context.Context) (tasks.Status, error) {
	return p.waitTask(ctx)
}

// Snapshot returns a copy of the page state.
func (p *VacanciesPage) Snapshot() VacanciesSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return VacanciesSnapshot{
		Vacancies:   p.vacancies,
		Query:       p.query,
		Visible:     filter.Vacancies(p.vacancies.Data, p.query),
		Import:      p.imp,
		ImportError: p.importError,
		Reloads:     p.reloads,
	}
}
