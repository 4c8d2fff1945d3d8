package pages

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// Document kinds that can be generated for a vacancy.
const (
	DocumentResume      = "resume"
	DocumentCoverLetter = "cover-letter"
)

// DetailsSnapshot is the state of the vacancy details page.
type DetailsSnapshot struct {
	VacancyID  int
	Vacancy    Resource[*types.Vacancy]
	Tailoring  Resource[*types.Tailoring]
	View       TailoringView
	Refreshing bool
	Generate   TaskState
	Document   Resource[*types.DocumentByTask]
	// GenerateError is a failure to enqueue generation.
	GenerateError string
}

// VacancyDetailsPage shows one vacancy with its match explanation.
type VacancyDetailsPage struct {
	base

	vacancyID     int
	vacancy       Resource[*types.Vacancy]
	tailoring     Resource[*types.Tailoring]
	refreshing    bool
	generate      TaskState
	document      Resource[*types.DocumentByTask]
	generateError string
}

// NewVacancyDetailsPage creates the page.
func NewVacancyDetailsPage(deps Deps) *VacancyDetailsPage {
	p := &VacancyDetailsPage{}
	p.init(deps)
	return p
}

// Load fetches the vacancy and its tailoring in parallel. Each failure is
// recorded on its own resource; one never hides the other.
func (p *VacancyDetailsPage) Load(ctx context.Context, vacancyID int) {
	if !p.update(func() {
		p.vacancyID = vacancyID
		p.vacancy.begin()
		p.tailoring.begin()
	}) {
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		v, err := p.deps.API.GetVacancy(ctx, vacancyID)
		p.update(func() { p.vacancy.finish(v, err) })
		return nil
	})
	g.Go(func() error {
		t, err := p.deps.API.GetTailoring(ctx, p.deps.ProfileID, vacancyID)
		p.update(func() { p.setTailoring(t, err) })
		return nil
	})
	_ = g.Wait()
}

func (p *VacancyDetailsPage) setTailoring(t *types.Tailoring, err error) {
	if err != nil {
		p.tailoring.finish(nil, err)
		p.tailoring.Data = nil
		return
	}
	p.tailoring.finish(t, nil)
}

// RefreshTailoring reloads only the match explanation.
func (p *VacancyDetailsPage) RefreshTailoring(ctx context.Context) {
	var vacancyID int
	if !p.update(func() {
		vacancyID = p.vacancyID
		p.refreshing = true
		p.tailoring.begin()
	}) {
		return
	}

	t, err := p.deps.API.GetTailoring(ctx, p.deps.ProfileID, vacancyID)
	p.update(func() {
		p.setTailoring(t, err)
		p.refreshing = false
	})
}

// GenerateDocument enqueues a resume or cover letter draft for the vacancy
// and fetches the produced document once the task succeeds.
func (p *VacancyDetailsPage) GenerateDocument(ctx context.Context, kind string) error {
	var vacancyID int
	if !p.update(func() {
		vacancyID = p.vacancyID
		p.generateError = ""
		p.generate = TaskState{Phase: tasks.PhasePending, State: types.TaskPending}
		p.document = Resource[*types.DocumentByTask]{}
	}) {
		return ErrClosed
	}

	var (
		ref *types.TaskRef
		err error
	)
	switch kind {
	case DocumentResume:
		ref, err = p.deps.API.GenerateResumeDraft(ctx, p.deps.ProfileID, vacancyID)
	case DocumentCoverLetter:
		ref, err = p.deps.API.GenerateCoverLetterDraft(ctx, p.deps.ProfileID, vacancyID)
	default:
		err = &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown document kind %q", kind)}
	}
	ref, err = taskRef(ref, err)
	if err != nil {
		p.update(func() {
			p.generateError = ErrorText(err)
			p.generate = TaskState{}
		})
		return err
	}

	taskID := ref.TaskID
	_, err = p.track(ctx, taskID, trackHandlers{
		onUpdate:  func(st tasks.Status) { p.generate = taskState(st) },
		onSuccess: func(st tasks.Status) { p.generate = taskState(st) },
		onFailure: func(st tasks.Status) { p.generate = taskState(st) },
	}, func(ctx context.Context) {
		if !p.update(p.document.begin) {
			return
		}
		doc, err := p.deps.API.DocumentByTask(ctx, p.deps.ProfileID, taskID)
		p.update(func() { p.document.finish(doc, err) })
	})
	return err
}

// WaitTask blocks until generation and the document fetch are done.
func (p *VacancyDetailsPage) WaitTask(ctx context.Context) (tasks.Status, error) {
	return p.waitTask(ctx)
}

// Snapshot returns a copy of the page state.
func (p *VacancyDetailsPage) Snapshot() DetailsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return DetailsSnapshot{
		VacancyID:     p.vacancyID,
		Vacancy:       p.vacancy,
		Tailoring:     p.tailoring,
		View:          NewTailoringView(p.tailoring.Data),
		Refreshing:    p.refreshing,
		Generate:      p.generate,
		Document:      p.document,
		GenerateError: p.generateError,
	}
}
