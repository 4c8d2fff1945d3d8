package pages

import (
	"context"

	"github.com/jonathan/jobsearch-console/internal/api"
	"github.com/jonathan/jobsearch-console/internal/editor"
	"github.com/jonathan/jobsearch-console/internal/types"
)

// Records is one editable profile sub-resource list. It shares the lock and
// teardown guard of its page.
type Records[T types.Record] struct {
	page  *base
	coll  *api.Collection[T]
	shape editor.Shape[T]
	res   Resource[[]T]
}

func newRecords[T types.Record](page *base, coll *api.Collection[T], shape editor.Shape[T]) *Records[T] {
	return &Records[T]{page: page, coll: coll, shape: shape}
}

// Kind returns the backend collection name.
func (r *Records[T]) Kind() types.RecordKind {
	return r.coll.Kind()
}

// Shape returns how records of this list are read and edited.
func (r *Records[T]) Shape() editor.Shape[T] {
	return r.shape
}

// Load fetches the list.
func (r *Records[T]) Load(ctx context.Context) {
	if !r.page.update(r.res.begin) {
		return
	}
	items, err := r.coll.List(ctx, r.page.deps.ProfileID)
	r.page.update(func() { r.res.finish(items, err) })
}

// Snapshot returns a copy of the list state.
func (r *Records[T]) Snapshot() Resource[[]T] {
	r.page.mu.Lock()
	defer r.page.mu.Unlock()
	return r.res
}

// Find returns the record with the given id.
func (r *Records[T]) Find(id int) (T, bool) {
	r.page.mu.Lock()
	defer r.page.mu.Unlock()
	for _, item := range r.res.Data {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Card returns an editor card for record whose operations keep this list in
// sync with the backend.
func (r *Records[T]) Card(record T) *editor.Card[T] {
	return editor.NewCard(record, r.shape, r.ops())
}

// New returns a card for an unsaved record, in edit mode.
func (r *Records[T]) New() *editor.Card[T] {
	var zero T
	return r.Card(zero)
}

func (r *Records[T]) ops() editor.Ops[T] {
	pid := r.page.deps.ProfileID
	return editor.Ops[T]{
		Create: func(ctx context.Context, record T) (T, error) {
			saved, err := r.coll.Create(ctx, pid, record)
			if err == nil {
				r.page.update(func() { r.res.Data = append(append([]T(nil), r.res.Data...), saved) })
			}
			return saved, err
		},
		Update: func(ctx context.Context, id int, record T) (T, error) {
			saved, err := r.coll.Update(ctx, pid, id, record)
			if err == nil {
				r.replace(saved)
			}
			return saved, err
		},
		Delete: func(ctx context.Context, id int) error {
			err := r.coll.Delete(ctx, pid, id)
			if err == nil {
				r.page.update(func() { r.res.Data = editor.Remove(r.res.Data, editor.RecordID[T], id) })
			}
			return err
		},
	}
}

// replace swaps in updated, leaving every other element untouched.
func (r *Records[T]) replace(updated T) {
	r.page.update(func() { r.res.Data = editor.Replace(r.res.Data, editor.RecordID[T], updated) })
}
