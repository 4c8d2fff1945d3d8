// Package editor implements the inline editable card shared by every profile
// sub-resource. A card shows a read-only summary or an editable draft and
// delegates persistence to caller-supplied operations.
package editor

import (
	"context"
	"errors"

	"github.com/jonathan/jobsearch-console/internal/forms"
)

// ErrNotPersisted is returned when deleting a record that has no id yet.
var ErrNotPersisted = errors.New("record is not saved yet")

// Shape describes how to read a record type.
type Shape[T any] struct {
	// ID returns the persisted id, or false for a new record.
	ID      func(T) (int, bool)
	Title   func(T) string
	Summary func(T) string
	// Fields binds form fields to the draft.
	Fields func(draft *T) []forms.Field
}

// Ops persist records. Delete may be nil for read-only collections.
type Ops[T any] struct {
	Create func(ctx context.Context, record T) (T, error)
	Update func(ctx context.Context, id int, record T) (T, error)
	Delete func(ctx context.Context, id int) error
}

// Card is one record in view or edit mode.
type Card[T any] struct {
	shape Shape[T]
	ops   Ops[T]

	value   T
	draft   T
	editing bool
}

// NewCard creates a card. New records start in edit mode.
func NewCard[T any](value T, shape Shape[T], ops Ops[T]) *Card[T] {
	_, persisted := shape.ID(value)
	return &Card[T]{shape: shape, ops: ops, value: value, draft: value, editing: !persisted}
}

// Value returns the last saved record.
func (c *Card[T]) Value() T { return c.value }

// Draft returns the record being edited.
func (c *Card[T]) Draft() T { return c.draft }

// Editing reports whether the card shows the form.
func (c *Card[T]) Editing() bool { return c.editing }

// Persisted reports whether the saved record has an id.
func (c *Card[T]) Persisted() bool {
	_, ok := c.shape.ID(c.value)
	return ok
}

// Edit opens the form on a fresh copy of the saved record.
func (c *Card[T]) Edit() {
	c.draft = c.value
	c.editing = true
}

// Cancel discards the draft and returns to view mode.
func (c *Card[T]) Cancel() {
	c.draft = c.value
	c.editing = false
}

// Change applies fn to the draft.
func (c *Card[T]) Change(fn func(draft *T)) {
	fn(&c.draft)
}

// Fields returns form fields bound to the draft.
func (c *Card[T]) Fields() []forms.Field {
	if c.shape.Fields == nil {
		return nil
	}
	return c.shape.Fields(&c.draft)
}

// Form returns a form over the draft titled after the record.
func (c *Card[T]) Form() *forms.Form {
	return &forms.Form{Title: c.shape.Title(c.draft), Fields: c.Fields()}
}

// Save creates or updates the draft depending on id presence. On success the
// card leaves edit mode and holds the stored record; on failure the draft and
// edit mode are kept and the error is returned.
func (c *Card[T]) Save(ctx context.Context) (T, error) {
	var (
		saved T
		err   error
	)
	if id, ok := c.shape.ID(c.value); ok {
		saved, err = c.ops.Update(ctx, id, c.draft)
	} else {
		saved, err = c.ops.Create(ctx, c.draft)
	}
	if err != nil {
		return saved, err
	}

	c.value = saved
	c.draft = saved
	c.editing = false
	return saved, nil
}

// Delete removes the saved record. Records without an id are never sent.
func (c *Card[T]) Delete(ctx context.Context) error {
	id, ok := c.shape.ID(c.value)
	if !ok {
		return ErrNotPersisted
	}
	if c.ops.Delete == nil {
		return errors.New("record cannot be deleted")
	}
	return c.ops.Delete(ctx, id)
}

// View is the rendered state of a card.
type View struct {
	Title     string
	Summary   string
	Editing   bool
	CanDelete bool
}

// View returns what the card currently shows.
func (c *Card[T]) View() View {
	_, persisted := c.shape.ID(c.value)
	v := View{
		Title:     c.shape.Title(c.value),
		Editing:   c.editing,
		CanDelete: persisted && c.ops.Delete != nil,
	}
	if !c.editing {
		v.Summary = c.shape.Summary(c.value)
	}
	return v
}

// Replace returns a copy of list with the record whose id matches updated
// swapped in. Every other element is copied unchanged.
func Replace[T any](list []T, id func(T) (int, bool), updated T) []T {
	target, ok := id(updated)
	out := make([]T, len(list))
	copy(out, list)
	if !ok {
		return out
	}
	for i, item := range out {
		if cur, ok := id(item); ok && cur == target {
			out[i] = updated
		}
	}
	return out
}

// Remove returns a copy of list without the record with the given id.
func Remove[T any](list []T, id func(T) (int, bool), removed int) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if cur, ok := id(item); ok && cur == removed {
			continue
		}
		out = append(out, item)
	}
	return out
}
