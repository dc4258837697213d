// Package view keeps an in-memory list in step with a remote collection.
//
// Every mutation is followed by a full re-list; the cache is never patched
// incrementally and never updated optimistically. A View runs one operation
// at a time: a trigger that arrives while another is in flight is rejected
// with ErrBusy instead of issuing a duplicate request. After Close, results
// of calls still in flight are dropped.
package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/atinyakov/tasktracker/internal/client/collection"
)

var (
	// ErrBusy is returned when an operation is already in flight.
	ErrBusy = errors.New("another operation is in flight")
	// ErrClosed is returned by operations on, or resolving after, a closed view.
	ErrClosed = errors.New("view is closed")
	// ErrNotFound is returned when an identifier is not in the cached list.
	ErrNotFound = errors.New("record not in list")
	// ErrNotEditing is returned when no record is being edited.
	ErrNotEditing = errors.New("no record is being edited")
)

// Mutation is one write against a collection.
type Mutation[T collection.Record] func(ctx context.Context, c collection.Collection[T]) error

// View holds the cached list, the new-record draft and the editing draft
// for one collection.
type View[T collection.Record] struct {
	coll collection.Collection[T]
	log  *zap.Logger

	mu        sync.Mutex
	records   []T
	draft     T
	editing   T
	isEditing bool
	busy      bool
	closed    bool
}

// New returns a View over coll. Nothing is fetched until Mount.
func New[T collection.Record](coll collection.Collection[T], log *zap.Logger) *View[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &View[T]{coll: coll, log: log, records: []T{}}
}

// Mount issues the initial List and populates the cache.
func (v *View[T]) Mount(ctx context.Context) error {
	return v.Refresh(ctx)
}

// Refresh re-lists the collection.
func (v *View[T]) Refresh(ctx context.Context) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()
	return v.refresh(ctx)
}

// MutateThenRefresh runs m and then re-lists unconditionally, whatever m
// returned. The returned error joins both steps.
func (v *View[T]) MutateThenRefresh(ctx context.Context, m Mutation[T]) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()
	return v.mutateThenRefresh(ctx, m)
}

// Records returns a copy of the cached list.
func (v *View[T]) Records() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.records))
	copy(out, v.records)
	return out
}

// Find returns the cached record with the given identifier.
func (v *View[T]) Find(id int64) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.find(id)
}

// Draft returns the new-record draft.
func (v *View[T]) Draft() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

// SetDraft replaces the new-record draft.
func (v *View[T]) SetDraft(d T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = d
}

// Submit creates the draft and re-lists. The draft is reset only when both
// the create and the trailing refresh succeeded.
func (v *View[T]) Submit(ctx context.Context) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()

	draft := v.Draft()
	err := v.mutateThenRefresh(ctx, func(ctx context.Context, c collection.Collection[T]) error {
		return c.Create(ctx, draft)
	})
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	var zero T
	v.draft = zero
	return nil
}

// StartEditing copies the cached record with the given identifier into the
// editing draft.
func (v *View[T]) StartEditing(id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	rec, ok := v.find(id)
	if !ok {
		return ErrNotFound
	}
	v.editing = rec
	v.isEditing = true
	return nil
}

// Editing returns the editing draft and whether one is active.
func (v *View[T]) Editing() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing, v.isEditing
}

// SetEditing replaces the fields of the editing draft. The identifier of the
// record being edited cannot change.
func (v *View[T]) SetEditing(rec T) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.isEditing {
		return ErrNotEditing
	}
	if rec.RecordID() != v.editing.RecordID() {
		return collection.ErrInvalidDraft
	}
	v.editing = rec
	return nil
}

// CancelEditing drops the editing draft.
func (v *View[T]) CancelEditing() {
	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	v.editing = zero
	v.isEditing = false
}

// SaveEditing sends the editing draft wholesale, clears it once the update
// went through, then re-lists.
func (v *View[T]) SaveEditing(ctx context.Context) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()

	rec, ok := v.Editing()
	if !ok {
		return ErrNotEditing
	}
	var updated bool
	err := v.mutateThenRefresh(ctx, func(ctx context.Context, c collection.Collection[T]) error {
		if err := c.Update(ctx, rec); err != nil {
			return err
		}
		updated = true
		return nil
	})
	if updated {
		v.finishEditing()
	}
	return err
}

// finishEditing drops the editing draft unless the view was closed while
// the update was in flight.
func (v *View[T]) finishEditing() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	var zero T
	v.editing = zero
	v.isEditing = false
}

// Remove deletes the record with the given identifier and re-lists.
func (v *View[T]) Remove(ctx context.Context, id int64) error {
	return v.MutateThenRefresh(ctx, func(ctx context.Context, c collection.Collection[T]) error {
		return c.Delete(ctx, id)
	})
}

// Close unmounts the view. Later operations fail with ErrClosed and results
// of calls still in flight are discarded.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *View[T]) begin() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if v.busy {
		return ErrBusy
	}
	v.busy = true
	return nil
}

func (v *View[T]) end() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = false
}

func (v *View[T]) find(id int64) (T, bool) {
	for _, r := range v.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

func (v *View[T]) mutateThenRefresh(ctx context.Context, m Mutation[T]) error {
	mErr := m(ctx, v.coll)
	if mErr != nil {
		v.log.Debug("mutation failed, refreshing anyway",
			zap.String("resource", v.coll.Resource()),
			zap.Error(mErr),
		)
	}
	return multierr.Append(mErr, v.refresh(ctx))
}

// refresh replaces the cache with a fresh List. On error the previous cache
// is kept.
func (v *View[T]) refresh(ctx context.Context) error {
	items, err := v.coll.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	v.records = items
	return nil
}
