package collection

import (
	"context"

	"go.uber.org/zap"
)

// FailSoft wraps a Collection so that no failure reaches the caller: a failed
// List yields an empty slice and a failed mutation is a silent no-op. Every
// swallowed error is logged.
//
// Callers cannot tell an empty collection from an unreachable one.
type FailSoft[T Record] struct {
	next Collection[T]
	log  *zap.Logger
}

// NewFailSoft wraps next.
func NewFailSoft[T Record](next Collection[T], log *zap.Logger) *FailSoft[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &FailSoft[T]{next: next, log: log}
}

// Resource returns the wrapped collection name.
func (f *FailSoft[T]) Resource() string { return f.next.Resource() }

// List never fails; it returns an empty, non-nil slice instead.
func (f *FailSoft[T]) List(ctx context.Context) ([]T, error) {
	items, err := f.next.List(ctx)
	if err != nil {
		f.swallow("list", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create never fails.
func (f *FailSoft[T]) Create(ctx context.Context, draft T) error {
	if err := f.next.Create(ctx, draft); err != nil {
		f.swallow("create", err)
	}
	return nil
}

// Update never fails.
func (f *FailSoft[T]) Update(ctx context.Context, record T) error {
	if err := f.next.Update(ctx, record); err != nil {
		f.swallow("update", err)
	}
	return nil
}

// Delete never fails.
func (f *FailSoft[T]) Delete(ctx context.Context, id int64) error {
	if err := f.next.Delete(ctx, id); err != nil {
		f.swallow("delete", err)
	}
	return nil
}

func (f *FailSoft[T]) swallow(op string, err error) {
	f.log.Error("collection call failed",
		zap.String("resource", f.next.Resource()),
		zap.String("op", op),
		zap.Error(err),
	)
}
