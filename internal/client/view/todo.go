package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/tasktracker/internal/client/collection"
	"github.com/atinyakov/tasktracker/internal/models"
)

// TodoView is a View over the todo collection with a completion toggle.
type TodoView struct {
	*View[models.Todo]
}

// NewTodoView returns a TodoView over coll.
func NewTodoView(coll collection.Collection[models.Todo], log *zap.Logger) *TodoView {
	return &TodoView{View: New(coll, log)}
}

// Toggle sends the cached record with its completion flag inverted, then
// re-lists.
func (v *TodoView) Toggle(ctx context.Context, id int64) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()

	rec, ok := v.Find(id)
	if !ok {
		return ErrNotFound
	}
	rec.Done = !rec.Done
	return v.mutateThenRefresh(ctx, func(ctx context.Context, c collection.Collection[models.Todo]) error {
		return c.Update(ctx, rec)
	})
}

// UserView is a View over the user collection.
type UserView = View[models.User]

// NewUserView returns a UserView over coll.
func NewUserView(coll collection.Collection[models.User], log *zap.Logger) *UserView {
	return New(coll, log)
}
