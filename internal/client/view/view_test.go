package view

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/tasktracker/internal/client/collection"
	"github.com/atinyakov/tasktracker/internal/fakeapi"
	"github.com/atinyakov/tasktracker/internal/models"
)

func startFake(t *testing.T) (*fakeapi.Server, *httptest.Server) {
	t.Helper()
	api := fakeapi.New(nil)
	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)
	return api, ts
}

func newTodoView(t *testing.T, strict bool) (*TodoView, *fakeapi.Server) {
	t.Helper()
	api, ts := startFake(t)
	var c collection.Collection[models.Todo] = collection.NewTodos(ts.Client(), ts.URL, nil)
	if !strict {
		c = collection.NewFailSoft(c, nil)
	}
	return NewTodoView(c, nil), api
}

func calls(api *fakeapi.Server) []string {
	var out []string
	for _, c := range api.Calls() {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func TestMount_ListsOnce(t *testing.T) {
	v, api := newTodoView(t, true)
	api.Todos.Create(models.Todo{Title: "existing", Person: "kai"})

	require.NoError(t, v.Mount(context.Background()))
	assert.Equal(t, []string{"GET /v1/todos"}, calls(api))
	assert.Equal(t, []models.Todo{{ID: 1, Title: "existing", Person: "kai"}}, v.Records())
}

func TestSubmit_CreateThenList(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	require.NoError(t, v.Mount(ctx))
	api.ResetCalls()

	v.SetDraft(models.Todo{Title: "write docs", Person: "lee"})
	require.NoError(t, v.Submit(ctx))

	assert.Equal(t, []string{"POST /v1/todos", "GET /v1/todos"}, calls(api))
	recs := v.Records()
	require.Len(t, recs, 1)
	assert.NotZero(t, recs[0].ID, "identifier is assigned by the server")
	assert.Equal(t, "write docs", recs[0].Title)
	assert.Equal(t, "lee", recs[0].Person)
	assert.False(t, recs[0].Done)
	assert.Equal(t, models.Todo{}, v.Draft(), "draft resets after a successful submit")
}

func TestSubmit_FailedCreateKeepsDraftInStrictMode(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()

	v.SetDraft(models.Todo{Title: "keep me"})
	api.FailWith(http.StatusInternalServerError)
	err := v.Submit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, collection.ErrTransport)

	assert.Equal(t, []string{"POST /v1/todos", "GET /v1/todos"}, calls(api), "refresh runs even when the mutation fails")
	assert.Equal(t, "keep me", v.Draft().Title)
}

func TestSubmit_FailSoftAlwaysResets(t *testing.T) {
	v, api := newTodoView(t, false)
	ctx := context.Background()

	v.SetDraft(models.Todo{Title: "lost"})
	api.FailWith(http.StatusBadGateway)
	require.NoError(t, v.Submit(ctx))

	assert.Equal(t, models.Todo{}, v.Draft())
	assert.Empty(t, v.Records())
	assert.NotNil(t, v.Records())
}

func TestSaveEditing_WholesaleReplace(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "old title", Person: "old person", Done: true})
	require.NoError(t, v.Mount(ctx))

	require.NoError(t, v.StartEditing(1))
	editing, ok := v.Editing()
	require.True(t, ok)
	assert.Equal(t, "old title", editing.Title)

	require.NoError(t, v.SetEditing(models.Todo{ID: 1, Title: "new title", Person: "", Done: false}))
	api.ResetCalls()
	require.NoError(t, v.SaveEditing(ctx))

	assert.Equal(t, []string{"PUT /v1/todos/1", "GET /v1/todos"}, calls(api))
	assert.Equal(t, []models.Todo{{ID: 1, Title: "new title"}}, v.Records())
	_, ok = v.Editing()
	assert.False(t, ok, "editing draft is cleared after save")
}

func TestEditing_Errors(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "a"})
	require.NoError(t, v.Mount(ctx))

	assert.ErrorIs(t, v.StartEditing(42), ErrNotFound)
	assert.ErrorIs(t, v.SetEditing(models.Todo{ID: 1}), ErrNotEditing)
	assert.ErrorIs(t, v.SaveEditing(ctx), ErrNotEditing)

	require.NoError(t, v.StartEditing(1))
	assert.ErrorIs(t, v.SetEditing(models.Todo{ID: 2, Title: "moved"}), collection.ErrInvalidDraft)

	v.CancelEditing()
	_, ok := v.Editing()
	assert.False(t, ok)
}

func TestRemove_DeleteThenList(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "a"})
	api.Todos.Create(models.Todo{Title: "b"})
	require.NoError(t, v.Mount(ctx))

	require.NoError(t, v.Remove(ctx, 1))
	_, found := v.Find(1)
	assert.False(t, found)
	assert.Len(t, v.Records(), 1)
}

func TestToggle_TwiceRestores(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "flip", Person: "x"})
	require.NoError(t, v.Mount(ctx))

	require.NoError(t, v.Toggle(ctx, 1))
	rec, _ := v.Find(1)
	assert.True(t, rec.Done)

	require.NoError(t, v.Toggle(ctx, 1))
	rec, _ = v.Find(1)
	assert.False(t, rec.Done)
	assert.Equal(t, models.Todo{ID: 1, Title: "flip", Person: "x"}, rec)

	assert.ErrorIs(t, v.Toggle(ctx, 99), ErrNotFound)
}

func TestFailSoft_TransportFailureYieldsEmptyList(t *testing.T) {
	v, api := newTodoView(t, false)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "a"})
	require.NoError(t, v.Mount(ctx))
	require.Len(t, v.Records(), 1)

	api.FailWith(http.StatusServiceUnavailable)
	assert.NoError(t, v.Refresh(ctx))
	assert.Empty(t, v.Records())
	assert.NoError(t, v.Remove(ctx, 1))
	assert.ErrorIs(t, v.Toggle(ctx, 1), ErrNotFound, "the id is no longer in the cached list")
}

func TestStrict_RefreshFailureKeepsCache(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.Todos.Create(models.Todo{Title: "a"})
	require.NoError(t, v.Mount(ctx))

	api.FailWith(http.StatusServiceUnavailable)
	err := v.Refresh(ctx)
	var se *collection.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Len(t, v.Records(), 1)
}

func TestUserView(t *testing.T) {
	api, ts := startFake(t)
	v := NewUserView(collection.NewUsers(ts.Client(), ts.URL, nil), nil)
	ctx := context.Background()

	v.SetDraft(models.User{Name: "Aiko", Email: "aiko@example.com", PhoneNumber: "090-1234"})
	require.NoError(t, v.Submit(ctx))
	users := v.Records()
	require.Len(t, users, 1)
	assert.Equal(t, models.User{ID: 1, Name: "Aiko", Email: "aiko@example.com", PhoneNumber: "090-1234"}, users[0])

	require.NoError(t, v.StartEditing(1))
	require.NoError(t, v.SetEditing(models.User{ID: 1, Name: "Aiko S.", Email: "aiko@example.com"}))
	require.NoError(t, v.SaveEditing(ctx))
	assert.Equal(t, []models.User{{ID: 1, Name: "Aiko S.", Email: "aiko@example.com"}}, api.Users.List())
}

// blockingCollection parks List until released, and Update too when
// updateRelease is set.
type blockingCollection struct {
	entered chan struct{}
	release chan struct{}
	items   []models.Todo
	creates int

	updateEntered chan struct{}
	updateRelease chan struct{}
}

func newBlocking(items ...models.Todo) *blockingCollection {
	return &blockingCollection{entered: make(chan struct{}, 1), release: make(chan struct{}), items: items}
}

func (b *blockingCollection) Resource() string { return "todos" }

func (b *blockingCollection) List(ctx context.Context) ([]models.Todo, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.items, nil
}

func (b *blockingCollection) Create(context.Context, models.Todo) error {
	b.creates++
	return nil
}

func (b *blockingCollection) Update(context.Context, models.Todo) error {
	if b.updateRelease != nil {
		b.updateEntered <- struct{}{}
		<-b.updateRelease
	}
	return nil
}

func (b *blockingCollection) Delete(context.Context, int64) error { return nil }

func TestOverlappingTriggerIsRejected(t *testing.T) {
	coll := newBlocking(models.Todo{ID: 1, Title: "a"})
	v := NewTodoView(coll, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- v.Mount(ctx) }()
	<-coll.entered

	v.SetDraft(models.Todo{Title: "double click"})
	assert.ErrorIs(t, v.Submit(ctx), ErrBusy)
	assert.ErrorIs(t, v.Toggle(ctx, 1), ErrBusy)
	assert.Zero(t, coll.creates, "no duplicate request is issued")

	close(coll.release)
	require.NoError(t, <-done)
	assert.Len(t, v.Records(), 1)
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	coll := newBlocking(models.Todo{ID: 1, Title: "late"})
	v := NewTodoView(coll, nil)

	done := make(chan error, 1)
	go func() { done <- v.Mount(context.Background()) }()
	<-coll.entered

	v.Close()
	close(coll.release)

	err := <-done
	assert.True(t, errors.Is(err, ErrClosed))
	assert.Empty(t, v.Records(), "result arriving after Close is dropped")
	assert.ErrorIs(t, v.Refresh(context.Background()), ErrClosed)
}

func TestCloseKeepsEditingDraftOfLateUpdate(t *testing.T) {
	coll := newBlocking(models.Todo{ID: 1, Title: "before"})
	coll.updateEntered = make(chan struct{}, 1)
	coll.updateRelease = make(chan struct{})
	close(coll.release)
	v := NewTodoView(coll, nil)
	ctx := context.Background()

	require.NoError(t, v.Mount(ctx))
	<-coll.entered
	require.NoError(t, v.StartEditing(1))
	require.NoError(t, v.SetEditing(models.Todo{ID: 1, Title: "after"}))

	done := make(chan error, 1)
	go func() { done <- v.SaveEditing(ctx) }()
	<-coll.updateEntered

	v.Close()
	close(coll.updateRelease)

	assert.ErrorIs(t, <-done, ErrClosed)
	editing, ok := v.Editing()
	assert.True(t, ok, "update resolving after Close leaves the editing draft alone")
	assert.Equal(t, "after", editing.Title)
}

func TestMutateThenRefresh_JoinsErrors(t *testing.T) {
	v, api := newTodoView(t, true)
	ctx := context.Background()
	api.FailWith(http.StatusInternalServerError)

	mutErr := errors.New("mutation failed")
	err := v.MutateThenRefresh(ctx, func(context.Context, collection.Collection[models.Todo]) error {
		return mutErr
	})
	assert.ErrorIs(t, err, mutErr)
	assert.ErrorIs(t, err, collection.ErrTransport)
	assert.Equal(t, []string{"GET /v1/todos"}, calls(api))
}
