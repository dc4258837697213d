package collection

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/tasktracker/internal/client/wire"
	"github.com/atinyakov/tasktracker/internal/models"
)

// Resource names.
const (
	TodosResource = "todos"
	UsersResource = "users"
)

// TodoCodec maps todos to and from the wire.
var TodoCodec = Codec[models.Todo]{
	Resource: TodosResource,
	Decode:   wire.DecodeTodos,
	Encode:   func(t models.Todo) any { return wire.FlattenTodo(t) },
	Check: func(t models.Todo) error {
		if strings.TrimSpace(t.Title) == "" {
			return errors.New("title must not be empty")
		}
		return nil
	},
}

// UserCodec maps users to and from the wire.
var UserCodec = Codec[models.User]{
	Resource: UsersResource,
	Decode:   wire.DecodeUsers,
	Encode:   func(u models.User) any { return wire.FlattenUser(u) },
}

// NewTodos returns a Client for the todo collection.
func NewTodos(httpClient *http.Client, baseURL string, log *zap.Logger) *Client[models.Todo] {
	return New(httpClient, baseURL, TodoCodec, log)
}

// NewUsers returns a Client for the user collection.
func NewUsers(httpClient *http.Client, baseURL string, log *zap.Logger) *Client[models.User] {
	return New(httpClient, baseURL, UserCodec, log)
}

var (
	_ Collection[models.Todo] = (*Client[models.Todo])(nil)
	_ Collection[models.User] = (*Client[models.User])(nil)
	_ Collection[models.Todo] = (*FailSoft[models.Todo])(nil)
)
