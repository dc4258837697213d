// Package wire adapts between the remote collection representation and the
// flat client records.
//
// Every scalar on a list response arrives wrapped as {"value": T}; request
// bodies are flat. The two shapes are deliberately different types so the
// asymmetry cannot be papered over by a single struct.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/atinyakov/tasktracker/internal/models"
)

// Field is the {"value": T} wrapper used for every response scalar.
type Field[T any] struct {
	Value T `json:"value"`
}

// Wrap returns v wrapped in a Field.
func Wrap[T any](v T) Field[T] {
	return Field[T]{Value: v}
}

// Text is a response scalar read as a string whatever JSON type it arrives
// as. Strings are taken verbatim, null becomes "", other scalars keep their
// literal text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '{' || b[0] == '[':
		return fmt.Errorf("expected scalar, got %s", b)
	default:
		*t = Text(b)
	}
	return nil
}

// TodoResponse is one element of the todo list response.
type TodoResponse struct {
	ID     Field[*int64] `json:"id"`
	Title  Field[string] `json:"title"`
	Person Field[string] `json:"person"`
	Done   Field[bool]   `json:"done"`
}

// TodoList is the body of GET /v1/todos.
type TodoList struct {
	Todos []TodoResponse `json:"todos"`
}

// TodoRequest is the flat body of todo create and update calls.
// ID is omitted on create.
type TodoRequest struct {
	ID     *int64 `json:"id,omitempty"`
	Title  string `json:"title"`
	Person string `json:"person"`
	Done   bool   `json:"done"`
}

// UserResponse is one element of the user list response.
type UserResponse struct {
	ID          Field[*int64] `json:"id"`
	Name        Field[string] `json:"name"`
	Email       Field[string] `json:"email"`
	PhoneNumber Field[Text]   `json:"phone_number"`
}

// UserList is the body of GET /v1/users.
type UserList struct {
	Users []UserResponse `json:"users"`
}

// UserRequest is the flat body of user create and update calls. The phone
// field is spelled phoneNumber on requests and phone_number on responses.
type UserRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func idValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func idPointer(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// UnwrapTodo maps a wrapped response element to a flat record.
func UnwrapTodo(r TodoResponse) models.Todo {
	return models.Todo{
		ID:     idValue(r.ID.Value),
		Title:  r.Title.Value,
		Person: r.Person.Value,
		Done:   r.Done.Value,
	}
}

// WrapTodo maps a flat record to its wrapped response shape.
func WrapTodo(t models.Todo) TodoResponse {
	return TodoResponse{
		ID:     Wrap(idPointer(t.ID)),
		Title:  Wrap(t.Title),
		Person: Wrap(t.Person),
		Done:   Wrap(t.Done),
	}
}

// FlattenTodo maps a record to its request body. A zero ID is left out.
func FlattenTodo(t models.Todo) TodoRequest {
	return TodoRequest{
		ID:     idPointer(t.ID),
		Title:  t.Title,
		Person: t.Person,
		Done:   t.Done,
	}
}

// Todo maps a request body back to a record.
func (r TodoRequest) Todo() models.Todo {
	return models.Todo{ID: idValue(r.ID), Title: r.Title, Person: r.Person, Done: r.Done}
}

// UnwrapUser maps a wrapped response element to a flat record.
func UnwrapUser(r UserResponse) models.User {
	return models.User{
		ID:          idValue(r.ID.Value),
		Name:        r.Name.Value,
		Email:       r.Email.Value,
		PhoneNumber: string(r.PhoneNumber.Value),
	}
}

// WrapUser maps a flat record to its wrapped response shape.
func WrapUser(u models.User) UserResponse {
	return UserResponse{
		ID:          Wrap(idPointer(u.ID)),
		Name:        Wrap(u.Name),
		Email:       Wrap(u.Email),
		PhoneNumber: Wrap(Text(u.PhoneNumber)),
	}
}

// FlattenUser maps a record to its request body. A zero ID is left out.
func FlattenUser(u models.User) UserRequest {
	return UserRequest{
		ID:          idPointer(u.ID),
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}

// User maps a request body back to a record.
func (r UserRequest) User() models.User {
	return models.User{ID: idValue(r.ID), Name: r.Name, Email: r.Email, PhoneNumber: r.PhoneNumber}
}

// DecodeTodos validates and unwraps a todo list body.
func DecodeTodos(body []byte) ([]models.Todo, error) {
	if err := validate(todoListSchema, body); err != nil {
		return nil, err
	}
	var list TodoList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	todos := make([]models.Todo, 0, len(list.Todos))
	for _, r := range list.Todos {
		todos = append(todos, UnwrapTodo(r))
	}
	return todos, nil
}

// DecodeUsers validates and unwraps a user list body.
func DecodeUsers(body []byte) ([]models.User, error) {
	if err := validate(userListSchema, body); err != nil {
		return nil, err
	}
	var list UserList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	users := make([]models.User, 0, len(list.Users))
	for _, r := range list.Users {
		users = append(users, UnwrapUser(r))
	}
	return users, nil
}
