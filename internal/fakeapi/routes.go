package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/tasktracker/internal/client/wire"
	"github.com/atinyakov/tasktracker/internal/middleware"
	"github.com/atinyakov/tasktracker/internal/models"
)

// Handler returns the HTTP handler serving the collections.
//
// Routes:
//
//	GET    /v1/todos       list (wrapped fields)
//	POST   /v1/todos       create (flat body)
//	PUT    /v1/todos/{id}  replace (flat body)
//	DELETE /v1/todos/{id}  delete
//
// and the same four under /v1/users.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(s.log))
	r.Use(s.record)
	r.Use(s.injectFailure)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	todos := &resource[models.Todo, wire.TodoRequest]{
		store:  s.Todos,
		toItem: wire.TodoRequest.Todo,
		toList: func(items []models.Todo) any {
			out := wire.TodoList{Todos: make([]wire.TodoResponse, 0, len(items))}
			for _, t := range items {
				out.Todos = append(out.Todos, wire.WrapTodo(t))
			}
			return out
		},
		toWire: func(t models.Todo) any { return wire.WrapTodo(t) },
	}
	users := &resource[models.User, wire.UserRequest]{
		store:  s.Users,
		toItem: wire.UserRequest.User,
		toList: func(items []models.User) any {
			out := wire.UserList{Users: make([]wire.UserResponse, 0, len(items))}
			for _, u := range items {
				out.Users = append(out.Users, wire.WrapUser(u))
			}
			return out
		},
		toWire: func(u models.User) any { return wire.WrapUser(u) },
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/todos", todos.mount)
		r.Route("/users", users.mount)
	})
	return r
}
