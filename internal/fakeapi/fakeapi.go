// Package fakeapi is an in-memory stand-in for the remote todo/user
// collection service. It serves the wrapped list shape, accepts flat
// request bodies and assigns identifiers, so clients can be exercised end
// to end in tests. Failures can be injected per server.
package fakeapi

import (
	"net/http"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/atinyakov/tasktracker/internal/models"
)

// Call is one request the server received.
type Call struct {
	Method string
	Path   string
}

// Server holds the fake collections and the request journal.
type Server struct {
	Todos *Store[models.Todo]
	Users *Store[models.User]

	// failStatus, when non-zero, is returned for every request.
	failStatus atomic.Int32

	mu    sync.Mutex
	calls []Call

	log *zap.Logger
}

// New returns an empty Server.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Todos: newStore(func(t models.Todo, id int64) models.Todo { t.ID = id; return t }),
		Users: newStore(func(u models.User, id int64) models.User { u.ID = id; return u }),
		log:   log,
	}
}

// FailWith makes every following request fail with status. Zero restores
// normal service.
func (s *Server) FailWith(status int) {
	s.failStatus.Store(int32(status))
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// ResetCalls clears the request journal.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(s.failStatus.Load()); code != 0 {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}
