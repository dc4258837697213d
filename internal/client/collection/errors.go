package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers unreachable hosts, cancelled calls and non-2xx replies.
	ErrTransport = errors.New("transport failure")
	// ErrTooLarge reports a reply body over the read cap. It matches
	// ErrTransport.
	ErrTooLarge = fmt.Errorf("%w: response too large", ErrTransport)
	// ErrDecode reports a list body that could not be unwrapped.
	ErrDecode = errors.New("decode failure")
	// ErrNoID is returned for update and delete calls on records the remote
	// side has not assigned an identifier to yet.
	ErrNoID = errors.New("record has no identifier")
	// ErrInvalidDraft is returned when a record cannot be sent as is.
	ErrInvalidDraft = errors.New("invalid draft")
)

// StatusError is a non-2xx reply. It matches ErrTransport with errors.Is.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error: %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("server error: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Is makes a StatusError match ErrTransport.
func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}
