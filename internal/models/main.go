// Package models defines the flat in-memory records for todos and users.
package models

// Todo is a task item. ID is zero until the remote collection has persisted
// the record and it has been observed through a re-list.
type Todo struct {
	// ID is assigned by the remote collection; the client never invents one.
	ID int64
	// Title is the non-empty task text.
	Title string
	// Person is the free-text assignee name.
	Person string
	// Done is the completion flag.
	Done bool
}

// RecordID returns the server-assigned identifier.
func (t Todo) RecordID() int64 { return t.ID }

// Persisted reports whether the record carries a server-assigned identifier.
func (t Todo) Persisted() bool { return t.ID != 0 }

// User is a registered person.
type User struct {
	// ID is assigned by the remote collection.
	ID int64
	// Name is the display name.
	Name string
	// Email is the contact address.
	Email string
	// PhoneNumber is always text on the client, whatever scalar the
	// remote side reports.
	PhoneNumber string
}

// RecordID returns the server-assigned identifier.
func (u User) RecordID() int64 { return u.ID }

// Persisted reports whether the record carries a server-assigned identifier.
func (u User) Persisted() bool { return u.ID != 0 }
