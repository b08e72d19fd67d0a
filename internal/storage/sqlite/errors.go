package sqlite

import "errors"

var (
	// ErrInvalidNoteID indicates an empty or malformed note ID.
	ErrInvalidNoteID = errors.New("invalid note ID")
	// ErrNoteNotFound indicates that a note does not exist for the owner.
	ErrNoteNotFound = errors.New("note not found")
)
