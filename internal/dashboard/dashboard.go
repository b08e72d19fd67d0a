// Package dashboard orchestrates the notes dashboard: it sequences remote
// calls against the note store, the editor session and the notification
// channel so local state only changes after the remote side confirmed it.
package dashboard

import (
	"context"
	"errors"

	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/notify"
)

// User-visible messages.
const (
	MsgLoadFailed    = "Failed to load notes"
	MsgCreated       = "Note created successfully!"
	MsgCreateFailed  = "Failed to create note"
	MsgUpdated       = "Note updated successfully!"
	MsgUpdateFailed  = "Failed to update note"
	MsgDeleted       = "Note deleted successfully!"
	MsgDeleteFailed  = "Failed to delete note"
	DeleteConfirmMsg = "Are you sure you want to delete this note?"
	MsgSubmitBusy    = "Still saving, try again in a moment"
	MsgNotEditing    = "That note is no longer being edited"
)

var (
	// ErrNotEditing is returned by Update when the editor is not editing the given note.
	ErrNotEditing = errors.New("dashboard: note is not being edited")
	// ErrSubmitInProgress is returned when a create or update is already in flight.
	ErrSubmitInProgress = errors.New("dashboard: a submission is already in progress")
	// ErrNotConfirmed is returned by Delete when the user declined.
	ErrNotConfirmed = errors.New("dashboard: deletion not confirmed")
	// ErrUnmounted is returned for operations on, or results arriving after, Unmount.
	ErrUnmounted = errors.New("dashboard: controller unmounted")
)

// NotesAPI is the remote notes collaborator.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
	CreateNote(ctx context.Context, title, body string) (note.Note, error)
	UpdateNote(ctx context.Context, id note.ID, title, body string) (note.Note, error)
	DeleteNote(ctx context.Context, id note.ID) error
}

// Confirmer asks the user a yes/no question. Confirm blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Notifier receives transient notifications. *notify.Channel implements it.
type Notifier interface {
	Notify(message string, kind notify.Kind)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}
