package dashboard

import (
	"github.com/cristianoliveira/notes-dash/internal/editor"
	"github.com/cristianoliveira/notes-dash/internal/note"
)

// Snapshot is a consistent copy of the dashboard view state.
type Snapshot struct {
	// Loading is true while a fetch is in flight.
	Loading bool
	// Loaded is true once a fetch has succeeded.
	Loaded bool
	// Banner is the sticky page-level error, empty when none.
	Banner string
	// FormError is the inline editor validation message.
	FormError  string
	Submitting bool
	Mounted    bool

	Notes   []note.Note
	Visible []note.Note
	Query   string

	EditorMode editor.Mode
	// Editing is the note being edited; only meaningful in edit mode.
	Editing note.Note
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	editing, _ := c.session.EditingNote()
	return Snapshot{
		Loading:    c.loading,
		Loaded:     c.loaded,
		Banner:     c.banner,
		FormError:  c.formError,
		Submitting: c.submitting,
		Mounted:    !c.unmounted,
		Notes:      c.store.Notes(),
		Visible:    c.store.Visible(),
		Query:      c.store.Query(),
		EditorMode: c.session.Mode(),
		Editing:    editing,
	}
}

// EmptyMessage returns the empty-state headline, or "" when notes are visible.
func (s Snapshot) EmptyMessage() string {
	if len(s.Visible) > 0 {
		return ""
	}
	if s.Query != "" {
		return "No notes found"
	}
	return "No notes yet"
}
