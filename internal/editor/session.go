// Package editor models the single create-or-edit workflow of the dashboard.
package editor

import "github.com/cristianoliveira/notes-dash/internal/note"

// Mode is the state of the editor session.
type Mode int

const (
	// ModeClosed means no editor is shown.
	ModeClosed Mode = iota
	// ModeCreate means the editor is open for a new note.
	ModeCreate
	// ModeEdit means the editor is open on an existing note.
	ModeEdit
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Session is the open/closed state of the editor and the note being edited.
// An editing note is only ever present while the session is open.
// The zero value is a closed session.
type Session struct {
	open     bool
	editing  *note.Note
	revision uint64
}

// OpenForCreate opens the editor with no note attached.
func (s *Session) OpenForCreate() {
	s.open = true
	s.editing = nil
	s.revision++
}

// OpenForEdit opens the editor on a copy of n.
func (s *Session) OpenForEdit(n note.Note) {
	cp := n
	s.open = true
	s.editing = &cp
	s.revision++
}

// Close closes the editor and always drops the editing note.
func (s *Session) Close() {
	s.open = false
	s.editing = nil
	s.revision++
}

// IsOpen reports whether the editor is shown.
func (s *Session) IsOpen() bool {
	return s.open
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	switch {
	case !s.open:
		return ModeClosed
	case s.editing != nil:
		return ModeEdit
	default:
		return ModeCreate
	}
}

// EditingNote returns a copy of the note being edited, if any.
func (s *Session) EditingNote() (note.Note, bool) {
	if s.editing == nil {
		return note.Note{}, false
	}
	return *s.editing, true
}

// IsEditing reports whether the session is in edit mode for id.
func (s *Session) IsEditing(id note.ID) bool {
	return s.open && s.editing != nil && s.editing.ID == id
}

// Revision changes on every transition. A caller that captured a revision can
// later tell whether the session has been reopened or closed since.
func (s *Session) Revision() uint64 {
	return s.revision
}
