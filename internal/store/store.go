// Package store holds the authoritative in-memory list of the current user's
// notes together with the search query and the filtered view derived from it.
package store

import (
	"strings"
	"sync"

	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/search"
)

// Store is the note collection of one dashboard session.
// Visible is always computed from the current notes and query at read time.
type Store struct {
	mu       sync.RWMutex
	notes    []note.Note
	query    string
	provider search.Provider
}

// Option configures a Store.
type Option func(*Store)

// WithProvider overrides the search provider used for the visible view.
func WithProvider(p search.Provider) Option {
	return func(s *Store) {
		if p != nil {
			s.provider = p
		}
	}
}

// New creates an empty store filtering by case-insensitive title substring.
func New(opts ...Option) *Store {
	s := &Store{
		provider: search.NewSubstringProvider(
			search.WithCaseInsensitive(true),
			search.WithFields([]string{search.FieldTitle}),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the entire collection. The query is left untouched.
func (s *Store) Load(notes []note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append([]note.Note(nil), notes...)
}

// InsertFront prepends n to the collection.
func (s *Store) InsertFront(n note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]note.Note, 0, len(s.notes)+1)
	next = append(next, n)
	s.notes = append(next, s.notes...)
}

// Replace swaps the note with the given id in place.
// It returns false, changing nothing, when no note has that id.
func (s *Store) Replace(id note.ID, n note.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := append([]note.Note(nil), s.notes...)
	next[i] = n
	s.notes = next
	return true
}

// Remove deletes the note with the given id. Removing an absent id is a no-op
// and returns false.
func (s *Store) Remove(id note.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]note.Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:i]...)
	s.notes = append(next, s.notes[i+1:]...)
	return true
}

// SetQuery updates the search query.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// Query returns the current search query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Notes returns a copy of the full collection.
func (s *Store) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]note.Note(nil), s.notes...)
}

// Visible returns the notes whose title matches the query, in collection order.
// A blank query yields the full collection.
func (s *Store) Visible() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.notes, s.query, s.provider)
}

// Get returns the note with the given id.
func (s *Store) Get(id note.ID) (note.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return note.Note{}, false
	}
	return s.notes[i], true
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id note.ID) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func filter(notes []note.Note, query string, provider search.Provider) []note.Note {
	if strings.TrimSpace(query) == "" {
		visible := make([]note.Note, len(notes))
		copy(visible, notes)
		return visible
	}
	visible := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if provider.Match(n, query) {
			visible = append(visible, n)
		}
	}
	return visible
}
