// Package search provides the matching strategies used to filter notes.
// The dashboard view uses a case-insensitive title substring match;
// `notes-dash list --regex` switches to regular expressions.
package search

import (
	"github.com/cristianoliveira/notes-dash/internal/note"
)

// Field names accepted by WithFields.
const (
	FieldTitle = "title"
	FieldBody  = "body"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the note matches the search query.
	Match(n note.Note, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case
	Fields          []string // Fields to search in (default: title only)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldTitle},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "title", "body".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the value of a named field, or "" for unknown fields.
func fieldValue(n note.Note, field string) string {
	switch field {
	case FieldTitle:
		return n.Title
	case FieldBody:
		return n.Body
	default:
		return ""
	}
}
