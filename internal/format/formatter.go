// Package format renders notes for CLI output.
package format

import (
	"io"

	"github.com/cristianoliveira/notes-dash/internal/note"
)

// Formatter writes a list of notes.
type Formatter interface {
	FormatNotes(notes []note.Note, writer io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypeSimple prints one "id  title" line per note.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeTable prints an aligned table with a body preview.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeJSON prints a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a formatter of the given type. Unknown types fall
// back to simple.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}
