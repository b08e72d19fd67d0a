package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/notes-dash/internal/note"
)

// SimpleFormatter prints the id and title of each note.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotes writes one line per note.
func (f *SimpleFormatter) FormatNotes(notes []note.Note, writer io.Writer) error {
	for _, n := range notes {
		if _, err := fmt.Fprintf(writer, "%-6s  %s\n", n.ID, truncate(n.Title, 60)); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints notes as an indented JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatNotes writes the notes as JSON. An empty list is "[]".
func (f *JSONFormatter) FormatNotes(notes []note.Note, writer io.Writer) error {
	if notes == nil {
		notes = []note.Note{}
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}
