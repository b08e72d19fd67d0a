package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/notes-dash/internal/colors"
	"github.com/cristianoliveira/notes-dash/internal/note"
)

// TableColumn is one column of the table output.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string
	// Width is the column width in characters.
	Width int
	// Alignment is "left" (default) or "right".
	Alignment string
	// Extractor extracts the raw cell value from a note.
	Extractor func(note.Note) string
}

// TableFormatter prints notes in aligned columns.
type TableFormatter struct {
	ShowHeaders bool
	HeaderColor string
	columns     []TableColumn
}

// NewTableFormatter creates a table with ID, Title and Body columns.
func NewTableFormatter() *TableFormatter {
	f := &TableFormatter{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
	}
	return f.WithColumns(
		TableColumn{Name: "ID", Width: 6, Alignment: "right", Extractor: func(n note.Note) string { return n.ID.String() }},
		TableColumn{Name: "TITLE", Width: 30, Extractor: func(n note.Note) string { return n.Title }},
		TableColumn{Name: "BODY", Width: 40, Extractor: func(n note.Note) string { return preview(n.Body) }},
	)
}

// WithColumns appends custom columns.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatNotes writes the table. Nothing is written for an empty list.
func (f *TableFormatter) FormatNotes(notes []note.Note, writer io.Writer) error {
	if len(notes) == 0 {
		return nil
	}
	if f.ShowHeaders {
		headers := make([]string, len(f.columns))
		rules := make([]string, len(f.columns))
		for i, col := range f.columns {
			headers[i] = pad(col.Name, col.Width, "left")
			rules[i] = strings.Repeat("-", col.Width)
		}
		if err := f.writeLine(writer, f.HeaderColor, headers); err != nil {
			return err
		}
		if err := f.writeLine(writer, f.HeaderColor, rules); err != nil {
			return err
		}
	}
	for _, n := range notes {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = pad(truncate(col.Extractor(n), col.Width), col.Width, col.Alignment)
		}
		if err := f.writeLine(writer, "", cells); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeLine(writer io.Writer, color string, cells []string) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if color != "" {
		line = color + line + colors.Reset
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

// preview flattens a body to its first line.
func preview(body string) string {
	body = strings.TrimSpace(body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		return strings.TrimSpace(body[:i]) + " …"
	}
	return body
}

// pad aligns s within width runes.
func pad(s string, width int, alignment string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	if alignment == "right" {
		return strings.Repeat(" ", width-n) + s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
