package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cristianoliveira/notes-dash/internal/colors"
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []note.Note{
	{ID: "1", Title: "Groceries", Body: "milk\neggs"},
	{ID: "42", Title: "Café ideas", Body: ""},
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON))
	assert.IsType(t, &SimpleFormatter{}, NewFormatter("bogus"))
}

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimpleFormatter().FormatNotes(sample, &buf))

	assert.Equal(t, "1       Groceries\n42      Café ideas\n", buf.String())
}

func TestSimpleFormatterTruncatesLongTitles(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 80)
	require.NoError(t, NewSimpleFormatter().FormatNotes([]note.Note{{ID: "1", Title: long}}, &buf))

	assert.Contains(t, buf.String(), strings.Repeat("x", 57)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 58))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatNotes(sample, &buf))

	var decoded []note.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample, decoded)

	buf.Reset()
	require.NoError(t, NewJSONFormatter().FormatNotes(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter()
	f.HeaderColor = ""
	require.NoError(t, f.FormatNotes(sample, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID    "))
	assert.Contains(t, lines[0], "TITLE")
	assert.True(t, strings.HasPrefix(lines[1], "------  "))
	assert.True(t, strings.HasPrefix(lines[2], "     1  Groceries"))
	assert.Contains(t, lines[2], "milk …")
	assert.True(t, strings.HasPrefix(lines[3], "    42  Café ideas"))
}

func TestTableFormatterHeaderColorAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().FormatNotes(nil, &buf))
	assert.Empty(t, buf.String())

	require.NoError(t, NewTableFormatter().FormatNotes(sample[:1], &buf))
	assert.True(t, strings.HasPrefix(buf.String(), colors.Blue))
}

func TestTableWithColumns(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter().WithColumns(TableColumn{
		Name:      "LEN",
		Width:     3,
		Alignment: "right",
		Extractor: func(n note.Note) string { return "9" },
	})
	f.ShowHeaders = false
	require.NoError(t, f.FormatNotes(sample[:1], &buf))

	assert.True(t, strings.HasSuffix(buf.String(), "  9\n"))
}

func TestTruncateAndPadAreRuneAware(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "hé...", truncate("héllo!", 5))
	assert.Equal(t, "hé", truncate("héllo", 2))
	assert.Equal(t, "é  ", pad("é", 3, "left"))
	assert.Equal(t, "  é", pad("é", 3, "right"))
}
