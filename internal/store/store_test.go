package store

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []note.Note {
	return []note.Note{
		{ID: "1", Title: "Alpha", Body: "first"},
		{ID: "2", Title: "Beta", Body: "alpha in body"},
		{ID: "3", Title: "alphabet soup", Body: ""},
	}
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()

	assert.Empty(t, s.Notes())
	assert.Empty(t, s.Visible())
	assert.Equal(t, "", s.Query())
	assert.Equal(t, 0, s.Len())
}

func TestLoadReplacesCollectionAndKeepsQuery(t *testing.T) {
	s := New()
	s.SetQuery("alp")
	s.Load(sampleNotes())

	assert.Equal(t, "alp", s.Query())
	assert.Len(t, s.Notes(), 3)

	s.Load([]note.Note{{ID: "9", Title: "Other"}})
	assert.Equal(t, []note.Note{{ID: "9", Title: "Other"}}, s.Notes())
	assert.Equal(t, "alp", s.Query())
}

func TestLoadCopiesInput(t *testing.T) {
	input := sampleNotes()
	s := New()
	s.Load(input)

	input[0].Title = "mutated"
	assert.Equal(t, "Alpha", s.Notes()[0].Title)
}

func TestInsertFrontShiftsExistingNotes(t *testing.T) {
	s := New()
	s.Load(sampleNotes())
	before := s.Notes()

	n := note.Note{ID: "4", Title: "Newest"}
	s.InsertFront(n)

	notes := s.Notes()
	require.Len(t, notes, len(before)+1)
	assert.Equal(t, n, notes[0])
	assert.Equal(t, before, notes[1:])
}

func TestReplacePreservesPosition(t *testing.T) {
	s := New()
	s.Load(sampleNotes())

	ok := s.Replace("2", note.Note{ID: "2", Title: "Beta v2", Body: "changed"})
	require.True(t, ok)

	notes := s.Notes()
	assert.Equal(t, "Alpha", notes[0].Title)
	assert.Equal(t, "Beta v2", notes[1].Title)
	assert.Equal(t, "alphabet soup", notes[2].Title)
}

func TestReplaceAbsentIDIsNoop(t *testing.T) {
	s := New()
	s.Load(sampleNotes())

	ok := s.Replace("404", note.Note{ID: "404", Title: "ghost"})

	assert.False(t, ok)
	assert.Equal(t, sampleNotes(), s.Notes())
}

func TestRemoveIsIdempotent(t *testing.T) {
	once := New()
	once.Load(sampleNotes())
	require.True(t, once.Remove("2"))

	twice := New()
	twice.Load(sampleNotes())
	require.True(t, twice.Remove("2"))
	assert.False(t, twice.Remove("2"))

	assert.Equal(t, once.Notes(), twice.Notes())
	assert.Equal(t, []note.ID{"1", "3"}, ids(twice.Notes()))
}

func TestRemoveAbsentIDDoesNotPanic(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() { s.Remove("nope") })
}

func TestSearchThenClear(t *testing.T) {
	s := New()
	s.Load([]note.Note{{ID: "1", Title: "Alpha"}, {ID: "2", Title: "Beta"}})

	s.SetQuery("al")
	assert.Equal(t, []note.Note{{ID: "1", Title: "Alpha"}}, s.Visible())

	s.SetQuery("")
	assert.Equal(t, s.Notes(), s.Visible())
}

func TestVisibleSearchesTitleOnly(t *testing.T) {
	s := New()
	s.Load(sampleNotes())
	s.SetQuery("ALPHA")

	assert.Equal(t, []note.ID{"1", "3"}, ids(s.Visible()))
}

func TestWhitespaceQueryShowsEverything(t *testing.T) {
	s := New()
	s.Load(sampleNotes())
	s.SetQuery("   ")

	assert.Equal(t, s.Notes(), s.Visible())
}

func TestVisibleTracksMutations(t *testing.T) {
	s := New()
	s.Load(sampleNotes())
	s.SetQuery("alpha")

	s.InsertFront(note.Note{ID: "5", Title: "Alpha two"})
	assert.Equal(t, []note.ID{"5", "1", "3"}, ids(s.Visible()))

	s.Remove("1")
	assert.Equal(t, []note.ID{"5", "3"}, ids(s.Visible()))

	s.Replace("3", note.Note{ID: "3", Title: "soup"})
	assert.Equal(t, []note.ID{"5"}, ids(s.Visible()))
}

// TestVisibleIsExactTitleSubset checks the filter against a reference
// implementation over randomized collections.
func TestVisibleIsExactTitleSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"a", "B", "c", "Al", "pha", " ", "ß", "É"}
	randString := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	for round := 0; round < 200; round++ {
		notes := make([]note.Note, rng.Intn(8))
		for i := range notes {
			notes[i] = note.Note{ID: note.ID(fmt.Sprint(i)), Title: randString(1 + rng.Intn(5))}
		}
		query := randString(rng.Intn(3))

		s := New()
		s.Load(notes)
		s.SetQuery(query)

		var want []note.Note
		for _, n := range notes {
			if strings.TrimSpace(query) == "" || strings.Contains(strings.ToLower(n.Title), strings.ToLower(query)) {
				want = append(want, n)
			}
		}
		if want == nil {
			want = []note.Note{}
		}
		assert.Equal(t, want, s.Visible(), "notes=%v query=%q", notes, query)
	}
}

func TestWithProviderIsUsedForVisible(t *testing.T) {
	p := new(search.MockProvider)
	p.On("Match", mock.Anything, "q").Return(false)

	s := New(WithProvider(p))
	s.Load(sampleNotes())
	s.SetQuery("q")

	assert.Empty(t, s.Visible())
	p.AssertNumberOfCalls(t, "Match", 3)
}

func TestGet(t *testing.T) {
	s := New()
	s.Load(sampleNotes())

	n, ok := s.Get("3")
	require.True(t, ok)
	assert.Equal(t, "alphabet soup", n.Title)

	_, ok = s.Get("x")
	assert.False(t, ok)
}

func TestConcurrentQueryAndMutation(t *testing.T) {
	s := New()
	s.Load(sampleNotes())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetQuery(fmt.Sprint(i % 3))
			_ = s.Visible()
		}(i)
		go func(i int) {
			defer wg.Done()
			s.InsertFront(note.Note{ID: note.ID(fmt.Sprintf("c%d", i)), Title: "c"})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 53, s.Len())
}

func ids(notes []note.Note) []note.ID {
	out := make([]note.ID, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}
