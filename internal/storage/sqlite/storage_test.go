package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "notes.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func idOf(r Record) string {
	return strconv.FormatInt(r.ID, 10)
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
}

func TestCreateAndGetNote(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "ada", "Groceries", "milk")
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetNote(ctx, "ada", idOf(created))
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk", got.Body)
	assert.Equal(t, "ada", got.Owner)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestListNotesMostRecentFirstPerOwner(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.CreateNote(ctx, "ada", fmt.Sprintf("note %d", i), "")
		require.NoError(t, err)
	}
	_, err := s.CreateNote(ctx, "bob", "bob's", "")
	require.NoError(t, err)

	records, err := s.ListNotes(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "note 3", records[0].Title)
	assert.Equal(t, "note 1", records[2].Title)

	empty, err := s.ListNotes(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	n, err := s.CountNotes(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpdateNote(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created, err := s.CreateNote(ctx, "ada", "Old", "")
	require.NoError(t, err)

	later := created.UpdatedAt.Add(time.Minute)
	s.now = func() time.Time { return later }

	updated, err := s.UpdateNote(ctx, "ada", idOf(created), "New", "body")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestOwnershipIsEnforced(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created, err := s.CreateNote(ctx, "ada", "Private", "")
	require.NoError(t, err)
	id := idOf(created)

	_, err = s.GetNote(ctx, "bob", id)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = s.UpdateNote(ctx, "bob", id, "Mine now", "")
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.ErrorIs(t, s.DeleteNote(ctx, "bob", id), ErrNoteNotFound)

	got, err := s.GetNote(ctx, "ada", id)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestDeleteNote(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created, err := s.CreateNote(ctx, "ada", "Temp", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(ctx, "ada", idOf(created)))
	assert.ErrorIs(t, s.DeleteNote(ctx, "ada", idOf(created)), ErrNoteNotFound)
}

func TestInvalidIDs(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"", "abc", "-1", "0", "1.5"} {
		_, err := s.GetNote(ctx, "ada", id)
		assert.ErrorIs(t, err, ErrInvalidNoteID, "id %q", id)
	}
}

func TestConcurrentCreates(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateNote(ctx, "ada", fmt.Sprintf("n%d", i), "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	n, err := s.CountNotes(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	s, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	_, err = s.CreateNote(context.Background(), "ada", "Persisted", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	defer s.Close()
	records, err := s.ListNotes(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Persisted", records[0].Title)
}
