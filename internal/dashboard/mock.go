package dashboard

import (
	"context"

	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of NotesAPI.
type MockAPI struct {
	mock.Mock
}

// ListNotes mocks the remote list call.
func (m *MockAPI) ListNotes(ctx context.Context) ([]note.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]note.Note)
	return notes, args.Error(1)
}

// CreateNote mocks the remote create call.
func (m *MockAPI) CreateNote(ctx context.Context, title, body string) (note.Note, error) {
	args := m.Called(ctx, title, body)
	n, _ := args.Get(0).(note.Note)
	return n, args.Error(1)
}

// UpdateNote mocks the remote update call.
func (m *MockAPI) UpdateNote(ctx context.Context, id note.ID, title, body string) (note.Note, error) {
	args := m.Called(ctx, id, title, body)
	n, _ := args.Get(0).(note.Note)
	return n, args.Error(1)
}

// DeleteNote mocks the remote delete call.
func (m *MockAPI) DeleteNote(ctx context.Context, id note.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer.
type MockConfirmer struct {
	mock.Mock
}

// Confirm mocks the confirmation prompt.
func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}
