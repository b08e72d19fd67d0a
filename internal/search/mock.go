package search

import (
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: n, query.
func (m *MockProvider) Match(n note.Note, query string) bool {
	args := m.Called(n, query)
	return args.Bool(0)
}

// Name provides a mock function.
func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
