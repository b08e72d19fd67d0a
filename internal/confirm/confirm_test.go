package confirm

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunner(t *testing.T, fn func(ctx context.Context, form *huh.Form) error) {
	t.Helper()
	orig := runForm
	runForm = fn
	t.Cleanup(func() { runForm = orig })
}

func TestAlways(t *testing.T) {
	ok, err := Always(true).Confirm(context.Background(), "delete?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Always(false).Confirm(context.Background(), "delete?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlwaysHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := Always(true).Confirm(ctx, "delete?")

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestPromptAbortIsNo(t *testing.T) {
	stubRunner(t, func(context.Context, *huh.Form) error { return huh.ErrUserAborted })

	ok, err := Prompt{}.Confirm(context.Background(), "delete?")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPromptRunErrorIsWrapped(t *testing.T) {
	boom := errors.New("no tty")
	stubRunner(t, func(context.Context, *huh.Form) error { return boom })

	_, err := Prompt{}.Confirm(context.Background(), "delete?")

	assert.ErrorIs(t, err, boom)
}

func TestPromptPassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	stubRunner(t, func(got context.Context, form *huh.Form) error {
		assert.Equal(t, "v", got.Value(key{}))
		assert.NotNil(t, form)
		return nil
	})

	ok, err := Prompt{}.Confirm(ctx, "delete?")

	require.NoError(t, err)
	assert.False(t, ok, "untouched confirm defaults to no")
}
