// Package confirm provides yes/no confirmation for CLI commands.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Prompt asks on the terminal with a huh confirm field.
type Prompt struct {
	// Accessible renders a plain prompt for screen readers and non-TTY input.
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

// runForm is replaced in tests.
var runForm = func(ctx context.Context, form *huh.Form) error {
	return form.RunWithContext(ctx)
}

// Confirm shows prompt and returns the answer. Aborting the prompt
// (ctrl+c, esc) is a "no".
func (p Prompt) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithAccessible(p.Accessible)
	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}
	if err := runForm(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// Always answers every prompt with a fixed value. It backs --yes.
type Always bool

// Confirm returns the fixed answer unless ctx is done.
func (a Always) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(a), nil
}
