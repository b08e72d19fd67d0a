package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard program and blocks until the user quits or ctx
// is cancelled. The relay is bound to the program for its lifetime and the
// controller is unmounted on return.
func Run(ctx context.Context, m *Model, relay *Relay, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	relay.Bind(p.Send)
	defer func() {
		relay.Bind(nil)
		m.toasts.Close()
		m.ctrl.Unmount()
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: run: %w", err)
	}
	return nil
}
