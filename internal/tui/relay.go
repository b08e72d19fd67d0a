package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Relay forwards messages from background goroutines into the running
// program. Messages sent before Bind are dropped.
type Relay struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// Bind sets the function that delivers messages, usually (*tea.Program).Send.
func (r *Relay) Bind(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

// Send delivers msg if the relay is bound. It blocks until the program
// accepts the message, so it must not be called from Update.
func (r *Relay) Send(msg tea.Msg) bool {
	r.mu.RLock()
	send := r.send
	r.mu.RUnlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

// ToastChanged notifies the program that the toast must be redrawn.
// It matches the notify.WithOnChange callback signature and never blocks,
// since a dismissal fires it from inside Update.
func (r *Relay) ToastChanged() {
	go r.Send(toastChangedMsg{})
}

// Confirmer asks the question inside the dashboard. Confirm blocks the
// calling goroutine until the user answers; the event loop keeps running.
type Confirmer struct {
	relay *Relay
}

// NewConfirmer creates a Confirmer delivering prompts through relay.
func NewConfirmer(relay *Relay) *Confirmer {
	return &Confirmer{relay: relay}
}

// Confirm implements dashboard.Confirmer.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer := make(chan bool, 1)
	if !c.relay.Send(confirmRequestMsg{prompt: prompt, answer: answer}) {
		return false, errNotRunning
	}
	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
