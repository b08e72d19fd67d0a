package tui

import "errors"

var errNotRunning = errors.New("tui: dashboard is not running")

// fetchDoneMsg is sent when a FetchAll finishes. The controller has
// already recorded the outcome.
type fetchDoneMsg struct{ err error }

// opDoneMsg is sent when a create, update or delete finishes.
type opDoneMsg struct{ err error }

// toastChangedMsg asks for a redraw after the notification channel changed.
type toastChangedMsg struct{}

type confirmRequestMsg struct {
	prompt string
	answer chan<- bool
}
