package main

import (
	"time"

	"github.com/cristianoliveira/notes-dash/cmd"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/cristianoliveira/notes-dash/internal/dashboard"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/notify"
	"github.com/cristianoliveira/notes-dash/internal/tui"
	"github.com/spf13/cobra"
)

// runProgram starts the bubbletea program; replaced in tests.
var runProgram = tui.Run

// NewTUICmd creates the dashboard command with explicit dependencies.
func NewTUICmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewTUICmd: factory dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the notes dashboard (default)",
		Long: `Open the interactive notes dashboard.

KEYS:
    j/k      move            /        search
    n        new note        e/enter  edit selected
    d        delete          x        dismiss message
    r        reload          p        toggle preview
    t        toggle theme    L        log out
    ?        help            q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := factory(cmd.Context())
			if err != nil {
				return err
			}

			relay := &tui.Relay{}
			toasts := notify.New(
				notify.WithDuration(config.GetDuration("notification_duration_ms", time.Millisecond, notify.DefaultDuration)),
				notify.WithOnChange(relay.ToastChanged),
			)
			ctrl := dashboard.New(a.notes, tui.NewConfirmer(relay), toasts,
				dashboard.WithLogger(logging.With("component", "dashboard")))
			a.session.OnLogout(func() {
				logging.Info("user logged out")
			})

			m := tui.NewModel(tui.Options{
				Controller: ctrl,
				Toasts:     toasts,
				Session:    a.session,
				Context:    cmd.Context(),
				Theme:      config.Get("theme", tui.ThemeDark),
				Preview:    config.GetBool("preview", true),
			})
			return runProgram(cmd.Context(), m, relay)
		},
	}
}

var tuiCmd = NewTUICmd(newApp)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	// The dashboard is the default command.
	cmd.RootCmd.RunE = tuiCmd.RunE
	cmd.RootCmd.Args = cobra.NoArgs
}
