package main

import (
	"context"
	"errors"
	"time"

	"github.com/cristianoliveira/notes-dash/internal/api"
	"github.com/cristianoliveira/notes-dash/internal/auth"
	"github.com/cristianoliveira/notes-dash/internal/colors"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/cristianoliveira/notes-dash/internal/dashboard"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/notify"
)

var errSignedOut = errors.New("not signed in: set api_token in your config")

// app holds what the client subcommands share.
type app struct {
	notes   dashboard.NotesAPI
	session *auth.Session
}

// appFactory builds the app once the configuration is loaded.
type appFactory func(ctx context.Context) (*app, error)

// newApp talks to the configured notes API.
func newApp(ctx context.Context) (*app, error) {
	token := config.Get("api_token", "")
	client := api.New(config.Get("api_url", "http://localhost:8080"),
		api.WithToken(token),
		api.WithTimeout(config.GetDuration("request_timeout", time.Second, api.DefaultTimeout)),
		api.WithLogger(logging.With("component", "api")),
	)
	return &app{
		notes:   client,
		session: auth.Resolve(ctx, client, token, config.Get("user_name", "")),
	}, nil
}

// controller returns a dashboard controller that reports to the console.
func (a *app) controller(confirmer dashboard.Confirmer, opts ...dashboard.Option) *dashboard.Controller {
	return dashboard.New(a.notes, confirmer, cliNotifier{}, opts...)
}

func (a *app) requireSignedIn() error {
	if !a.session.SignedIn() {
		return errSignedOut
	}
	return nil
}

// cliNotifier prints dashboard notifications as console lines.
type cliNotifier struct{}

func (cliNotifier) Notify(message string, kind notify.Kind) {
	switch kind {
	case notify.KindSuccess:
		colors.Success(message)
	case notify.KindError:
		colors.Error(message)
	default:
		colors.Info(message)
	}
}
