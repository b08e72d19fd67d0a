package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/notes-dash/cmd"
	"github.com/cristianoliveira/notes-dash/internal/colors"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/cristianoliveira/notes-dash/internal/confirm"
	"github.com/cristianoliveira/notes-dash/internal/dashboard"
	"github.com/cristianoliveira/notes-dash/internal/format"
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/search"
	"github.com/cristianoliveira/notes-dash/internal/store"
	"github.com/spf13/cobra"
)

const listCommandLong = `List your notes.

USAGE:
    notes-dash list [OPTIONS]

OPTIONS:
    --search <text>      Only notes whose title contains text (case-insensitive)
    --regex              Treat --search as a regular expression
    --format=<format>    Output format: simple (default), table, json
    -h, --help           Show this help`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewListCmd: factory dependency cannot be nil")
	}

	var listSearch string
	var listFormat string
	var listRegex bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []dashboard.Option
			if listRegex {
				provider := search.NewRegexProvider()
				if err := provider.Compile(listSearch); err != nil {
					return fmt.Errorf("invalid --search pattern: %w", err)
				}
				opts = append(opts, dashboard.WithStore(store.New(store.WithProvider(provider))))
			}
			a, err := signedIn(cmd, factory)
			if err != nil {
				return err
			}
			ctrl := a.controller(confirm.Always(false), opts...)
			defer ctrl.Unmount()

			if err := ctrl.FetchAll(cmd.Context()); err != nil {
				return err
			}
			ctrl.SetQuery(listSearch)

			outputFormat := format.FormatterType(listFormat)
			if outputFormat == "" {
				outputFormat = format.FormatterType(config.Get("list_format", string(format.FormatterTypeSimple)))
			}
			snap := ctrl.Snapshot()
			if len(snap.Visible) == 0 && outputFormat != format.FormatterTypeJSON {
				colors.Info(snap.EmptyMessage())
				return nil
			}
			return format.NewFormatter(outputFormat).FormatNotes(snap.Visible, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by title")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: simple, table, json")
	listCmd.Flags().BoolVar(&listRegex, "regex", false, "Match --search as a regular expression")
	return listCmd
}

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewAddCmd: factory dependency cannot be nil")
	}

	var addBody string

	addCmd := &cobra.Command{
		Use:   "add TITLE [BODY...]",
		Short: "Create a note",
		Long: `Create a note.

The body is taken from --body, or from the words after the title.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("add requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := signedIn(cmd, factory)
			if err != nil {
				return err
			}
			body := addBody
			if body == "" && len(args) > 1 {
				body = strings.Join(args[1:], " ")
			}

			ctrl := a.controller(confirm.Always(false))
			defer ctrl.Unmount()
			ctrl.BeginCreate()
			return ctrl.Create(cmd.Context(), note.Form{Title: args[0], Body: body})
		},
	}
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "Note body")
	return addCmd
}

// NewEditCmd creates the edit command with explicit dependencies.
func NewEditCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewEditCmd: factory dependency cannot be nil")
	}

	var editTitle string
	var editBody string

	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title or body of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleChanged := cmd.Flags().Changed("title")
			bodyChanged := cmd.Flags().Changed("body")
			if !titleChanged && !bodyChanged {
				return fmt.Errorf("edit requires --title or --body")
			}
			a, err := signedIn(cmd, factory)
			if err != nil {
				return err
			}

			ctrl := a.controller(confirm.Always(false))
			defer ctrl.Unmount()
			if err := ctrl.FetchAll(cmd.Context()); err != nil {
				return err
			}
			id := note.ID(args[0])
			n, ok := ctrl.Store().Get(id)
			if !ok {
				return fmt.Errorf("note %s not found", id)
			}

			form := note.FormOf(n)
			if titleChanged {
				form.Title = editTitle
			}
			if bodyChanged {
				form.Body = editBody
			}
			ctrl.BeginEdit(n)
			return ctrl.Update(cmd.Context(), id, form)
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "New body")
	return editCmd
}

// newPrompt asks on the command's streams; replaced in tests.
var newPrompt = func(cmd *cobra.Command) dashboard.Confirmer {
	return confirm.Prompt{Input: cmd.InOrStdin(), Output: cmd.ErrOrStderr()}
}

// NewRmCmd creates the rm command with explicit dependencies.
func NewRmCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewRmCmd: factory dependency cannot be nil")
	}

	var rmYes bool

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := signedIn(cmd, factory)
			if err != nil {
				return err
			}
			var confirmer dashboard.Confirmer = confirm.Always(true)
			if !rmYes {
				confirmer = newPrompt(cmd)
			}

			ctrl := a.controller(confirmer)
			defer ctrl.Unmount()
			err = ctrl.Delete(cmd.Context(), note.ID(args[0]))
			if errors.Is(err, dashboard.ErrNotConfirmed) {
				colors.Info("Cancelled.")
				return nil
			}
			return err
		},
	}
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Delete without asking")
	return rmCmd
}

// NewWhoamiCmd creates the whoami command with explicit dependencies.
func NewWhoamiCmd(factory appFactory) *cobra.Command {
	if factory == nil {
		panic("NewWhoamiCmd: factory dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := signedIn(cmd, factory)
			if err != nil {
				return err
			}
			u := a.session.User()
			if u.ID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", u.Name, u.ID)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), u.Name)
			}
			return nil
		},
	}
}

func signedIn(cmd *cobra.Command, factory appFactory) (*app, error) {
	a, err := factory(cmd.Context())
	if err != nil {
		return nil, err
	}
	if err := a.requireSignedIn(); err != nil {
		return nil, err
	}
	return a, nil
}

var (
	listCmd   = NewListCmd(newApp)
	addCmd    = NewAddCmd(newApp)
	editCmd   = NewEditCmd(newApp)
	rmCmd     = NewRmCmd(newApp)
	whoamiCmd = NewWhoamiCmd(newApp)
)

func init() {
	cmd.RootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd, whoamiCmd)
}
