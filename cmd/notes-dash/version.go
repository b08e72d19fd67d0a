package main

import (
	"fmt"

	"github.com/cristianoliveira/notes-dash/cmd"
	"github.com/cristianoliveira/notes-dash/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of notes-dash.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "notes-dash version %s\n", version.String())
			return nil
		},
	}
}

var versionCmd = NewVersionCmd()

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
