// Package cmd holds the root command shared by the notes-dash subcommands.
package cmd

import (
	"context"

	"github.com/cristianoliveira/notes-dash/internal/colors"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "notes-dash",
	Short:             "A terminal dashboard for your notes.",
	Long:              `A terminal dashboard for your notes.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

// Execute runs the root command. main prints the returned error.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// setup loads the configuration and starts logging for the running command.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(cmd.Name()); err != nil {
		colors.Warning("logging disabled: " + err.Error())
	}
	logging.Debug("command started", "command", cmd.Name(), "version", version.String())
	return nil
}

func teardown() {
	_ = logging.ShutdownGlobal()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			defaultHelp(cmd, args)
			return
		}
		PrintHelp(cmd)
	})
	RootCmd.SetHelpCommand(helpCmd)
}
