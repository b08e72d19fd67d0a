package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/notes-dash/internal/version"
	"github.com/spf13/cobra"
)

// outputWriter is where PrintHelp writes. Nil means stdout.
var outputWriter io.Writer

var commandOrder = []string{
	"tui",
	"list",
	"add",
	"edit",
	"rm",
	"whoami",
	"serve",
	"help",
	"version",
}

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show this help message",
	Long:  `Show this help message.`,
	Run: func(cmd *cobra.Command, args []string) {
		PrintHelp(cmd.Root())
	},
}

// PrintHelp prints the command summary in a fixed order.
func PrintHelp(cmd *cobra.Command) {
	w := outputWriter
	if w == nil {
		w = os.Stdout
	}

	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-22s %s", c.Use, c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `notes-dash v%s

A terminal dashboard for your notes.

USAGE:
    notes-dash [COMMAND] [OPTIONS]

    Without a command the dashboard starts.

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message

CONFIGURATION:
    $XDG_CONFIG_HOME/notes-dash/config.toml, overridden by NOTES_DASH_* variables.
`, version.String(), strings.Join(cmdLines, "\n"))
}
