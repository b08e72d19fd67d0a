package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/notes-dash/cmd"
	"github.com/cristianoliveira/notes-dash/internal/colors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
