package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/notes-dash/cmd"
	"github.com/cristianoliveira/notes-dash/internal/config"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/server"
	"github.com/cristianoliveira/notes-dash/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// healthInterval is how often serve checks the database.
var healthInterval = 30 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var serveAddr string
	var serveDB string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference notes API server",
		Long: `Run the reference notes API server on SQLite.

Configure bearer tokens with server_tokens = "token:name,...". Without tokens
every request acts as the local user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, dbPath := serveAddr, serveDB
			if addr == "" {
				addr = config.Get("server_addr", ":8080")
			}
			if dbPath == "" {
				dbPath = config.Get("server_db_path", "notes.db")
			}
			tokens, err := server.ParseTokens(config.Get("server_tokens", ""))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
				return fmt.Errorf("serve: create database dir: %w", err)
			}
			st, err := sqlite.NewSQLiteStorage(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			level := config.Get("logging_level", "info")
			if level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			logger := logging.NewConsole(cmd.ErrOrStderr(), level)
			srv := server.New(st,
				server.WithTokens(tokens),
				server.WithLocalUser(config.Get("user_name", "")),
				server.WithLogger(logger),
			)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("serve: listen %s: %w", addr, err)
			}
			logger.Info("serving notes", "db", dbPath, "tokens", len(tokens))
			return runServer(cmd.Context(), srv, st, ln, logger)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server_addr)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default from server_db_path)")
	return serveCmd
}

// runServer serves until ctx is done or the database stops answering.
func runServer(ctx context.Context, srv *server.Server, db pinger, ln net.Listener, logger logging.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ServeListener(gctx, ln)
	})
	g.Go(func() error {
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := db.Ping(gctx); err != nil {
					logger.Error("database unavailable", "error", err)
					return fmt.Errorf("serve: database: %w", err)
				}
			}
		}
	})
	return g.Wait()
}

var serveCmd = NewServeCmd()

func init() {
	cmd.RootCmd.AddCommand(serveCmd)
}
