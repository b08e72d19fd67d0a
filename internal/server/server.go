// Package server is the reference notes API: the remote collaborator the
// dashboard talks to, backed by SQLite.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cristianoliveira/notes-dash/internal/auth"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ShutdownTimeout bounds graceful shutdown in Serve.
const ShutdownTimeout = 5 * time.Second

// Store is the persistence the server needs.
type Store interface {
	ListNotes(ctx context.Context, owner string) ([]sqlite.Record, error)
	CreateNote(ctx context.Context, owner, title, body string) (sqlite.Record, error)
	GetNote(ctx context.Context, owner, id string) (sqlite.Record, error)
	UpdateNote(ctx context.Context, owner, id, title, body string) (sqlite.Record, error)
	DeleteNote(ctx context.Context, owner, id string) error
	Ping(ctx context.Context) error
}

// Server serves the notes API.
type Server struct {
	store     Store
	tokens    map[string]auth.User
	localUser auth.User
	logger    logging.Logger
	registry  *prometheus.Registry
	metrics   *metrics
	engine    *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithTokens requires a bearer token from the given set on /api routes.
func WithTokens(tokens map[string]auth.User) Option {
	return func(s *Server) { s.tokens = tokens }
}

// WithLocalUser names the user every request acts as when no tokens are configured.
func WithLocalUser(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.localUser = auth.User{ID: name, Name: name}
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New builds the server and its routes.
func New(store Store, opts ...Option) *Server {
	s := &Server{
		store:     store,
		localUser: auth.User{ID: "local", Name: "local"},
		logger:    logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), s.metricsMiddleware(), s.loggingMiddleware())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.handler))

	api := r.Group("/api")
	api.Use(s.authMiddleware())
	{
		api.GET("/auth/me", s.handleMe)

		notes := api.Group("/notes")
		notes.GET("", s.handleListNotes)
		notes.POST("", s.handleCreateNote)
		notes.GET("/:id", s.handleGetNote)
		notes.PUT("/:id", s.handleUpdateNote)
		notes.DELETE("/:id", s.handleDeleteNote)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("notes API listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("notes API stopped")
	return nil
}
