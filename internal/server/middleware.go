package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/cristianoliveira/notes-dash/internal/api"
	"github.com/cristianoliveira/notes-dash/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userKey      = "notes_user"
	requestIDKey = "notes_request_id"
)

// requestIDMiddleware echoes the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(api.RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(api.RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// authMiddleware resolves the caller. With no tokens configured every
// request is the local user.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(s.tokens) == 0 {
			c.Set(userKey, s.localUser)
			c.Next()
			return
		}
		token := extractBearerToken(c)
		user, ok := s.tokens[token]
		if token == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) auth.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(auth.User); ok {
			return u
		}
	}
	return auth.User{}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
