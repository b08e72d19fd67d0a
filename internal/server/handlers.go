package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/storage/sqlite"
	"github.com/gin-gonic/gin"
)

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(r sqlite.Record) noteResponse {
	return noteResponse{ID: r.ID, Title: r.Title, Body: r.Body, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleListNotes(c *gin.Context) {
	records, err := s.store.ListNotes(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]noteResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetNote(c *gin.Context) {
	r, err := s.store.GetNote(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(r))
}

func (s *Server) handleCreateNote(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	r, err := s.store.CreateNote(c.Request.Context(), currentUser(c).ID, form.Title, form.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Location", "/api/notes/"+strconv.FormatInt(r.ID, 10))
	c.JSON(http.StatusCreated, toResponse(r))
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}
	r, err := s.store.UpdateNote(c.Request.Context(), currentUser(c).ID, c.Param("id"), form.Title, form.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(r))
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.store.DeleteNote(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindForm decodes and validates the request body, answering 400 itself.
func bindForm(c *gin.Context) (note.Form, bool) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return note.Form{}, false
	}
	form := note.Form{Title: req.Title, Body: req.Body}.Normalized()
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return note.Form{}, false
	}
	return form, true
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sqlite.ErrNoteNotFound), errors.Is(err, sqlite.ErrInvalidNoteID):
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
	default:
		s.logger.Error("storage failure", "path", c.Request.URL.Path, "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
