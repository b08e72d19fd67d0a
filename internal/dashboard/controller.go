package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/notes-dash/internal/editor"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/notify"
	"github.com/cristianoliveira/notes-dash/internal/store"
)

// Controller owns the dashboard working set. All methods are safe for
// concurrent use; remote calls run without holding the lock.
type Controller struct {
	api       NotesAPI
	confirmer Confirmer
	notifier  Notifier
	store     *store.Store
	logger    logging.Logger

	life   context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	session    editor.Session
	loading    bool
	loaded     bool
	banner     string
	formError  string
	submitting bool
	unmounted  bool

	// Fetch bookkeeping. Mutations committed while a fetch is in flight are
	// journaled and replayed onto its result, so a list read before the
	// mutation cannot undo it.
	fetchSeq   uint64
	appliedSeq uint64
	fetching   int
	mutSeq     uint64
	journal    []mutation
}

// mutation is one committed local change to the store.
type mutation struct {
	seq   uint64
	apply func(*store.Store) bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore uses s instead of a fresh store.
func WithStore(s *store.Store) Option {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a mounted controller.
func New(api NotesAPI, confirmer Confirmer, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		confirmer: confirmer,
		notifier:  notifier,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = store.New()
	}
	if c.logger == nil {
		c.logger = logging.With("component", "dashboard")
	}
	c.life, c.cancel = context.WithCancel(context.Background())
	return c
}

// Store returns the note store. The input layer may set the query on it directly.
func (c *Controller) Store() *store.Store {
	return c.store
}

// bind derives a context that is cancelled with ctx or on Unmount.
func (c *Controller) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}

// FetchAll loads the collection. A failure keeps the previous collection and
// sets the sticky banner; a success clears it. A result older than one
// already applied is dropped.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	c.fetchSeq++
	seq, since := c.fetchSeq, c.mutSeq
	c.fetching++
	c.loading = true
	c.mu.Unlock()

	callCtx, done := c.bind(ctx)
	notes, err := c.api.ListNotes(callCtx)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching--
	pending := c.journal
	if c.fetching == 0 {
		c.journal = nil
	}
	if c.unmounted {
		return ErrUnmounted
	}
	c.loading = c.fetching > 0
	if err != nil {
		c.banner = MsgLoadFailed
		c.logger.Error("list notes failed", "error", err)
		return fmt.Errorf("dashboard: list notes: %w", err)
	}
	if seq < c.appliedSeq {
		c.logger.Debug("dropping stale notes list", "fetch", seq, "applied", c.appliedSeq)
		return nil
	}
	c.appliedSeq = seq
	c.store.Load(notes)
	replayed := 0
	for _, m := range pending {
		if m.seq > since {
			m.apply(c.store)
			replayed++
		}
	}
	c.loaded = true
	c.banner = ""
	c.logger.Debug("notes loaded", "count", len(notes), "replayed", replayed)
	return nil
}

// commitLocked applies a store mutation, journals it for in-flight fetches
// and returns the result of the first application.
func (c *Controller) commitLocked(apply func(*store.Store) bool) bool {
	ok := apply(c.store)
	c.mutSeq++
	if c.fetching > 0 {
		c.journal = append(c.journal, mutation{seq: c.mutSeq, apply: apply})
	}
	return ok
}

// Create submits a new note. Validation failures are reported inline
// without contacting the remote.
func (c *Controller) Create(ctx context.Context, form note.Form) error {
	form = form.Normalized()
	rev, err := c.beginSubmit(form, func() error { return nil })
	if err != nil {
		return err
	}

	callCtx, done := c.bind(ctx)
	created, err := c.api.CreateNote(callCtx, form.Title, form.Body)
	done()

	c.mu.Lock()
	c.submitting = false
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if err != nil {
		c.banner = MsgCreateFailed
		c.mu.Unlock()
		c.logger.Error("create note failed", "error", err)
		c.notifier.Notify(MsgCreateFailed, notify.KindError)
		return fmt.Errorf("dashboard: create note: %w", err)
	}
	c.commitLocked(func(s *store.Store) bool {
		if _, ok := s.Get(created.ID); ok {
			return false
		}
		s.InsertFront(created)
		return true
	})
	c.closeIfCurrentLocked(rev)
	c.mu.Unlock()

	c.logger.Info("note created", "note_id", created.ID)
	c.notifier.Notify(MsgCreated, notify.KindSuccess)
	return nil
}

// Update replaces the note being edited. The editor must be editing id.
func (c *Controller) Update(ctx context.Context, id note.ID, form note.Form) error {
	form = form.Normalized()
	rev, err := c.beginSubmit(form, func() error {
		if !c.session.IsEditing(id) {
			return ErrNotEditing
		}
		return nil
	})
	if err != nil {
		return err
	}

	callCtx, done := c.bind(ctx)
	updated, err := c.api.UpdateNote(callCtx, id, form.Title, form.Body)
	done()

	c.mu.Lock()
	c.submitting = false
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("update note failed", "note_id", id, "error", err)
		c.notifier.Notify(MsgUpdateFailed, notify.KindError)
		return fmt.Errorf("dashboard: update note %s: %w", id, err)
	}
	if updated.ID.IsZero() {
		updated.ID = id
	}
	if !c.commitLocked(func(s *store.Store) bool { return s.Replace(id, updated) }) {
		c.logger.Warn("updated note no longer in collection", "note_id", id)
	}
	c.closeIfCurrentLocked(rev)
	c.mu.Unlock()

	c.logger.Info("note updated", "note_id", id)
	c.notifier.Notify(MsgUpdated, notify.KindSuccess)
	return nil
}

// beginSubmit runs the shared pre-flight of Create and Update under the
// lock and marks a submission in flight. It returns the session revision
// the submission belongs to.
func (c *Controller) beginSubmit(form note.Form, precondition func() error) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		return 0, ErrUnmounted
	}
	if err := precondition(); err != nil {
		return 0, err
	}
	if c.submitting {
		return 0, ErrSubmitInProgress
	}
	if err := form.Validate(); err != nil {
		c.formError = strings.TrimPrefix(err.Error(), note.ErrInvalidForm.Error()+": ")
		return 0, err
	}
	c.formError = ""
	c.submitting = true
	return c.session.Revision(), nil
}

func (c *Controller) closeIfCurrentLocked(rev uint64) {
	if c.session.Revision() == rev {
		c.session.Close()
		c.formError = ""
	}
}

// Delete removes a note after the user confirms it. Deleting a note that
// is already gone locally is not an error.
func (c *Controller) Delete(ctx context.Context, id note.ID) error {
	c.mu.Lock()
	unmounted := c.unmounted
	c.mu.Unlock()
	if unmounted {
		return ErrUnmounted
	}

	callCtx, done := c.bind(ctx)
	defer done()

	ok, err := c.confirmer.Confirm(callCtx, DeleteConfirmMsg)
	if err != nil {
		c.logger.Warn("delete confirmation failed", "note_id", id, "error", err)
		return fmt.Errorf("dashboard: confirm delete: %w", err)
	}
	if !ok {
		return ErrNotConfirmed
	}

	err = c.api.DeleteNote(callCtx, id)

	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("delete note failed", "note_id", id, "error", err)
		c.notifier.Notify(MsgDeleteFailed, notify.KindError)
		return fmt.Errorf("dashboard: delete note %s: %w", id, err)
	}
	if !c.commitLocked(func(s *store.Store) bool { return s.Remove(id) }) {
		c.logger.Debug("deleted note was already absent", "note_id", id)
	}
	if c.session.IsEditing(id) {
		c.session.Close()
		c.formError = ""
	}
	c.mu.Unlock()

	c.logger.Info("note deleted", "note_id", id)
	c.notifier.Notify(MsgDeleted, notify.KindSuccess)
	return nil
}

// BeginCreate opens the editor in create mode.
func (c *Controller) BeginCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.OpenForCreate()
	c.formError = ""
}

// BeginEdit opens the editor on a copy of n.
func (c *Controller) BeginEdit(n note.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.OpenForEdit(n)
	c.formError = ""
}

// CancelEdit closes the editor.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Close()
	c.formError = ""
}

// SetQuery sets the search query.
func (c *Controller) SetQuery(query string) {
	c.store.SetQuery(query)
}

// Unmount tears the controller down. In-flight calls are cancelled and
// their results discarded.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.unmounted = true
	c.mu.Unlock()
	c.cancel()
	c.logger.Debug("dashboard unmounted")
}
