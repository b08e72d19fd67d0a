// Package tui implements the terminal notes dashboard.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/notes-dash/internal/auth"
	"github.com/cristianoliveira/notes-dash/internal/dashboard"
	"github.com/cristianoliveira/notes-dash/internal/editor"
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/notify"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeLines is the space taken by navbar, search line, toast and footer.
	chromeLines = 7
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEditor
)

// Options configures a dashboard Model.
type Options struct {
	Controller *dashboard.Controller
	Toasts     *notify.Channel
	Session    *auth.Session
	// Context bounds every remote call started by the dashboard.
	Context context.Context
	Theme   string
	Preview bool
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx     context.Context
	ctrl    *dashboard.Controller
	toasts  *notify.Channel
	session *auth.Session

	keys     keyMap
	help     help.Model
	search   textinput.Model
	title    textinput.Model
	body     textarea.Model
	viewport viewport.Model
	styles   styles
	theme    string
	preview  bool

	mode        mode
	cursor      int
	bodyFocused bool
	confirms    []confirmRequestMsg
	width       int
	height      int
}

// NewModel creates the dashboard model.
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Theme != ThemeLight {
		opts.Theme = ThemeDark
	}
	if opts.Toasts == nil {
		opts.Toasts = notify.New()
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "filter by title"

	title := textinput.New()
	title.Prompt = "Title: "
	title.CharLimit = note.MaxTitleLength

	body := textarea.New()
	body.Placeholder = "Write your note (markdown)"
	body.ShowLineNumbers = false
	body.CharLimit = note.MaxBodyBytes

	m := &Model{
		ctx:      opts.Context,
		ctrl:     opts.Controller,
		toasts:   opts.Toasts,
		session:  opts.Session,
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   search,
		title:    title,
		body:     body,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeLines),
		styles:   newStyles(opts.Theme),
		theme:    opts.Theme,
		preview:  opts.Preview,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts the first fetch for a signed-in user.
func (m *Model) Init() tea.Cmd {
	if !m.signedIn() {
		return nil
	}
	return m.fetchCmd()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case fetchDoneMsg:
		m.sync()
		return m, nil
	case opDoneMsg:
		m.sync()
		m.reportRejection(msg.err)
		return m, nil
	case toastChangedMsg:
		return m, nil
	case confirmRequestMsg:
		m.confirms = append(m.confirms, msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) signedIn() bool {
	return m.session != nil && m.session.SignedIn()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if !m.signedIn() {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}
	if len(m.confirms) > 0 {
		m.handleConfirmKey(msg)
		return m, nil
	}
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeEditor:
		return m.handleEditorKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.answerConfirm(true)
	case "n", "N", "esc":
		m.answerConfirm(false)
	}
}

func (m *Model) answerConfirm(ok bool) {
	req := m.confirms[0]
	m.confirms = m.confirms[1:]
	req.answer <- ok
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.ctrl.Store().Query())
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.New):
		m.ctrl.BeginCreate()
		return m, m.openEditor(note.Form{})
	case key.Matches(msg, m.keys.Edit):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.ctrl.BeginEdit(n)
		return m, m.openEditor(note.FormOf(n))
	case key.Matches(msg, m.keys.Delete):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(n.ID)
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
	case key.Matches(msg, m.keys.Retry):
		return m, m.fetchCmd()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		m.refreshViewport()
	case key.Matches(msg, m.keys.Logout):
		m.logout()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.applyQuery()
		m.leaveSearch()
		return m, nil
	case tea.KeyEnter:
		m.leaveSearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return m, cmd
}

func (m *Model) leaveSearch() {
	m.search.Blur()
	m.mode = modeList
}

// applyQuery writes the search box straight into the store.
func (m *Model) applyQuery() {
	m.ctrl.Store().SetQuery(m.search.Value())
	m.cursor = 0
	m.refreshViewport()
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.CancelEdit()
		m.closeEditor()
		return m, nil
	case "tab":
		m.focusBody(!m.bodyFocused)
		return m, nil
	case "ctrl+s":
		return m, m.submitCmd()
	}
	var cmd tea.Cmd
	if m.bodyFocused {
		m.body, cmd = m.body.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return m, cmd
}

func (m *Model) openEditor(form note.Form) tea.Cmd {
	m.mode = modeEditor
	m.title.SetValue(form.Title)
	m.title.CursorEnd()
	m.body.SetValue(form.Body)
	return m.focusBody(false)
}

func (m *Model) focusBody(body bool) tea.Cmd {
	m.bodyFocused = body
	if body {
		m.title.Blur()
		return m.body.Focus()
	}
	m.body.Blur()
	return m.title.Focus()
}

func (m *Model) closeEditor() {
	m.title.Blur()
	m.body.Blur()
	m.title.Reset()
	m.body.Reset()
	m.mode = modeList
}

// sync aligns local UI state with the controller after a remote call.
func (m *Model) sync() {
	snap := m.ctrl.Snapshot()
	if m.mode == modeEditor && snap.EditorMode == editor.ModeClosed {
		m.closeEditor()
	}
	m.clampCursor(len(snap.Visible))
	m.refreshViewport()
}

// reportRejection toasts submissions the controller refused locally. Remote
// failures are already surfaced by the controller.
func (m *Model) reportRejection(err error) {
	switch {
	case errors.Is(err, dashboard.ErrSubmitInProgress):
		m.toasts.Notify(dashboard.MsgSubmitBusy, notify.KindInfo)
	case errors.Is(err, dashboard.ErrNotEditing):
		m.toasts.Notify(dashboard.MsgNotEditing, notify.KindInfo)
	}
}

func (m *Model) fetchCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{err: ctrl.FetchAll(ctx)}
	}
}

func (m *Model) deleteCmd(id note.ID) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: ctrl.Delete(ctx, id)}
	}
}

func (m *Model) submitCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	form := note.Form{Title: m.title.Value(), Body: m.body.Value()}
	snap := ctrl.Snapshot()
	if snap.EditorMode == editor.ModeEdit {
		id := snap.Editing.ID
		return func() tea.Msg {
			return opDoneMsg{err: ctrl.Update(ctx, id, form)}
		}
	}
	return func() tea.Msg {
		return opDoneMsg{err: ctrl.Create(ctx, form)}
	}
}

func (m *Model) selected() (note.Note, bool) {
	visible := m.ctrl.Store().Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return note.Note{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor(len(m.ctrl.Store().Visible()))
	m.refreshViewport()
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) toggleTheme() {
	if m.theme == ThemeDark {
		m.theme = ThemeLight
	} else {
		m.theme = ThemeDark
	}
	m.styles = newStyles(m.theme)
	m.refreshViewport()
}

// logout signs the user out and tears the dashboard down.
func (m *Model) logout() {
	for len(m.confirms) > 0 {
		m.answerConfirm(false)
	}
	m.session.Logout()
	m.ctrl.Unmount()
	m.toasts.Dismiss()
	m.mode = modeList
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	for len(m.confirms) > 0 {
		m.answerConfirm(false)
	}
	return m, tea.Quit
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.search.Width = width - len(m.search.Prompt) - 2
	m.title.Width = width - len(m.title.Prompt) - 6
	m.body.SetWidth(width - 6)
	m.body.SetHeight(max(3, height/3))
	m.viewport.Width = width
	m.refreshViewport()
}
