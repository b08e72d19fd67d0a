package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/notes-dash/internal/dashboard"
	"github.com/cristianoliveira/notes-dash/internal/editor"
	"github.com/cristianoliveira/notes-dash/internal/notify"
)

const (
	loadingText  = "Loading notes..."
	signedOutMsg = "You are signed out."
)

// View renders the dashboard, or the sign-in gate for a signed-out user.
func (m *Model) View() string {
	if !m.signedIn() {
		return m.gateView()
	}
	snap := m.ctrl.Snapshot()

	var s strings.Builder
	s.WriteString(m.navbarView())
	s.WriteString("\n")
	if snap.Banner != "" {
		s.WriteString(m.styles.banner.Render(snap.Banner + " (press r to retry)"))
		s.WriteString("\n")
	}
	if m.mode == modeSearch || snap.Query != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n")
	}

	switch {
	case snap.Loading && !snap.Loaded:
		s.WriteString(m.styles.muted.Render(loadingText))
	case len(snap.Visible) == 0:
		s.WriteString(m.styles.muted.Render(snap.EmptyMessage()))
	default:
		s.WriteString(m.viewport.View())
		if p := m.previewView(snap); p != "" {
			s.WriteString("\n")
			s.WriteString(p)
		}
	}

	if m.mode == modeEditor {
		s.WriteString("\n")
		s.WriteString(m.editorView(snap))
	}
	if len(m.confirms) > 0 {
		s.WriteString("\n")
		s.WriteString(m.styles.confirm.Render(m.confirms[0].prompt + "  [y/n]"))
	}
	if t := m.toastView(); t != "" {
		s.WriteString("\n")
		s.WriteString(t)
	}
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m *Model) gateView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.brand.Render("notes-dash"),
		"",
		signedOutMsg,
		m.styles.muted.Render("Set api_token in your config and start notes-dash again to sign in."),
		"",
		m.styles.muted.Render("q: quit"),
	)
}

func (m *Model) navbarView() string {
	name := "there"
	if u := m.session.User(); u != nil && u.Name != "" {
		name = u.Name
	}
	left := m.styles.brand.Render("notes-dash") + "  Welcome back, " + name
	right := m.styles.muted.Render(m.theme + " theme")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.navbar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) editorView(snap dashboard.Snapshot) string {
	heading := "New note"
	if snap.EditorMode == editor.ModeEdit {
		heading = "Edit note"
	}
	lines := []string{
		m.styles.brand.Render(heading),
		m.title.View(),
		m.body.View(),
	}
	if snap.FormError != "" {
		lines = append(lines, m.styles.formErr.Render(snap.FormError))
	}
	footer := "ctrl+s: save  tab: switch field  esc: cancel"
	if snap.Submitting {
		footer = "Saving..."
	}
	lines = append(lines, m.styles.muted.Render(footer))
	return m.styles.modal.Render(strings.Join(lines, "\n"))
}

func (m *Model) toastView() string {
	current, ok := m.toasts.Current()
	if !ok {
		return ""
	}
	style := m.styles.info
	switch current.Kind {
	case notify.KindSuccess:
		style = m.styles.success
	case notify.KindError:
		style = m.styles.failure
	}
	return style.Render(current.Message) + m.styles.muted.Render("  x: dismiss")
}

func (m *Model) previewView(snap dashboard.Snapshot) string {
	if !m.preview || m.mode == modeEditor || m.cursor >= len(snap.Visible) {
		return ""
	}
	body := snap.Visible[m.cursor].Body
	if strings.TrimSpace(body) == "" {
		return ""
	}
	out := renderMarkdown(body, m.width-2, m.theme == ThemeDark)
	lines := strings.Split(out, "\n")
	if limit := m.previewHeight(); len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) listHeight() int {
	h := m.height - chromeLines
	if m.preview {
		h /= 2
	}
	return max(3, h)
}

func (m *Model) previewHeight() int {
	return max(3, m.height-chromeLines-m.listHeight())
}

// refreshViewport rebuilds the list rows and keeps the cursor visible.
func (m *Model) refreshViewport() {
	if m.ctrl == nil {
		return
	}
	visible := m.ctrl.Store().Visible()
	rows := make([]string, len(visible))
	titleWidth := max(10, m.width/3)
	for i, n := range visible {
		title := truncate(n.Title, titleWidth)
		line := fmt.Sprintf("%-*s  %s", titleWidth, title, m.styles.body.Render(truncate(firstLine(n.Body), max(0, m.width-titleWidth-4))))
		if i == m.cursor {
			line = m.styles.selected.Render(fmt.Sprintf("%-*s", titleWidth, title)) + "  " + truncate(firstLine(n.Body), max(0, m.width-titleWidth-4))
		}
		rows[i] = line
	}
	m.viewport.Height = m.listHeight()
	m.viewport.SetContent(strings.Join(rows, "\n"))
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) <= 1 {
		return string(r[:min(len(r), max(width, 0))])
	}
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
