package tui

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by the dashboard.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type styles struct {
	navbar   lipgloss.Style
	brand    lipgloss.Style
	banner   lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	body     lipgloss.Style
	muted    lipgloss.Style
	modal    lipgloss.Style
	formErr  lipgloss.Style
	confirm  lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	info     lipgloss.Style
}

func newStyles(theme string) styles {
	fg, subtle, accent := lipgloss.Color("252"), lipgloss.Color("241"), lipgloss.Color("39")
	if theme == ThemeLight {
		fg, subtle, accent = lipgloss.Color("235"), lipgloss.Color("245"), lipgloss.Color("25")
	}
	toast := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0"))
	return styles{
		navbar:   lipgloss.NewStyle().Foreground(fg).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(subtle),
		brand:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		banner:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1),
		row:      lipgloss.NewStyle().Foreground(fg),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(accent),
		body:     lipgloss.NewStyle().Foreground(subtle),
		muted:    lipgloss.NewStyle().Foreground(subtle).Italic(true),
		modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		formErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		confirm:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1),
		success:  toast.Background(lipgloss.Color("34")),
		failure:  toast.Background(lipgloss.Color("160")),
		info:     toast.Background(accent),
	}
}
