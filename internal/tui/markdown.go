package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

// renderMarkdown renders a note body, falling back to the raw text when
// glamour cannot.
func renderMarkdown(input string, width int, dark bool) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := getRenderer(width, dark)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.Trim(out, "\n")
}

func getRenderer(width int, dark bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	k := rendererKey{width: width, dark: dark}
	if r, ok := renderers[k]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[k] = r
	return r
}

func styleConfig(dark bool) glamouransi.StyleConfig {
	base := glamourstyles.LightStyleConfig
	if dark {
		base = glamourstyles.DarkStyleConfig
	}
	// Spacing is handled by the surrounding lipgloss layout.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}
