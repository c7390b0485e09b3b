package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "q", "tab", "up/dn"
	Desc string // "quit", "switch", "navigate"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var parts []string
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, descStyle.Render(" • "))

	footerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return footerStyle.Render(content)
}

// AnalystFooter returns the footer for the main screen.
func AnalystFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "stocks"},
			{Key: "enter", Desc: "select"},
			{Key: "/", Desc: "filter"},
			{Key: "a", Desc: "analyze"},
			{Key: "s", Desc: "strategy"},
			{Key: "r", Desc: "status"},
			{Key: "R", Desc: "reload"},
			{Key: "pgup/pgdn", Desc: "scroll"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// FilterFooter returns the footer shown while typing a filter.
func FilterFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "type", Desc: "filter"},
			{Key: "↑↓", Desc: "move"},
			{Key: "enter", Desc: "select"},
			{Key: "esc", Desc: "clear"},
		},
		Width: width,
	}
}
