package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// Header renders the app header bar.
type Header struct {
	Status view.StatusLine
	Symbol string // selected stock, "" when none
	Source string // catalog origin, "backend" or "csv"
	Width  int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render(styles.CompactLogo)

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  │  ")

	content := logo + sep + styles.StatusLine(h.Status)

	if h.Symbol != "" {
		content += sep + styles.Label.Render("Stock: ") +
			lipgloss.NewStyle().Foreground(styles.AccentGold).Bold(true).Render(h.Symbol)
	}
	if h.Source != "" {
		content += sep + styles.Label.Render("List: ") + styles.Value.Render(h.Source)
	}

	headerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return headerStyle.Render(content)
}
