package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/view"
)

// Himalayan Night -- Dark Palette
// Deep slate backgrounds with glacier-blue accents.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0b1020") // Deepest -- main background
	BgPanel   = lipgloss.Color("#121829") // Panel/card background
	BgSurface = lipgloss.Color("#1b2338") // Elevated surface
	BgHover   = lipgloss.Color("#26304a") // Selected row

	// Accents
	AccentPrimary   = lipgloss.Color("#5ab0ff") // Glacier blue -- focus, titles
	AccentSecondary = lipgloss.Color("#1f77b4") // Chart blue -- secondary headings
	AccentGold      = lipgloss.Color("#f5a623") // Gold -- selected strategy

	// Status
	StatusOK    = lipgloss.Color("#4caf50") // Green
	StatusWarn  = lipgloss.Color("#ff9800") // Amber
	StatusError = lipgloss.Color("#f44336") // Red
	StatusInfo  = lipgloss.Color("#5ab0ff") // Blue

	// Text
	TextPrimary   = lipgloss.Color("#f0f2f6") // High contrast
	TextSecondary = lipgloss.Color("#9aa5b8") // Dimmed
	TextMuted     = lipgloss.Color("#66718a") // Very dim

	// Borders
	BorderNormal  = lipgloss.Color("#2b3550") // Subtle
	BorderFocused = lipgloss.Color("#5ab0ff") // Focus ring
)

// ToneColor maps a metric tone to its foreground colour. Untoned metrics
// use TextPrimary.
func ToneColor(t view.Tone) lipgloss.Color {
	if c := t.Color(); c != "" {
		return lipgloss.Color(c)
	}
	return TextPrimary
}

// Tone renders s in the colour of t.
func Tone(s string, t view.Tone) string {
	return lipgloss.NewStyle().Foreground(ToneColor(t)).Bold(t != view.ToneNone).Render(s)
}
