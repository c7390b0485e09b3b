package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/view"
)

// ---------------------------------------------------------------------------
// Panel styles
// ---------------------------------------------------------------------------

// Panel is the default panel style: BgPanel background, rounded border in
// BorderNormal, with horizontal padding.
var Panel = lipgloss.NewStyle().
	Background(BgPanel).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// PanelFocused is identical to Panel but uses the focus border.
var PanelFocused = Panel.
	BorderForeground(BorderFocused)

// ErrorPanel frames error messages in the analysis region.
var ErrorPanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(StatusError).
	Foreground(StatusError).
	Padding(0, 1)

// Card is a compact elevated surface for a single metric.
var Card = lipgloss.NewStyle().
	Background(BgSurface).
	Border(lipgloss.NormalBorder()).
	BorderForeground(BorderNormal).
	PaddingLeft(1).
	PaddingRight(1)

// ---------------------------------------------------------------------------
// Badge helpers
// ---------------------------------------------------------------------------

// Badge returns an inline colored badge such as "● ONLINE" in the given
// color.
func Badge(text string, color lipgloss.Color) string {
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	label := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(text)
	return dot + " " + label
}

// StatusBadge returns a pre-styled badge for common status values.
// Recognized statuses: "ok", "warn", "error", "info". Anything else
// falls back to the "info" style.
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "ok":
		return Badge("OK", StatusOK)
	case "warn":
		return Badge("WARN", StatusWarn)
	case "error":
		return Badge("ERROR", StatusError)
	case "info":
		return Badge("INFO", StatusInfo)
	default:
		return Badge(strings.ToUpper(status), StatusInfo)
	}
}

// StatusLine renders the backend indicator in the colour of its state.
func StatusLine(s view.StatusLine) string {
	color := StatusOK
	switch {
	case !s.Online:
		color = StatusError
	case !s.BotReady:
		color = StatusWarn
	}
	text := s.Text
	if text == "" {
		text = "Checking API..."
		color = TextMuted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

// ---------------------------------------------------------------------------
// Typography styles
// ---------------------------------------------------------------------------

// Title is bold AccentPrimary text for section headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Subtitle is regular TextSecondary text for secondary headings.
var Subtitle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// Label is TextMuted text for field labels. Pass uppercase strings for the
// conventional LABEL look.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for data values.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// ---------------------------------------------------------------------------
// Table helpers
// ---------------------------------------------------------------------------

// TableHeader is bold, underlined, TextSecondary for column headings.
var TableHeader = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Bold(true).
	Underline(true)

// TableRow returns a style for a picker row. Selected rows are
// highlighted.
func TableRow(selected bool) lipgloss.Style {
	if selected {
		return lipgloss.NewStyle().
			Foreground(AccentPrimary).
			Background(BgHover).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// ---------------------------------------------------------------------------
// Divider
// ---------------------------------------------------------------------------

// Divider returns a horizontal rule of the given width using the ─ character
// rendered in BorderNormal color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	line := strings.Repeat("─", width)
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(line)
}
