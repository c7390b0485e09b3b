package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// MetricTile displays one slot: the value coloured by its tone above a
// muted label.
type MetricTile struct {
	Label  string
	Metric view.Metric
	Width  int
}

// Render returns the styled tile. Unwritten slots show a dash.
func (m MetricTile) Render() string {
	text := m.Metric.Text
	if text == "" {
		text = "-"
	}

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.ToneColor(m.Metric.Tone)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	tile := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(text),
		labelStyle.Render(m.Label),
	)

	if m.Width > 0 {
		return lipgloss.NewStyle().Width(m.Width).Align(lipgloss.Center).Render(tile)
	}
	return tile
}

// MetricGrid lays tiles out in rows of perRow.
func MetricGrid(tiles []MetricTile, perRow int) string {
	if perRow <= 0 {
		perRow = len(tiles)
	}

	var rows []string
	for start := 0; start < len(tiles); start += perRow {
		end := min(start+perRow, len(tiles))
		var cells []string
		for _, t := range tiles[start:end] {
			cells = append(cells, t.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
