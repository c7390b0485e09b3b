package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

// Picker is the stock list with a type-ahead filter.
type Picker struct {
	symbols  []string
	filtered []string
	cursor   int
	input    textinput.Model

	Placeholder string
	Width       int
	Height      int
}

// NewPicker creates an empty picker.
func NewPicker() Picker {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 16
	return Picker{input: ti}
}

// SetItems replaces the list and reapplies the filter. The cursor stays on
// the same symbol when it is still listed.
func (p *Picker) SetItems(symbols []string, placeholder string) {
	current := p.Selected()
	p.symbols = symbols
	p.Placeholder = placeholder
	p.refilter()
	for i, s := range p.filtered {
		if s == current {
			p.cursor = i
			return
		}
	}
}

// Len returns the number of visible symbols.
func (p Picker) Len() int { return len(p.filtered) }

// Selected returns the symbol under the cursor, or "".
func (p Picker) Selected() string {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return ""
	}
	return p.filtered[p.cursor]
}

// Move shifts the cursor by delta, clamped to the list.
func (p *Picker) Move(delta int) {
	if len(p.filtered) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(len(p.filtered)-1, p.cursor+delta))
}

// Filtering reports whether the filter input has focus.
func (p Picker) Filtering() bool { return p.input.Focused() }

// Focus starts filter input.
func (p *Picker) Focus() tea.Cmd { return p.input.Focus() }

// Blur ends filter input and keeps the filter.
func (p *Picker) Blur() { p.input.Blur() }

// ClearFilter empties the filter and ends input.
func (p *Picker) ClearFilter() {
	p.input.SetValue("")
	p.input.Blur()
	p.refilter()
}

// SetFilter replaces the filter text.
func (p *Picker) SetFilter(q string) {
	p.input.SetValue(q)
	p.refilter()
}

// Filter returns the current filter text.
func (p Picker) Filter() string { return p.input.Value() }

// Update forwards key input to the filter while it has focus.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.input.Focused() {
		return p, nil
	}
	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return p, cmd
}

// refilter keeps symbols containing the filter text, case-insensitively.
func (p *Picker) refilter() {
	q := strings.ToUpper(strings.TrimSpace(p.input.Value()))
	var filtered []string
	for _, s := range p.symbols {
		if q == "" || strings.Contains(strings.ToUpper(s), q) {
			filtered = append(filtered, s)
		}
	}
	p.filtered = filtered
	if p.cursor >= len(p.filtered) {
		p.cursor = max(0, len(p.filtered)-1)
	}
}

// View renders the filter line and a window of the list around the cursor.
func (p Picker) View() string {
	width := p.Width
	if width <= 0 {
		width = 20
	}
	height := p.Height
	if height <= 2 {
		height = 10
	}
	rows := height - 2

	var lines []string
	if p.input.Focused() || p.input.Value() != "" {
		lines = append(lines, p.input.View())
	} else {
		lines = append(lines, styles.Dim(styles.TruncateWithEllipsis(p.Placeholder, width)))
	}

	if len(p.filtered) == 0 {
		lines = append(lines, styles.Dim("  (none)"))
	}

	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	end := min(start+rows, len(p.filtered))

	for i := start; i < end; i++ {
		marker := "  "
		if i == p.cursor {
			marker = "› "
		}
		lines = append(lines, styles.TableRow(i == p.cursor).Width(width).Render(marker+p.filtered[i]))
	}

	if len(p.filtered) > rows {
		lines = append(lines, styles.Dim(fmt.Sprintf("  %d/%d", p.cursor+1, len(p.filtered))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
