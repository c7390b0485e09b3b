package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

// TabBar renders horizontal tab selection. The analyst screen uses it for
// the strategy choice.
type TabBar struct {
	Tabs      []string
	ActiveTab int
	Width     int
}

// Active returns the selected tab label, or "" when there are no tabs.
func (t TabBar) Active() string {
	if t.ActiveTab < 0 || t.ActiveTab >= len(t.Tabs) {
		return ""
	}
	return t.Tabs[t.ActiveTab]
}

// Next selects the following tab, wrapping around.
func (t *TabBar) Next() {
	if len(t.Tabs) > 0 {
		t.ActiveTab = (t.ActiveTab + 1) % len(t.Tabs)
	}
}

// Prev selects the preceding tab, wrapping around.
func (t *TabBar) Prev() {
	if len(t.Tabs) > 0 {
		t.ActiveTab = (t.ActiveTab - 1 + len(t.Tabs)) % len(t.Tabs)
	}
}

// Select activates the tab labelled name. Unknown names are ignored.
func (t *TabBar) Select(name string) {
	for i, tab := range t.Tabs {
		if tab == name {
			t.ActiveTab = i
			return
		}
	}
}

// Render returns the styled tab bar string.
func (t TabBar) Render() string {
	if len(t.Tabs) == 0 {
		return ""
	}

	activeStyle := lipgloss.NewStyle().
		Foreground(styles.AccentGold).
		Bold(true).
		Underline(true).
		PaddingLeft(1).
		PaddingRight(1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		PaddingLeft(1).
		PaddingRight(1)

	var tabs []string
	for i, tab := range t.Tabs {
		if i == t.ActiveTab {
			tabs = append(tabs, activeStyle.Render(tab))
		} else {
			tabs = append(tabs, inactiveStyle.Render(tab))
		}
	}

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("│")
	content := styles.Label.Render(" Strategy ") + strings.Join(tabs, sep)

	barStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Width(t.Width)

	return barStyle.Render(content)
}
