package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// TerminalRenderer renders the narrative with ANSI styling for a terminal.
type TerminalRenderer struct {
	tr *glamour.TermRenderer
}

// NewTerminalRenderer builds a glamour renderer. style is "auto" (or empty)
// to detect the terminal background, or a glamour standard style name such
// as "dark", "light" or "notty". width <= 0 disables word wrapping.
func NewTerminalRenderer(style string, width int) (*TerminalRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width, 0))}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	return &TerminalRenderer{tr: tr}, nil
}

// Render implements Renderer. On a glamour failure the raw narrative is
// returned together with the error so callers can still show something.
func (t *TerminalRenderer) Render(narrative string) (string, error) {
	out, err := t.tr.Render(narrative)
	if err != nil {
		return narrative, fmt.Errorf("rendering narrative: %w", err)
	}
	return out, nil
}
