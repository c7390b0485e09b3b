package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/view"
)

func TestToneColor(t *testing.T) {
	tests := []struct {
		tone view.Tone
		want lipgloss.Color
	}{
		{view.TonePositive, "#4caf50"},
		{view.ToneOverbought, "#f44336"},
		{view.ToneNeutral, "#ff9800"},
		{view.ToneNone, TextPrimary},
	}
	for _, tt := range tests {
		if got := ToneColor(tt.tone); got != tt.want {
			t.Errorf("ToneColor(%q) = %q, want %q", tt.tone, got, tt.want)
		}
	}
}

func TestStatusLineText(t *testing.T) {
	line := view.StatusLine{Online: true, BotReady: true, Text: view.StatusReady}
	if !strings.Contains(StatusLine(line), view.StatusReady) {
		t.Error("status text missing")
	}
	if !strings.Contains(StatusLine(view.StatusLine{}), "Checking") {
		t.Error("unknown status should show a checking placeholder")
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"NABIL", 10, "NABIL"},
		{"NABIL BANK LIMITED", 8, "NABIL..."},
		{"NABIL", 3, "NAB"},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestDivider(t *testing.T) {
	if Divider(0) != "" {
		t.Error("zero width divider not empty")
	}
	if !strings.Contains(Divider(3), "───") {
		t.Error("divider missing rule")
	}
}
