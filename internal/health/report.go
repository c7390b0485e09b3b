package health

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

var categoryOrder = []string{CategoryConfig, CategoryAPI, CategoryData}

func categoryLabel(cat string) string {
	switch cat {
	case CategoryConfig:
		return "Configuration"
	case CategoryAPI:
		return "Analysis Backend"
	case CategoryData:
		return "Local Data"
	default:
		return cat
	}
}

// FormatReport creates a lipgloss-styled report for the doctor command.
func FormatReport(r *Report) string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render("Client Diagnostics")
	b.WriteString("\n  " + title + "\n")
	b.WriteString("  " + styles.Divider(50) + "\n")

	grouped := make(map[string][]CheckResult)
	for _, res := range r.Results {
		grouped[res.Category] = append(grouped[res.Category], res)
	}

	nameStyle := lipgloss.NewStyle().Width(16).Foreground(styles.TextPrimary)
	msgStyle := lipgloss.NewStyle().Width(52).Foreground(styles.TextSecondary)
	durStyle := lipgloss.NewStyle().Width(8).Foreground(styles.TextMuted).Align(lipgloss.Right)
	catStyle := lipgloss.NewStyle().
		Foreground(styles.AccentSecondary).
		Bold(true).
		MarginTop(1)

	for _, cat := range categoryOrder {
		results, ok := grouped[cat]
		if !ok || len(results) == 0 {
			continue
		}

		b.WriteString("\n  " + catStyle.Render(categoryLabel(cat)) + "\n")

		for _, res := range results {
			symbol := statusSymbol(res.Status)
			name := nameStyle.Render(res.Name)
			msg := msgStyle.Render(styles.TruncateWithEllipsis(res.Message, 50))
			dur := durStyle.Render(formatDuration(res.Duration))
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n", symbol, name, msg, dur))
		}
	}

	// Summary line
	b.WriteString("\n  " + styles.Divider(50) + "\n")
	summary := fmt.Sprintf("%d/%d passed", r.Passed, r.Total)
	if r.Warned > 0 {
		summary += fmt.Sprintf(", %d warning(s)", r.Warned)
	}
	if r.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", r.Failed)
	}
	summaryStyled := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(summary)
	b.WriteString("  " + summaryStyled)

	// Overall status
	b.WriteString("  ")
	b.WriteString(overallBadge(r))
	b.WriteString("\n")

	// Total duration
	totalDur := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(fmt.Sprintf("  completed in %s", formatDuration(r.Duration)))
	b.WriteString(totalDur + "\n")

	return b.String()
}

// statusSymbol returns a color-coded status symbol.
func statusSymbol(s Status) string {
	switch s {
	case StatusPass:
		return lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render(s.Symbol())
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarn).Bold(true).Render(s.Symbol())
	case StatusFail:
		return lipgloss.NewStyle().Foreground(styles.StatusError).Bold(true).Render(s.Symbol())
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render("?")
	}
}

// overallBadge returns a styled overall status badge.
func overallBadge(r *Report) string {
	if r.Failed > 0 {
		return lipgloss.NewStyle().
			Foreground(styles.StatusError).
			Bold(true).
			Render("UNHEALTHY")
	}
	if r.Warned > 0 {
		return lipgloss.NewStyle().
			Foreground(styles.StatusWarn).
			Bold(true).
			Render("DEGRADED")
	}
	return lipgloss.NewStyle().
		Foreground(styles.StatusOK).
		Bold(true).
		Render("HEALTHY")
}

// formatDuration formats a time.Duration to a short human-readable string.
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		return "<1ms"
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}

type jsonResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Millis   int64  `json:"duration_ms"`
}

type jsonReport struct {
	Healthy bool         `json:"healthy"`
	Passed  int          `json:"passed"`
	Warned  int          `json:"warned"`
	Failed  int          `json:"failed"`
	Total   int          `json:"total"`
	Results []jsonResult `json:"results"`
}

// MarshalJSON encodes the report with lowercase status names.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := jsonReport{
		Healthy: r.Healthy,
		Passed:  r.Passed,
		Warned:  r.Warned,
		Failed:  r.Failed,
		Total:   r.Total,
		Results: make([]jsonResult, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		out.Results = append(out.Results, jsonResult{
			Name:     res.Name,
			Category: res.Category,
			Status:   res.Status.String(),
			Message:  res.Message,
			Millis:   res.Duration.Milliseconds(),
		})
	}
	return json.Marshal(out)
}
