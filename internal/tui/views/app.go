package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/analyst"
	"github.com/Dallionking/nepse-analyst/internal/catalog"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/models"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// AppConfig carries everything the interactive screen needs.
type AppConfig struct {
	Backend       analyst.Backend
	CSVPath       string
	Watch         bool
	Strategy      string
	Strategies    []string
	Currency      string
	Locale        string
	MarkdownStyle string
	Logger        *zap.Logger
}

// RunApp launches the full-screen analyst TUI and blocks until the user
// quits.
//
// Controller writes reach the model through a ProgramPort attached to the
// program, and backend calls run as commands bounded by a context that is
// cancelled when the program exits.
func RunApp(ctx context.Context, cfg AppConfig) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	port := models.NewProgramPort()
	app := analyst.NewApp(cfg.Backend, port, analyst.Options{
		CSVPath:   cfg.CSVPath,
		Strategy:  cfg.Strategy,
		Renderer:  markdown.Passthrough{},
		Formatter: view.NewFormatter(cfg.Currency, cfg.Locale),
		Logger:    log,
	})

	// A missing data directory only disables live reload.
	var watcher *catalog.Watcher
	if cfg.Watch {
		w, err := catalog.NewWatcher(cfg.CSVPath, log.Named("watcher"))
		if err != nil {
			log.Warn("csv watch disabled", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	model := models.NewAppModel(ctx, app, models.AppOptions{
		Strategies:    cfg.Strategies,
		MarkdownStyle: ResolveMarkdownStyle(cfg.MarkdownStyle),
		Watcher:       watcher,
		Logger:        log.Named("tui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	port.Attach(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running analyst: %w", err)
	}
	return nil
}

// ResolveMarkdownStyle turns "auto" into "dark" or "light" for the current
// terminal. Other names are returned unchanged.
func ResolveMarkdownStyle(style string) string {
	if style != "" && style != "auto" {
		return style
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
