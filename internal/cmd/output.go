package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Dallionking/nepse-analyst/internal/analyst"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// newBoardApp builds an application that draws into an in-memory board.
// One-shot commands run an operation and then print what it displayed.
func newBoardApp(renderer markdown.Renderer) (*analyst.App, *view.Board) {
	board := view.NewBoard()
	app := analyst.NewApp(newClient(), board, analyst.Options{
		CSVPath:   csvPath(),
		Strategy:  appCfg.Analysis.Strategy,
		Renderer:  renderer,
		Formatter: view.NewFormatter(appCfg.Display.Currency, appCfg.Display.Locale),
		Logger:    log,
	})
	return app, board
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMetrics prints one labelled line per written slot, coloured by tone.
func printMetrics(metrics []view.SlotMetric) {
	for _, sm := range metrics {
		label := styles.Label.Render(fmt.Sprintf("%-12s", sm.Slot.Label()))
		fmt.Println("  " + label + " " + styles.Tone(sm.Metric.Text, sm.Metric.Tone))
	}
}

// metricMap flattens metrics for JSON output, keyed by slot name.
func metricMap(metrics []view.SlotMetric) map[string]string {
	out := make(map[string]string, len(metrics))
	for _, sm := range metrics {
		out[string(sm.Slot)] = sm.Metric.Text
	}
	return out
}
