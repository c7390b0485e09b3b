package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

const analyzeWidth = 100

var (
	analyzeStrategy string
	analyzeFormat   string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Run a strategy analysis for a stock",
	Long: `Check the backend, load SYMBOL and ask the analysis bot for a narrative
using the given strategy (analysis.strategy by default).

The narrative is printed styled for the terminal, as the HTML the web
client would show (--format html), or as the raw markdown (--format
markdown). --json prints the indicators and the raw narrative.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validConfig(); err != nil {
			return err
		}

		renderer, err := narrativeRenderer(analyzeFormat)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		app, board := newBoardApp(renderer)

		app.Poller.Check(ctx)
		// The snapshot is informational; analysis does not depend on it.
		if _, err := app.Orchestrator.SelectStock(ctx, symbol); err != nil {
			log.Warn("snapshot unavailable", zap.String("symbol", symbol), zap.Error(err))
		}
		if err := app.Orchestrator.Analyze(ctx, analyzeStrategy); err != nil {
			// The board holds the message a user would see; show that
			// instead of the wrapped chain.
			cmd.SilenceErrors = true
			fmt.Println(styles.ErrorPanel.Render(board.Err()))
			return err
		}

		last, _ := app.Session.LastAnalysis()
		if analyzeJSON {
			return printJSON(struct {
				Symbol     string            `json:"symbol"`
				Strategy   string            `json:"strategy"`
				Indicators any               `json:"indicators"`
				Formatted  map[string]string `json:"formatted"`
				Narrative  string            `json:"narrative"`
			}{last.Symbol, last.Strategy, last.Indicators, metricMap(board.Metrics(view.IndicatorSlots)), last.Narrative})
		}

		fmt.Println(styles.Title.Render(last.Symbol) + "  " + styles.Dim(last.Strategy))
		fmt.Println()
		printMetrics(board.Metrics(view.SnapshotSlots))
		fmt.Println()
		fmt.Println(styles.Subtitle.Render("Indicators"))
		printMetrics(board.Metrics(view.IndicatorSlots))
		fmt.Println()
		fmt.Println(styles.Divider(analyzeWidth))
		fmt.Println(board.Analysis())
		return nil
	},
}

func narrativeRenderer(format string) (markdown.Renderer, error) {
	switch format {
	case "", "terminal":
		r, err := markdown.NewTerminalRenderer(appCfg.Display.MarkdownStyle, analyzeWidth)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "html":
		return markdown.HTMLRenderer{}, nil
	case "markdown":
		return markdown.Passthrough{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want terminal, html or markdown)", format)
	}
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "analysis strategy (default from analysis.strategy)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "terminal", "narrative format: terminal, html or markdown")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output indicators and narrative as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
