package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info SYMBOL",
	Short: "Show the latest snapshot for a stock",
	Long: `Fetch the most recent row for SYMBOL and print close, change, volume,
RSI with its signal, and the 52-week high.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validConfig(); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		app, board := newBoardApp(markdown.Passthrough{})
		snap, err := app.Orchestrator.SelectStock(ctx, symbol)
		if err != nil {
			return err
		}
		metrics := board.Metrics(view.SnapshotSlots)

		if infoJSON {
			return printJSON(struct {
				Snapshot  any               `json:"snapshot"`
				Formatted map[string]string `json:"formatted"`
			}{snap, metricMap(metrics)})
		}

		format := app.Controller.Formatter()
		fmt.Println(styles.Title.Render(symbol))
		fmt.Println()
		printMetrics(metrics)
		fmt.Println("  " + styles.Label.Render(fmt.Sprintf("%-12s", "MA20")) + " " + styles.Value.Render(format.Price(snap.MA20)))
		fmt.Println("  " + styles.Label.Render(fmt.Sprintf("%-12s", "MA50")) + " " + styles.Value.Render(format.Price(snap.MA50)))
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output the snapshot as JSON")
	rootCmd.AddCommand(infoCmd)
}
