package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/analyst"
	"github.com/Dallionking/nepse-analyst/internal/catalog"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

var (
	stocksJSON  bool
	stocksWatch bool
)

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "List the stocks available for analysis",
	Long: `Print the stock catalog. The backend list is used when it has symbols;
otherwise symbols are read from the local indicator CSV (catalog.csv_path).

With --watch the list is printed again whenever the CSV changes, until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validConfig(); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		app, _ := newBoardApp(markdown.Passthrough{})
		err := printCatalog(ctx, app)
		if !stocksWatch {
			return err
		}
		if err != nil {
			fmt.Println(styles.Red(err.Error()))
		}

		w, err := catalog.NewWatcher(app.Loader.CSVPath(), log.Named("watcher"))
		if err != nil {
			return fmt.Errorf("watching csv: %w", err)
		}
		defer w.Close()

		if !stocksJSON {
			fmt.Println(styles.Dim("watching " + w.Path() + " (ctrl+c to stop)"))
		}
		for change := range w.Watch(ctx) {
			log.Info("csv changed", zap.String("path", change.Path), zap.Bool("removed", change.Removed))
			if err := printCatalog(ctx, app); err != nil {
				fmt.Println(styles.Red(err.Error()))
			}
		}
		return nil
	},
}

func printCatalog(ctx context.Context, app *analyst.App) error {
	cat, err := app.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	if stocksJSON {
		return printJSON(struct {
			Origin  string   `json:"origin"`
			Count   int      `json:"count"`
			Symbols []string `json:"symbols"`
		}{cat.Origin.String(), len(cat.Symbols), cat.Symbols})
	}

	fmt.Println(styles.Title.Render("Stocks") + "  " +
		styles.Dim(fmt.Sprintf("%d from %s", len(cat.Symbols), cat.Origin)))
	fmt.Println(styles.Divider(60))
	fmt.Println(wrapSymbols(cat.Symbols, 60))
	return nil
}

// wrapSymbols lays symbols out in rows no wider than width.
func wrapSymbols(symbols []string, width int) string {
	var b strings.Builder
	line := 0
	for _, s := range symbols {
		if line > 0 && line+len(s)+1 > width {
			b.WriteByte('\n')
			line = 0
		}
		if line > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(s)
		line += len(s)
	}
	return b.String()
}

func init() {
	stocksCmd.Flags().BoolVar(&stocksJSON, "json", false, "output the catalog as JSON")
	stocksCmd.Flags().BoolVar(&stocksWatch, "watch", false, "reprint when the CSV changes")
	rootCmd.AddCommand(stocksCmd)
}
