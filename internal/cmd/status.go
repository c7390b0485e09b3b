package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

var errOffline = errors.New("analysis backend is offline")

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the analysis backend is ready",
	Long: `Query the backend status endpoint once and print the indicator the
interactive UI would show.

Exits with status 1 when the backend cannot be reached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validConfig(); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		app, _ := newBoardApp(markdown.Passthrough{})
		line := app.Poller.Check(ctx)
		health, _ := app.Session.Health()

		if statusJSON {
			type report struct {
				BaseURL        string `json:"base_url"`
				Online         bool   `json:"online"`
				BotInitialized bool   `json:"bot_initialized"`
				DataLoaded     bool   `json:"data_loaded"`
				Status         string `json:"status,omitempty"`
				Message        string `json:"message,omitempty"`
				Indicator      string `json:"indicator"`
			}
			if err := printJSON(report{
				BaseURL:        appCfg.API.BaseURL,
				Online:         line.Online,
				BotInitialized: health.Report.BotInitialized,
				DataLoaded:     health.Report.DataLoaded,
				Status:         health.Report.Status,
				Message:        health.Report.Message,
				Indicator:      line.Text,
			}); err != nil {
				return err
			}
		} else {
			fmt.Println(styles.Title.Render("Backend Status"))
			fmt.Println()
			fmt.Println(styles.Label.Render("URL") + "       " + styles.Value.Render(appCfg.API.BaseURL))
			fmt.Println(styles.Label.Render("STATUS") + "    " + styles.StatusLine(line))
			if line.Online {
				fmt.Println(styles.Label.Render("DATA") + "      " + yesNo(health.Report.DataLoaded))
				if health.Report.Message != "" {
					fmt.Println(styles.Label.Render("MESSAGE") + "   " + styles.Dim(health.Report.Message))
				}
			}
		}

		if !line.Online {
			return errOffline
		}
		return nil
	},
}

func yesNo(ok bool) string {
	if ok {
		return styles.Green("loaded")
	}
	return styles.Gold("not loaded")
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}
