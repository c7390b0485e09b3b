package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/nepse-analyst/internal/health"
)

var (
	doctorCategory string
	doctorJSON     bool
)

var doctorCategories = []string{health.CategoryConfig, health.CategoryAPI, health.CategoryData}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration, backend and local data",
	Long: `Run diagnostic checks against the client setup.

Checks are grouped into categories:
  config  - config file and validation
  api     - backend reachability, bot readiness, data loaded, stock list
  data    - fallback CSV presence and symbol column

Use --category to run only one group.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if doctorCategory != "" && !slices.Contains(doctorCategories, doctorCategory) {
			return fmt.Errorf("unknown category %q (want one of %v)", doctorCategory, doctorCategories)
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		checker := health.NewChecker(appCfg, newClient(), csvPath())

		var report *health.Report
		if doctorCategory != "" {
			report = checker.RunCategory(ctx, doctorCategory)
		} else {
			report = checker.RunAll(ctx)
		}

		if doctorJSON {
			return printJSON(report)
		}
		fmt.Print(health.FormatReport(report))
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorCategory, "category", "", "run checks in a category: config, api or data")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(doctorCmd)
}
