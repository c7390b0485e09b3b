package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dallionking/nepse-analyst/internal/config"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
)

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View and check the effective configuration.

Values come from, lowest precedence first: defaults, the config file
(nepse-analyst.yaml|json|toml in . or the user config dir, or --config),
a .env file, NEPSE_* environment variables and command-line flags.

Subcommands:
  show       Print the effective configuration
  validate   Report every configuration problem`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig()
	},
}

// --- config show ---

var configJSON bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig()
	},
}

func showConfig() error {
	cfg := config.Get()
	if configJSON {
		return printJSON(cfg)
	}

	file := cfg.File
	if file == "" {
		file = styles.Dim("(none, using defaults)")
	}

	fmt.Println(styles.Title.Render("Configuration"))
	fmt.Println()
	fmt.Println(styles.Label.Render("FILE") + "      " + styles.Value.Render(file))
	fmt.Println()

	row := func(key, value string) {
		fmt.Printf("  %s %s\n", styles.Label.Render(fmt.Sprintf("%-24s", key)), styles.Value.Render(value))
	}

	fmt.Println(styles.Subtitle.Render("API"))
	row("api.base_url", cfg.API.BaseURL)
	timeout := cfg.API.Timeout.String()
	if cfg.API.Timeout == 0 {
		timeout = "none"
	}
	row("api.timeout", timeout)
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Catalog"))
	row("catalog.csv_path", cfg.Catalog.CSVPath)
	row("catalog.watch", fmt.Sprintf("%t", cfg.Catalog.Watch))
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Analysis"))
	row("analysis.strategy", cfg.Analysis.Strategy)
	strategies := "(built-in)"
	if len(cfg.Analysis.Strategies) > 0 {
		strategies = strings.Join(cfg.Analysis.Strategies, ", ")
	}
	row("analysis.strategies", strategies)
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Display"))
	row("display.currency", fmt.Sprintf("%q", cfg.Display.Currency))
	row("display.locale", cfg.Display.Locale)
	row("display.markdown_style", cfg.Display.MarkdownStyle)
	fmt.Println()

	fmt.Println(styles.Subtitle.Render("Logging"))
	row("log.level", cfg.Log.Level)
	row("log.file", cfg.Log.File)

	return nil
}

// --- config validate ---

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report every configuration problem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		problems := config.Validate(config.Get())
		if len(problems) == 0 {
			fmt.Println(styles.Green("Configuration is valid"))
			return nil
		}

		fmt.Println(styles.Red(fmt.Sprintf("%d problem(s) found", len(problems))))
		for _, p := range problems {
			fmt.Printf("  %s %s\n", styles.Bold(p.Field), styles.Dim(p.Message))
		}
		return fmt.Errorf("invalid configuration")
	},
}

func init() {
	configCmd.PersistentFlags().BoolVar(&configJSON, "json", false, "output the configuration as JSON")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
