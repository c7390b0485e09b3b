package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/config"
	"github.com/Dallionking/nepse-analyst/internal/logging"
	"github.com/Dallionking/nepse-analyst/internal/tui/views"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	apiURL  string
	timeout time.Duration
)

// Set by the root PersistentPreRunE before any command runs.
var (
	appCfg *config.Config
	log    *zap.Logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "nepse-analyst",
	Short: "Terminal client for the NEPSE analysis backend",
	Long: `NEPSE Analyst: technical analysis for Nepal Stock Exchange listings

Pick a stock, review its indicators and ask the backend's analysis bot for
a strategy-specific outlook. Running without a subcommand opens the
interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			os.Setenv("NO_COLOR", "1")
		}

		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appCfg = cfg

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		// The TUI owns the terminal, so only it logs to the file.
		sink := logging.Stderr
		if !cmd.HasParent() {
			sink = cfg.Log.File
		}
		l, err := logging.New(level, sink)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validConfig(); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		return views.RunApp(ctx, views.AppConfig{
			Backend:       newClient(),
			CSVPath:       csvPath(),
			Watch:         appCfg.Catalog.Watch,
			Strategy:      appCfg.Analysis.Strategy,
			Strategies:    appCfg.Analysis.Strategies,
			Currency:      appCfg.Display.Currency,
			Locale:        appCfg.Display.Locale,
			MarkdownStyle: appCfg.Display.MarkdownStyle,
			Logger:        log,
		})
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./nepse-analyst.yaml or the user config dir)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.StringVar(&apiURL, "api-url", "", "analysis backend base URL (default "+config.DefaultBaseURL+")")
	flags.DurationVar(&timeout, "timeout", 0, "per-request timeout, 0 waits indefinitely")

	_ = viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("api.timeout", flags.Lookup("timeout"))
}

// commandContext is cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newClient() *api.Client {
	return api.NewClient(appCfg.API.BaseURL, appCfg.API.Timeout, log.Named("api"))
}

func csvPath() string {
	return config.ResolveDataPath(appCfg.Catalog.CSVPath)
}

// validConfig joins every validation problem into one error.
func validConfig() error {
	problems := config.Validate(appCfg)
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return fmt.Errorf("invalid configuration (run 'nepse-analyst config validate'):\n%w", errors.Join(errs...))
}
