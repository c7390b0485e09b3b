package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Default values for every configuration key.
const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultCSVPath       = "data/processed/stock_data_with_indicators.csv"
	DefaultStrategy      = "multi-strategy"
	DefaultCurrency      = "Rs. "
	DefaultLocale        = "en"
	DefaultMarkdownStyle = "auto"
	DefaultLogLevel      = "info"
	DefaultLogFile       = "nepse-analyst.log"

	// EnvPrefix prefixes every environment variable, e.g. NEPSE_API_BASE_URL.
	EnvPrefix = "NEPSE"
)

// Config is the full client configuration.
type Config struct {
	API      APIConfig      `json:"api" mapstructure:"api"`
	Catalog  CatalogConfig  `json:"catalog" mapstructure:"catalog"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Display  DisplayConfig  `json:"display" mapstructure:"display"`
	Log      LogConfig      `json:"log" mapstructure:"log"`

	// File is the config file that was read, or "" when none was found.
	File string `json:"-" mapstructure:"-"`
}

// APIConfig locates the analysis backend.
type APIConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	// Timeout bounds each request. Zero waits for as long as the backend takes.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// CatalogConfig controls the stock list fallback.
type CatalogConfig struct {
	CSVPath string `json:"csv_path" mapstructure:"csv_path"`
	Watch   bool   `json:"watch" mapstructure:"watch"`
}

// AnalysisConfig holds the strategy defaults.
type AnalysisConfig struct {
	Strategy   string   `json:"strategy" mapstructure:"strategy"`
	Strategies []string `json:"strategies" mapstructure:"strategies"`
}

// DisplayConfig controls number and narrative formatting.
type DisplayConfig struct {
	Currency      string `json:"currency" mapstructure:"currency"`
	Locale        string `json:"locale" mapstructure:"locale"`
	MarkdownStyle string `json:"markdown_style" mapstructure:"markdown_style"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

var (
	globalCfg *Config
	mu        sync.RWMutex
)

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("catalog.csv_path", DefaultCSVPath)
	v.SetDefault("catalog.watch", true)
	v.SetDefault("analysis.strategy", DefaultStrategy)
	v.SetDefault("analysis.strategies", []string{})
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("display.locale", DefaultLocale)
	v.SetDefault("display.markdown_style", DefaultMarkdownStyle)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", DefaultLogFile)
}

// Load builds the configuration in v from, lowest precedence first:
// defaults, the config file, a .env file in the working directory, NEPSE_*
// environment variables and any flags already bound to v. cfgFile names an
// explicit config file; when empty the search paths are tried and a missing
// file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short aliases for the variables users set most.
	_ = v.BindEnv("api.base_url", EnvPrefix+"_API_BASE_URL", EnvPrefix+"_API_URL")
	_ = v.BindEnv("catalog.csv_path", EnvPrefix+"_CATALOG_CSV_PATH", EnvPrefix+"_CATALOG_CSV")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	mu.Lock()
	globalCfg = &cfg
	mu.Unlock()

	return &cfg, nil
}

// Get returns the configuration from the last successful Load. It panics if
// Load has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		panic("config.Get() called before config.Load()")
	}
	return globalCfg
}
