package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// isolate runs the test in an empty directory with no user config dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("timeout = %s, want none", cfg.API.Timeout)
	}
	if cfg.Catalog.CSVPath != DefaultCSVPath || !cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Analysis.Strategy != DefaultStrategy {
		t.Errorf("strategy = %q", cfg.Analysis.Strategy)
	}
	if cfg.Display.Currency != "Rs. " || cfg.Display.Locale != "en" || cfg.Display.MarkdownStyle != "auto" {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("defaults invalid: %v", errs)
	}
	if Get() != cfg {
		t.Error("Get does not return the loaded config")
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `api:
  base_url: http://analysis.local:9000/
  timeout: 30s
analysis:
  strategy: swing trading
  strategies: [swing trading, breakout/pullback]
display:
  locale: ne
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != "http://analysis.local:9000" {
		t.Errorf("base_url = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.API.Timeout)
	}
	if cfg.Analysis.Strategy != "swing trading" || len(cfg.Analysis.Strategies) != 2 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Display.Locale != "ne" || cfg.Display.Currency != DefaultCurrency {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "nepse-analyst.json"), []byte(`{"log":{"level":"debug"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(viper.New(), filepath.Join(dir, "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NEPSE_API_URL", "http://10.0.0.5:8000")
	t.Setenv("NEPSE_API_TIMEOUT", "5s")
	t.Setenv("NEPSE_CATALOG_CSV", "/srv/data/stocks.csv")
	t.Setenv("NEPSE_CATALOG_WATCH", "false")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.API.Timeout)
	}
	if cfg.Catalog.CSVPath != "/srv/data/stocks.csv" || cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	const key = "NEPSE_DISPLAY_CURRENCY"
	t.Cleanup(func() { os.Unsetenv(key) })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=NPR \n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(cfg.Display.Currency, "NPR") {
		t.Errorf("currency = %q, want value from .env", cfg.Display.Currency)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:      APIConfig{BaseURL: DefaultBaseURL},
			Catalog:  CatalogConfig{CSVPath: DefaultCSVPath},
			Analysis: AnalysisConfig{Strategy: DefaultStrategy},
			Display:  DisplayConfig{Currency: DefaultCurrency, Locale: "en", MarkdownStyle: "auto"},
			Log:      LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"no scheme", func(c *Config) { c.API.BaseURL = "localhost:8000" }, "api.base_url"},
		{"ftp scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "api.base_url"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout"},
		{"empty csv path", func(c *Config) { c.Catalog.CSVPath = " " }, "catalog.csv_path"},
		{"empty strategy", func(c *Config) { c.Analysis.Strategy = "" }, "analysis.strategy"},
		{"blank strategy entry", func(c *Config) { c.Analysis.Strategies = []string{"a", ""} }, "analysis.strategies[1]"},
		{"bad locale", func(c *Config) { c.Display.Locale = "not a locale" }, "display.locale"},
		{"bad style", func(c *Config) { c.Display.MarkdownStyle = "neon" }, "display.markdown_style"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	if errs := Validate(valid()); len(errs) != 0 {
		t.Fatalf("valid config rejected: %v", errs)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			errs := Validate(cfg)
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("errs = %v, want one for %s", errs, tt.field)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	errs := Validate(&Config{})
	if len(errs) < 4 {
		t.Errorf("got %d errors, want every empty field reported: %v", len(errs), errs)
	}
}

func TestResolveDataPath(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data", "processed"), 0755); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(root, "data", "processed", "stocks.csv")
	if err := os.WriteFile(csvPath, []byte("symbol\n"), 0644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "web", "static")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(deep)

	got := ResolveDataPath("data/processed/stocks.csv")
	want, _ := filepath.EvalSymlinks(csvPath)
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("ResolveDataPath = %q, want %q", got, want)
	}

	if got := ResolveDataPath("/abs/file.csv"); got != "/abs/file.csv" {
		t.Errorf("absolute path changed: %q", got)
	}

	missing := ResolveDataPath("nowhere/file.csv")
	if filepath.Base(filepath.Dir(missing)) != "nowhere" || !filepath.IsAbs(missing) {
		t.Errorf("unresolved path = %q", missing)
	}
}
