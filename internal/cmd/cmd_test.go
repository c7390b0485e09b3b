package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/analyst"
	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/config"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Cleanup(func() {
		appCfg = nil
		log = zap.NewNop()
	})
	return dir
}

func testConfig(baseURL, dir string) *config.Config {
	return &config.Config{
		API:      config.APIConfig{BaseURL: baseURL},
		Catalog:  config.CatalogConfig{CSVPath: filepath.Join(dir, "stocks.csv")},
		Analysis: config.AnalysisConfig{Strategy: config.DefaultStrategy},
		Display:  config.DisplayConfig{Currency: "Rs. ", Locale: "en", MarkdownStyle: "notty"},
		Log:      config.LogConfig{Level: "info"},
	}
}

func serveJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

// runAnalyze runs the analyze command for symbol with raw markdown output.
func runAnalyze(t *testing.T, symbol string) error {
	t.Helper()
	analyzeFormat, analyzeJSON, analyzeStrategy = "markdown", false, ""
	t.Cleanup(func() {
		analyzeFormat = "terminal"
		analyzeCmd.SilenceErrors = false
	})
	analyzeCmd.SetContext(context.Background())
	return analyzeCmd.RunE(analyzeCmd, []string{symbol})
}

func TestPersistentPreRunLoadsConfig(t *testing.T) {
	dir := isolate(t)
	logFile := filepath.Join(dir, config.DefaultLogFile)

	if err := rootCmd.PersistentPreRunE(statusCmd, nil); err != nil {
		t.Fatalf("status pre-run: %v", err)
	}
	if appCfg == nil || appCfg.API.BaseURL != config.DefaultBaseURL {
		t.Fatalf("config = %+v", appCfg)
	}
	if _, err := os.Stat(logFile); !os.IsNotExist(err) {
		t.Errorf("one-shot command opened the log file (stat err %v)", err)
	}

	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err != nil {
		t.Fatalf("root pre-run: %v", err)
	}
	_ = log.Sync()
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("interactive logger did not open %s: %v", logFile, err)
	}
}

func TestAnalyzeContinuesWithoutSnapshot(t *testing.T) {
	dir := isolate(t)

	var analyzed atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", serveJSON(api.Status{Status: "ok", BotInitialized: true, DataLoaded: true}))
	mux.HandleFunc("/stocks/NABIL", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/stocks/NABIL/indicators", serveJSON(api.IndicatorBundle{Symbol: "NABIL"}))
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		analyzed.Store(true)
		serveJSON(api.AnalysisResult{Success: true, Analysis: "## Outlook\n- up"})(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	appCfg = testConfig(srv.URL, dir)
	if err := runAnalyze(t, "nabil"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !analyzed.Load() {
		t.Error("analysis was not requested after the snapshot failed")
	}
}

func TestAnalyzeOfflineReportsNotReady(t *testing.T) {
	dir := isolate(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	appCfg = testConfig(url, dir)
	if err := runAnalyze(t, "NABIL"); !errors.Is(err, analyst.ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}

func TestWrapSymbols(t *testing.T) {
	got := wrapSymbols([]string{"ADBL", "NABIL", "NICA", "SHL"}, 10)
	want := "ADBL NABIL\nNICA SHL"
	if got != want {
		t.Errorf("wrapSymbols = %q, want %q", got, want)
	}
	if got := wrapSymbols(nil, 10); got != "" {
		t.Errorf("wrapSymbols(nil) = %q, want empty", got)
	}
}

func TestNarrativeRenderer(t *testing.T) {
	appCfg = &config.Config{Display: config.DisplayConfig{MarkdownStyle: "notty"}}
	t.Cleanup(func() { appCfg = nil })

	r, err := narrativeRenderer("html")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(markdown.HTMLRenderer); !ok {
		t.Errorf("html format gave %T", r)
	}

	r, err = narrativeRenderer("markdown")
	if err != nil {
		t.Fatal(err)
	}
	if out, _ := r.Render("**x**"); out != "**x**" {
		t.Errorf("markdown format rendered %q", out)
	}

	if _, err := narrativeRenderer("terminal"); err != nil {
		t.Errorf("terminal format: %v", err)
	}
	if _, err := narrativeRenderer("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValidConfig(t *testing.T) {
	appCfg = &config.Config{
		API:      config.APIConfig{BaseURL: "ftp://example"},
		Catalog:  config.CatalogConfig{CSVPath: "x.csv"},
		Analysis: config.AnalysisConfig{Strategy: "multi-strategy"},
		Display:  config.DisplayConfig{Locale: "en", MarkdownStyle: "auto"},
		Log:      config.LogConfig{Level: "info"},
	}
	t.Cleanup(func() { appCfg = nil })

	err := validConfig()
	if err == nil {
		t.Fatal("expected error for non-http base url")
	}
	if !strings.Contains(err.Error(), "api.base_url") {
		t.Errorf("error %q does not name the field", err)
	}

	appCfg.API.BaseURL = "http://localhost:8000"
	if err := validConfig(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
