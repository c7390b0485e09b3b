package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

// MarkdownStyles are the glamour style names accepted by
// display.markdown_style.
var MarkdownStyles = []string{"auto", "dark", "light", "notty", "ascii", "pink", "dracula", "tokyo-night"}

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// --- API ---
	if cfg.API.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "required field is empty"})
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: err.Error()})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("must be an http(s) URL with a host, got %q", cfg.API.BaseURL),
		})
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout",
			Message: fmt.Sprintf("must be >= 0, got %s", cfg.API.Timeout),
		})
	}

	// --- Catalog ---
	if strings.TrimSpace(cfg.Catalog.CSVPath) == "" {
		errs = append(errs, ValidationError{Field: "catalog.csv_path", Message: "required field is empty"})
	}

	// --- Analysis ---
	if strings.TrimSpace(cfg.Analysis.Strategy) == "" {
		errs = append(errs, ValidationError{Field: "analysis.strategy", Message: "required field is empty"})
	}
	for i, s := range cfg.Analysis.Strategies {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("analysis.strategies[%d]", i),
				Message: "strategy label is empty",
			})
		}
	}

	// --- Display ---
	if _, err := language.Parse(cfg.Display.Locale); err != nil {
		errs = append(errs, ValidationError{
			Field:   "display.locale",
			Message: fmt.Sprintf("unknown locale %q", cfg.Display.Locale),
		})
	}
	if !slices.Contains(MarkdownStyles, cfg.Display.MarkdownStyle) {
		errs = append(errs, ValidationError{
			Field:   "display.markdown_style",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(MarkdownStyles, ", "), cfg.Display.MarkdownStyle),
		})
	}

	// --- Log ---
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Log.Level),
		})
	}

	return errs
}
