package health

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Dallionking/nepse-analyst/internal/catalog"
	"github.com/Dallionking/nepse-analyst/internal/config"
)

// Check categories, in display order.
const (
	CategoryConfig = "config"
	CategoryAPI    = "api"
	CategoryData   = "data"
)

// registerChecks registers the checks in run order. The API checks after
// api-reachable reuse its answer.
func (c *Checker) registerChecks() {
	c.add("config-file", CategoryConfig, c.checkConfigFile)
	c.add("config-valid", CategoryConfig, c.checkConfigValid)

	c.add("api-reachable", CategoryAPI, c.checkReachable)
	c.add("bot-ready", CategoryAPI, c.checkBotReady)
	c.add("data-loaded", CategoryAPI, c.checkDataLoaded)
	c.add("stock-list", CategoryAPI, c.checkStockList)

	c.add("csv-present", CategoryData, c.checkCSVPresent)
	c.add("csv-symbols", CategoryData, c.checkCSVSymbols)
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(_ context.Context) CheckResult {
	if c.cfg.File == "" {
		return CheckResult{Status: StatusPass, Message: "no config file, using defaults and environment"}
	}
	return CheckResult{Status: StatusPass, Message: c.cfg.File}
}

func (c *Checker) checkConfigValid(_ context.Context) CheckResult {
	errs := config.Validate(c.cfg)
	switch len(errs) {
	case 0:
		return CheckResult{Status: StatusPass, Message: "all settings valid"}
	case 1:
		return CheckResult{Status: StatusFail, Message: errs[0].Error()}
	default:
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%d problems, first: %s", len(errs), errs[0])}
	}
}

// ---------------------------------------------------------------------------
// API checks
// ---------------------------------------------------------------------------

func (c *Checker) checkReachable(ctx context.Context) CheckResult {
	st, err := c.backend.Status(ctx)
	if err != nil {
		c.status = nil
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s unreachable", c.cfg.API.BaseURL)}
	}
	c.status = &st

	msg := c.cfg.API.BaseURL
	if st.Status != "" {
		msg += " (" + st.Status + ")"
	}
	return CheckResult{Status: StatusPass, Message: msg}
}

var skippedOffline = CheckResult{Status: StatusWarn, Message: "skipped, API unreachable"}

func (c *Checker) checkBotReady(_ context.Context) CheckResult {
	if c.status == nil {
		return skippedOffline
	}
	if !c.status.BotInitialized {
		return CheckResult{Status: StatusFail, Message: "RAG bot not initialized, set GOOGLE_API_KEY and restart the API"}
	}
	return CheckResult{Status: StatusPass, Message: "RAG bot initialized"}
}

func (c *Checker) checkDataLoaded(_ context.Context) CheckResult {
	if c.status == nil {
		return skippedOffline
	}
	if !c.status.DataLoaded {
		return CheckResult{Status: StatusWarn, Message: "backend reports no market data loaded"}
	}
	return CheckResult{Status: StatusPass, Message: "market data loaded"}
}

func (c *Checker) checkStockList(ctx context.Context) CheckResult {
	if c.status == nil {
		return skippedOffline
	}
	symbols, err := c.backend.Stocks(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "stock list request failed, CSV fallback will be used"}
	}
	if len(symbols) == 0 {
		return CheckResult{Status: StatusWarn, Message: "backend stock list is empty, CSV fallback will be used"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d symbols", len(symbols))}
}

// ---------------------------------------------------------------------------
// Data checks
// ---------------------------------------------------------------------------

func (c *Checker) checkCSVPresent(_ context.Context) CheckResult {
	info, err := os.Stat(c.csvPath)
	if errors.Is(err, os.ErrNotExist) {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("%s not found", c.csvPath)}
	}
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if info.IsDir() {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s is a directory", c.csvPath)}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s (%d KB)", c.csvPath, info.Size()/1024)}
}

func (c *Checker) checkCSVSymbols(_ context.Context) CheckResult {
	symbols, err := catalog.ReadCSV(c.csvPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return CheckResult{Status: StatusWarn, Message: "skipped, no CSV"}
	case errors.Is(err, catalog.ErrNoSymbolColumn):
		return CheckResult{Status: StatusFail, Message: "CSV has no symbol column"}
	case errors.Is(err, catalog.ErrEmptyCSV):
		return CheckResult{Status: StatusWarn, Message: "CSV has no data rows"}
	case err != nil:
		return CheckResult{Status: StatusFail, Message: err.Error()}
	case len(symbols) == 0:
		return CheckResult{Status: StatusWarn, Message: "CSV has no symbols"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d symbols", len(symbols))}
}
