package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/config"
)

// DefaultCheckTimeout bounds a single check when api.timeout is zero, so a
// hung backend cannot stall the doctor.
const DefaultCheckTimeout = 10 * time.Second

// Status is the outcome of one check.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

var statusText = map[Status]struct{ name, symbol string }{
	StatusPass: {"pass", "+"},
	StatusWarn: {"warn", "!"},
	StatusFail: {"fail", "x"},
}

// String returns "pass", "warn" or "fail".
func (s Status) String() string {
	if t, ok := statusText[s]; ok {
		return t.name
	}
	return "unknown"
}

// Symbol returns the one-character marker used in the text report.
func (s Status) Symbol() string {
	if t, ok := statusText[s]; ok {
		return t.symbol
	}
	return "?"
}

// CheckResult is what one check found.
type CheckResult struct {
	Name     string
	Category string
	Status   Status
	Message  string
	Duration time.Duration
}

// Report aggregates a run. Healthy means nothing failed; warnings such as a
// missing fallback CSV do not count against it.
type Report struct {
	Results  []CheckResult
	Passed   int
	Warned   int
	Failed   int
	Total    int
	Duration time.Duration
	Healthy  bool
}

// Check is one registered diagnostic.
type Check struct {
	Name     string
	Category string
	Fn       func(ctx context.Context) CheckResult
}

// Backend is the part of the API client the checks call.
type Backend interface {
	Status(ctx context.Context) (api.Status, error)
	Stocks(ctx context.Context) ([]string, error)
}

// Checker runs the client diagnostics against one configuration and
// backend. Checks run in registration order because the api checks read
// the reachability answer.
type Checker struct {
	checks  []Check
	cfg     *config.Config
	backend Backend
	csvPath string
	timeout time.Duration

	// status is the answer of the reachability check, nil when the
	// backend was unreachable.
	status *api.Status
}

// NewChecker creates a checker. csvPath is the resolved location of the
// fallback CSV. Each check gets api.timeout, or DefaultCheckTimeout when
// that is zero.
func NewChecker(cfg *config.Config, backend Backend, csvPath string) *Checker {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	c := &Checker{
		cfg:     cfg,
		backend: backend,
		csvPath: csvPath,
		timeout: timeout,
	}
	c.registerChecks()
	return c
}

// Checks returns the registered checks in run order.
func (c *Checker) Checks() []Check { return c.checks }

func (c *Checker) add(name, category string, fn func(ctx context.Context) CheckResult) {
	c.checks = append(c.checks, Check{Name: name, Category: category, Fn: fn})
}

// RunAll runs every check.
func (c *Checker) RunAll(ctx context.Context) *Report {
	return c.run(ctx, func(Check) bool { return true })
}

// RunCategory runs only the checks in category. Checks that depend on the
// reachability check in another category report themselves skipped.
func (c *Checker) RunCategory(ctx context.Context, category string) *Report {
	return c.run(ctx, func(ch Check) bool { return ch.Category == category })
}

func (c *Checker) run(ctx context.Context, keep func(Check) bool) *Report {
	start := time.Now()
	c.status = nil

	var results []CheckResult
	for _, ch := range c.checks {
		if !keep(ch) {
			continue
		}
		r := c.runOne(ctx, ch)
		r.Name = ch.Name
		r.Category = ch.Category
		results = append(results, r)
	}

	return buildReport(results, time.Since(start))
}

// runOne runs a check under its own deadline. A check that fails because
// the deadline passed says so instead of reporting its own error text.
func (c *Checker) runOne(ctx context.Context, ch Check) CheckResult {
	if ctx.Err() != nil {
		return CheckResult{Status: StatusFail, Message: "context cancelled"}
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	t := time.Now()
	r := ch.Fn(cctx)
	r.Duration = time.Since(t)

	if r.Status != StatusPass && errors.Is(cctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		r.Status = StatusFail
		r.Message = fmt.Sprintf("timed out after %s", c.timeout)
	}
	return r
}

func buildReport(results []CheckResult, dur time.Duration) *Report {
	r := &Report{Results: results, Total: len(results), Duration: dur}
	for _, res := range results {
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusWarn:
			r.Warned++
		case StatusFail:
			r.Failed++
		}
	}
	r.Healthy = r.Failed == 0
	return r
}
