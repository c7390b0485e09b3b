// Package analyst holds the client's application logic: the session, the
// status poller, the analysis orchestrator and the bootstrap that starts
// them. It talks to the backend through Backend and to the screen through
// a view.Controller, so it runs the same under the TUI and one-shot commands.
package analyst

import (
	"context"
	"sync"

	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/catalog"
)

// Backend is the subset of the API client the application needs.
type Backend interface {
	Status(ctx context.Context) (api.Status, error)
	Stocks(ctx context.Context) ([]string, error)
	Stock(ctx context.Context, symbol string) (api.StockSnapshot, error)
	Indicators(ctx context.Context, symbol string) (api.IndicatorBundle, error)
	Analyze(ctx context.Context, req api.AnalysisRequest) (api.AnalysisResult, error)
}

// Health is the outcome of the last status check.
type Health struct {
	Online bool
	Report api.Status
}

// BotReady reports whether an analysis may be requested.
func (h Health) BotReady() bool { return h.Online && h.Report.BotInitialized }

// Analysis is the last successful analysis.
type Analysis struct {
	Symbol     string
	Strategy   string
	Indicators api.IndicatorBundle
	Narrative  string
}

// Session is the state shared by the poller and the orchestrator.
type Session struct {
	mu       sync.RWMutex
	symbol   string
	health   *Health
	catalog  catalog.Catalog
	strategy string
	last     *Analysis
}

// NewSession creates a session with the given default strategy. An empty
// strategy selects DefaultStrategy.
func NewSession(strategy string) *Session {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	return &Session{strategy: strategy}
}

// Symbol returns the selected symbol, or "" when none is selected.
func (s *Session) Symbol() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbol
}

// SetSymbol records the selected symbol.
func (s *Session) SetSymbol(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbol = symbol
}

// Health returns the last status check and whether one has completed.
func (s *Session) Health() (Health, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.health == nil {
		return Health{}, false
	}
	return *s.health, true
}

func (s *Session) setHealth(h Health) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = &h
}

// Catalog returns the last loaded catalog.
func (s *Session) Catalog() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Session) setCatalog(c catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
}

// Strategy returns the selected strategy label.
func (s *Session) Strategy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// SetStrategy selects a strategy. Empty labels are ignored.
func (s *Session) SetStrategy(strategy string) {
	if strategy == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
}

// LastAnalysis returns the last successful analysis, if any.
func (s *Session) LastAnalysis() (Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Analysis{}, false
	}
	return *s.last, true
}

func (s *Session) setLastAnalysis(a Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &a
}
