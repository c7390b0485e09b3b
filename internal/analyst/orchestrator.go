package analyst

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// User-facing messages.
const (
	MsgNoSymbol       = "Please select a stock first"
	MsgNotReady       = "RAG Bot is not initialized. Please set GOOGLE_API_KEY and restart the API."
	MsgRetry          = "Failed to get analysis. Please try again."
	MsgAnalysisFailed = "Analysis failed"
	MsgNoStocks       = "Failed to load stock list. Start the API or ensure data CSV exists."
)

var (
	// ErrNoSymbol means Analyze was called before a stock was selected.
	ErrNoSymbol = errors.New("no stock selected")
	// ErrNotReady means the last status check did not report a ready bot.
	ErrNotReady = errors.New("analysis bot not initialized")
	// ErrBusy means another analysis is still running.
	ErrBusy = errors.New("analysis already in progress")
	// ErrAnalysisFailed means the backend answered with success=false.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// Orchestrator runs stock selection and analysis requests.
type Orchestrator struct {
	backend Backend
	ctrl    *view.Controller
	session *Session
	log     *zap.Logger
	busy    atomic.Bool
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(backend Backend, ctrl *view.Controller, session *Session, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{backend: backend, ctrl: ctrl, session: session, log: log}
}

// Busy reports whether an analysis is in flight.
func (o *Orchestrator) Busy() bool { return o.busy.Load() }

// SelectStock makes symbol current and shows its snapshot. A failed fetch
// leaves the previous metrics on screen; the error is logged and returned
// for callers that want it.
func (o *Orchestrator) SelectStock(ctx context.Context, symbol string) (api.StockSnapshot, error) {
	o.session.SetSymbol(symbol)
	if symbol == "" {
		return api.StockSnapshot{}, ErrNoSymbol
	}

	snap, err := o.backend.Stock(ctx, symbol)
	if err != nil {
		o.log.Warn("stock snapshot failed", zap.String("symbol", symbol), zap.Error(err))
		return api.StockSnapshot{}, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	o.ctrl.ShowSnapshot(snap)
	return snap, nil
}

// Analyze requests indicators and a narrative for the selected stock.
// strategy is forwarded as-is; empty uses the session strategy.
//
// Preconditions are checked against the session only, without network
// calls. While one analysis runs, further calls return ErrBusy and leave
// the view alone. Every call that reaches Loading ends in Results or Error.
func (o *Orchestrator) Analyze(ctx context.Context, strategy string) error {
	if !o.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer o.busy.Store(false)

	symbol := o.session.Symbol()
	if symbol == "" {
		o.ctrl.ShowError(MsgNoSymbol)
		return ErrNoSymbol
	}
	if h, ok := o.session.Health(); !ok || !h.BotReady() {
		o.ctrl.ShowError(MsgNotReady)
		return ErrNotReady
	}
	if strategy == "" {
		strategy = o.session.Strategy()
	}

	log := o.log.With(zap.String("symbol", symbol), zap.String("strategy", strategy))

	o.ctrl.ShowAnalyzedStock(symbol)
	o.ctrl.ShowLoading()

	bundle, err := o.backend.Indicators(ctx, symbol)
	if err != nil {
		log.Error("indicator fetch failed", zap.Error(err))
		o.ctrl.ShowError(MsgRetry)
		return fmt.Errorf("indicators: %w", err)
	}

	res, err := o.backend.Analyze(ctx, api.AnalysisRequest{Symbol: symbol, Strategy: strategy})
	if err != nil {
		log.Error("analysis request failed", zap.Error(err))
		o.ctrl.ShowError(MsgRetry)
		return fmt.Errorf("analyze: %w", err)
	}

	if !res.Success {
		msg := res.Message()
		if msg == "" {
			msg = MsgAnalysisFailed
		}
		log.Warn("analysis rejected", zap.String("message", msg))
		o.ctrl.ShowError(msg)
		return fmt.Errorf("%w: %s", ErrAnalysisFailed, msg)
	}

	o.session.setLastAnalysis(Analysis{
		Symbol:     symbol,
		Strategy:   strategy,
		Indicators: bundle,
		Narrative:  res.Analysis,
	})
	o.ctrl.ShowResults(bundle, res.Analysis)
	log.Info("analysis complete", zap.Int("chars", len(res.Analysis)))
	return nil
}
