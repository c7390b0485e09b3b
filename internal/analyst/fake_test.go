package analyst

import (
	"context"
	"errors"
	"sync"

	"github.com/Dallionking/nepse-analyst/internal/api"
)

var errDown = errors.New("connection refused")

// fakeBackend returns canned answers and records calls.
type fakeBackend struct {
	mu sync.Mutex

	status     api.Status
	statusErr  error
	stocks     []string
	stocksErr  error
	snapshot   api.StockSnapshot
	stockErr   error
	bundle     api.IndicatorBundle
	indErr     error
	result     api.AnalysisResult
	analyzeErr error

	// gate, when set, blocks Indicators until closed.
	gate    chan struct{}
	entered chan struct{}

	calls    []string
	requests []api.AnalysisRequest
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Status(context.Context) (api.Status, error) {
	f.record("status")
	return f.status, f.statusErr
}

func (f *fakeBackend) Stocks(context.Context) ([]string, error) {
	f.record("stocks")
	return f.stocks, f.stocksErr
}

func (f *fakeBackend) Stock(_ context.Context, symbol string) (api.StockSnapshot, error) {
	f.record("stock " + symbol)
	return f.snapshot, f.stockErr
}

func (f *fakeBackend) Indicators(ctx context.Context, symbol string) (api.IndicatorBundle, error) {
	f.record("indicators " + symbol)
	if f.gate != nil {
		if f.entered != nil {
			close(f.entered)
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return api.IndicatorBundle{}, ctx.Err()
		}
	}
	return f.bundle, f.indErr
}

func (f *fakeBackend) Analyze(_ context.Context, req api.AnalysisRequest) (api.AnalysisResult, error) {
	f.record("analyze")
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.result, f.analyzeErr
}

func readyStatus() api.Status {
	return api.Status{Status: "ok", BotInitialized: true, DataLoaded: true}
}
