package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0, nil)
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8000/", 5*time.Second, nil)
	if c.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", c.BaseURL())
	}
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.httpClient.Timeout)
	}
	if c.log == nil {
		t.Error("expected a no-op logger when nil is passed")
	}
}

func TestStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"online","message":"running","bot_initialized":true,"data_loaded":true}`))
	})

	s, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !s.BotInitialized || !s.DataLoaded || s.Status != "online" {
		t.Errorf("Status = %+v", s)
	}
}

func TestStatusDecodesErrorStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"bot_initialized":false}`))
	})

	s, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status on 503 with JSON body should decode, got %v", err)
	}
	if s.BotInitialized {
		t.Error("BotInitialized = true, want false")
	}
}

func TestStatusBadJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Status(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Op != "GET /api/status" {
		t.Errorf("err = %#v, want *Error for GET /api/status", err)
	}
}

func TestStocks(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbols":["TSLA","MSFT"],"count":2}`))
	})

	got, err := c.Stocks(context.Background())
	if err != nil {
		t.Fatalf("Stocks: %v", err)
	}
	if len(got) != 2 || got[0] != "TSLA" || got[1] != "MSFT" {
		t.Errorf("Stocks = %v, want [TSLA MSFT]", got)
	}
}

func TestStocksNonOK(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"Stock data not loaded"}`))
	})

	_, err := c.Stocks(context.Background())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
	}
}

func TestStockAndIndicators(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stocks/NABIL":
			w.Write([]byte(`{"symbol":"NABIL","close":512.5,"diff_percent":-1.25,"volume":120345,"rsi":44.1,"week_52_high":640}`))
		case "/stocks/NABIL/indicators":
			w.Write([]byte(`{
				"symbol":"NABIL","date":"2024-05-02",
				"price":{"close":512.5,"open":null,"vwap":510.2},
				"moving_averages":{"ma20":505,"ma50":498.3},
				"momentum":{"rsi":44.1,"macd":1.2,"macd_signal":0.8},
				"bollinger_bands":{"upper":530,"middle":505,"lower":480},
				"change_percent":-1.25
			}`))
		default:
			http.NotFound(w, r)
		}
	})

	snap, err := c.Stock(context.Background(), "NABIL")
	if err != nil {
		t.Fatalf("Stock: %v", err)
	}
	if snap.Close != 512.5 || snap.Volume != 120345 || snap.Week52High != 640 {
		t.Errorf("Stock = %+v", snap)
	}

	b, err := c.Indicators(context.Background(), "NABIL")
	if err != nil {
		t.Fatalf("Indicators: %v", err)
	}
	if b.Price.VWAP != 510.2 || b.Price.Open != 0 || b.MovingAverages.MA50 != 498.3 ||
		b.Momentum.MACDSignal != 0.8 || b.BollingerBands.Lower != 480 || b.ChangePercent != -1.25 {
		t.Errorf("Indicators = %+v", b)
	}

	if _, err := c.Indicators(context.Background(), "MISSING"); !errors.Is(err, ErrStatus) {
		t.Errorf("missing symbol err = %v, want ErrStatus", err)
	}
}

func TestAnalyze(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		if req.Symbol != "NABIL" || req.Strategy != "swing trading" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"symbol":"NABIL","strategy":"swing trading","success":true,"analysis":"## Hold"}`))
	})

	res, err := c.Analyze(context.Background(), AnalysisRequest{Symbol: "NABIL", Strategy: "swing trading"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Success || res.Analysis != "## Hold" {
		t.Errorf("Analyze = %+v", res)
	}
}

func TestAnalyzeErrorBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"RAG bot not initialized."}`))
	})

	res, err := c.Analyze(context.Background(), AnalysisRequest{Symbol: "NABIL"})
	if err != nil {
		t.Fatalf("Analyze should decode a 503 body, got %v", err)
	}
	if res.Success || res.Message() != "RAG bot not initialized." {
		t.Errorf("Analyze = %+v, Message = %q", res, res.Message())
	}
}

func TestAnalysisResultMessage(t *testing.T) {
	r := AnalysisResult{Error: "bad strategy", Detail: "ignored"}
	if r.Message() != "bad strategy" {
		t.Errorf("Message = %q, want error field first", r.Message())
	}
	if (AnalysisResult{}).Message() != "" {
		t.Error("empty result should have empty message")
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, nil)
	_, err := c.Stocks(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", apiErr.StatusCode)
	}
}

func TestContextCancel(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Status(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
