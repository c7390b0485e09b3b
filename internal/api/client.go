// Package api is a small JSON client for the NEPSE trading-bot backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrStatus marks a response with a non-2xx status code.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode marks a response body that is not the expected JSON.
	ErrDecode = errors.New("decoding response")
)

// Error describes a failed backend call. Every transport, status and decode
// failure returned by Client is an *Error.
type Error struct {
	Op         string // "GET /stocks", ...
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for baseURL. A zero timeout means requests are
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// Status fetches GET /api/status. The body is decoded whatever the status
// code, so a 5xx with a JSON body still reports the backend as reachable.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var s Status
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &s, false)
	return s, err
}

// Stocks fetches GET /stocks and returns the symbol list as sent.
func (c *Client) Stocks(ctx context.Context) ([]string, error) {
	var l StockList
	if err := c.do(ctx, http.MethodGet, "/stocks", nil, &l, true); err != nil {
		return nil, err
	}
	return l.Symbols, nil
}

// Stock fetches GET /stocks/{symbol}.
func (c *Client) Stock(ctx context.Context, symbol string) (StockSnapshot, error) {
	var s StockSnapshot
	err := c.do(ctx, http.MethodGet, "/stocks/"+url.PathEscape(symbol), nil, &s, true)
	return s, err
}

// Indicators fetches GET /stocks/{symbol}/indicators.
func (c *Client) Indicators(ctx context.Context, symbol string) (IndicatorBundle, error) {
	var b IndicatorBundle
	err := c.do(ctx, http.MethodGet, "/stocks/"+url.PathEscape(symbol)+"/indicators", nil, &b, true)
	return b, err
}

// Analyze posts an analysis request. Like Status, the body is decoded for
// any status code: the backend reports most failures in the body itself.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	var r AnalysisResult
	err := c.do(ctx, http.MethodPost, "/analyze", req, &r, false)
	return r, err
}

// do performs one request and decodes the JSON response into out. When
// requireOK is set a non-2xx status is an error even if the body decodes.
func (c *Client) do(ctx context.Context, method, path string, in, out any, requireOK bool) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("backend request failed", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("backend response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if requireOK && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: ErrStatus}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}
