package api

// Status is the body of GET /api/status.
type Status struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	BotInitialized bool   `json:"bot_initialized"`
	DataLoaded     bool   `json:"data_loaded"`
}

// StockList is the body of GET /stocks.
type StockList struct {
	Symbols []string `json:"symbols"`
	Count   int      `json:"count"`
}

// StockSnapshot is the body of GET /stocks/{symbol}: the latest row for a
// symbol.
type StockSnapshot struct {
	Symbol      string  `json:"symbol"`
	Close       float64 `json:"close"`
	DiffPercent float64 `json:"diff_percent"`
	Volume      int64   `json:"volume"`
	RSI         float64 `json:"rsi"`
	MA20        float64 `json:"ma20"`
	MA50        float64 `json:"ma50"`
	Week52High  float64 `json:"week_52_high"`
}

// Price holds the price group of an IndicatorBundle.
type Price struct {
	Close float64 `json:"close"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	VWAP  float64 `json:"vwap"`
}

// MovingAverages holds the moving-average group of an IndicatorBundle.
type MovingAverages struct {
	MA20 float64 `json:"ma20"`
	MA50 float64 `json:"ma50"`
}

// Momentum holds the oscillator group of an IndicatorBundle.
type Momentum struct {
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
}

// BollingerBands holds the volatility envelope of an IndicatorBundle.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// IndicatorBundle is the body of GET /stocks/{symbol}/indicators. The
// backend sends null for missing values; those decode as zero.
type IndicatorBundle struct {
	Symbol         string         `json:"symbol"`
	Date           string         `json:"date"`
	Price          Price          `json:"price"`
	MovingAverages MovingAverages `json:"moving_averages"`
	Momentum       Momentum       `json:"momentum"`
	BollingerBands BollingerBands `json:"bollinger_bands"`
	Volume         int64          `json:"volume"`
	ChangePercent  float64        `json:"change_percent"`
}

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	Symbol   string `json:"symbol"`
	Strategy string `json:"strategy"`
}

// AnalysisResult is the body returned by POST /analyze. Detail carries the
// message of a framework-level error response such as a 503.
type AnalysisResult struct {
	Symbol   string `json:"symbol"`
	Strategy string `json:"strategy"`
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
	Error    string `json:"error"`
	Detail   string `json:"detail"`
}

// Message returns the failure text of an unsuccessful result, preferring the
// analysis error over the framework detail. It is empty when neither is set.
func (r AnalysisResult) Message() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Detail
}
