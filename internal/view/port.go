// Package view holds the display state machine and the presentation port
// the analysis core writes through. Nothing here knows about terminals or
// HTML; a surface implements Port and decides how each slot is drawn.
package view

// State is the visible region of the analysis panel.
type State int

const (
	Idle State = iota
	Loading
	Error
	Results
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Results:
		return "results"
	default:
		return "unknown"
	}
}

// Slot names a display field.
type Slot string

// Stock snapshot slots, written on every selection change.
const (
	SlotClose      Slot = "metric-close"
	SlotChange     Slot = "metric-change"
	SlotVolume     Slot = "metric-volume"
	SlotRSI        Slot = "metric-rsi"
	SlotRSIStatus  Slot = "metric-rsi-status"
	SlotWeek52High Slot = "metric-52w"
)

// Indicator slots, written when entering Results.
const (
	SlotAnalyzedStock Slot = "analyzed-stock-name"
	SlotMA20          Slot = "ind-ma20"
	SlotMA50          Slot = "ind-ma50"
	SlotIndClose      Slot = "ind-close"
	SlotVWAP          Slot = "ind-vwap"
	SlotIndChange     Slot = "ind-change"
	SlotIndRSI        Slot = "ind-rsi"
	SlotMACD          Slot = "ind-macd"
	SlotSignal        Slot = "ind-signal"
	SlotTrend         Slot = "ind-trend"
	SlotBBUpper       Slot = "ind-bb-upper"
	SlotBBMiddle      Slot = "ind-bb-middle"
	SlotBBLower       Slot = "ind-bb-lower"
	SlotBBPosition    Slot = "ind-bb-pos"
)

// SnapshotSlots lists the stock snapshot slots in display order.
var SnapshotSlots = []Slot{SlotClose, SlotChange, SlotVolume, SlotRSI, SlotRSIStatus, SlotWeek52High}

// IndicatorSlots lists the indicator slots in display order.
var IndicatorSlots = []Slot{
	SlotMA20, SlotMA50, SlotIndClose, SlotVWAP, SlotIndChange,
	SlotIndRSI, SlotMACD, SlotSignal, SlotTrend,
	SlotBBUpper, SlotBBMiddle, SlotBBLower, SlotBBPosition,
}

// Label returns a short human label for the slot.
func (s Slot) Label() string {
	if l, ok := slotLabels[s]; ok {
		return l
	}
	return string(s)
}

var slotLabels = map[Slot]string{
	SlotClose:         "Close",
	SlotChange:        "Change",
	SlotVolume:        "Volume",
	SlotRSI:           "RSI",
	SlotRSIStatus:     "RSI Status",
	SlotWeek52High:    "52W High",
	SlotAnalyzedStock: "Stock",
	SlotMA20:          "MA20",
	SlotMA50:          "MA50",
	SlotIndClose:      "Close",
	SlotVWAP:          "VWAP",
	SlotIndChange:     "Change",
	SlotIndRSI:        "RSI",
	SlotMACD:          "MACD",
	SlotSignal:        "Signal",
	SlotTrend:         "Trend",
	SlotBBUpper:       "BB Upper",
	SlotBBMiddle:      "BB Middle",
	SlotBBLower:       "BB Lower",
	SlotBBPosition:    "BB Position",
}

// Tone is a colour hint attached to a metric.
type Tone string

const (
	ToneNone       Tone = ""
	TonePositive   Tone = "positive"
	ToneNegative   Tone = "negative"
	ToneOverbought Tone = "overbought"
	ToneOversold   Tone = "oversold"
	ToneNeutral    Tone = "neutral"
)

var toneColors = map[Tone]string{
	TonePositive:   "#4caf50",
	ToneNegative:   "#f44336",
	ToneOverbought: "#f44336",
	ToneOversold:   "#4caf50",
	ToneNeutral:    "#ff9800",
}

// Color returns the hex colour token for the tone, or "" for ToneNone.
func (t Tone) Color() string { return toneColors[t] }

// Metric is the formatted content of one slot.
type Metric struct {
	Text string
	Tone Tone
}

// Status indicator texts.
const (
	StatusReady    = "API Online"
	StatusNotReady = "⚠️ API Online | RAG Bot Not Initialized"
	StatusOffline  = "❌ API Offline"
)

// StatusLine is the backend indicator shown outside the analysis panel.
type StatusLine struct {
	Online   bool
	BotReady bool
	Text     string
}

// Catalog picker placeholders.
const (
	PlaceholderLoading  = "Loading stocks..."
	PlaceholderBackend  = "Select a stock..."
	PlaceholderFallback = "Type or select a stock..."
	PlaceholderEmpty    = "No stocks available"
)

// CatalogView is the content of the stock picker.
type CatalogView struct {
	Symbols     []string
	Placeholder string
}

// Port is the presentation surface. Implementations must be safe to call
// from any goroutine.
type Port interface {
	SetViewState(State)
	SetMetric(Slot, Metric)
	SetError(message string)
	SetAnalysis(rendered string)
	SetStatus(StatusLine)
	SetCatalog(CatalogView)
}
