package view

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/api"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
)

// Controller drives a Port. It owns the current State and the order in
// which slots are written, so a surface never shows a half-filled region.
type Controller struct {
	mu       sync.Mutex
	port     Port
	renderer markdown.Renderer
	format   *Formatter
	log      *zap.Logger
	state    State
}

// NewController wires a controller to a port. A nil renderer renders HTML;
// a nil formatter uses "Rs. " and English grouping.
func NewController(port Port, renderer markdown.Renderer, format *Formatter, log *zap.Logger) *Controller {
	if renderer == nil {
		renderer = markdown.HTMLRenderer{}
	}
	if format == nil {
		format = NewFormatter("Rs. ", "en")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{port: port, renderer: renderer, format: format, log: log}
}

// State returns the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Formatter returns the number formatter used for slots.
func (c *Controller) Formatter() *Formatter { return c.format }

func (c *Controller) enter(s State) {
	c.state = s
	c.port.SetViewState(s)
}

// ShowLoading enters Loading.
func (c *Controller) ShowLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enter(Loading)
}

// ShowError sets the message and enters Error.
func (c *Controller) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetError(message)
	c.enter(Error)
}

// ShowAnalyzedStock labels the analysis panel with the symbol being
// analysed.
func (c *Controller) ShowAnalyzedStock(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetMetric(SlotAnalyzedStock, Metric{Text: symbol})
}

// ShowResults writes the indicator slots and the rendered narrative, then
// enters Results.
func (c *Controller) ShowResults(b api.IndicatorBundle, narrative string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics := c.indicatorMetrics(b)
	for _, slot := range IndicatorSlots {
		c.port.SetMetric(slot, metrics[slot])
	}

	rendered, err := c.renderer.Render(narrative)
	if err != nil {
		c.log.Warn("narrative render failed", zap.Error(err))
	}
	c.port.SetAnalysis(rendered)

	c.enter(Results)
}

// ShowSnapshot writes the stock snapshot slots. It does not change State.
func (c *Controller) ShowSnapshot(s api.StockSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	change := ToneNegative
	if s.DiffPercent >= 0 {
		change = TonePositive
	}
	rsi := ClassifyRSI(s.RSI)

	c.port.SetMetric(SlotClose, Metric{Text: c.format.Price(s.Close)})
	c.port.SetMetric(SlotChange, Metric{Text: c.format.Percent(s.DiffPercent), Tone: change})
	c.port.SetMetric(SlotVolume, Metric{Text: c.format.Volume(s.Volume)})
	c.port.SetMetric(SlotRSI, Metric{Text: Fixed2(s.RSI)})
	c.port.SetMetric(SlotRSIStatus, Metric{Text: string(rsi), Tone: rsi.Tone()})
	c.port.SetMetric(SlotWeek52High, Metric{Text: c.format.Price(s.Week52High)})
}

// ShowStatus translates reachability and readiness into the status line
// and returns it.
func (c *Controller) ShowStatus(online, botReady bool) StatusLine {
	line := StatusLine{Online: online, BotReady: online && botReady}
	switch {
	case !online:
		line.Text = StatusOffline
	case botReady:
		line.Text = StatusReady
	default:
		line.Text = StatusNotReady
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetStatus(line)
	return line
}

// ShowCatalogLoading clears the picker while a load is running.
func (c *Controller) ShowCatalogLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetCatalog(CatalogView{Placeholder: PlaceholderLoading})
}

// ShowCatalog fills the picker. fallback selects the placeholder used when
// the list came from the local CSV.
func (c *Controller) ShowCatalog(symbols []string, fallback bool) {
	placeholder := PlaceholderBackend
	if fallback {
		placeholder = PlaceholderFallback
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetCatalog(CatalogView{Symbols: symbols, Placeholder: placeholder})
}

// ShowCatalogUnavailable empties the picker and reports the failure.
func (c *Controller) ShowCatalogUnavailable(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.port.SetCatalog(CatalogView{Placeholder: PlaceholderEmpty})
	c.port.SetError(message)
	c.enter(Error)
}

// indicatorMetrics formats b into the indicator slots.
func (c *Controller) indicatorMetrics(b api.IndicatorBundle) map[Slot]Metric {
	rsi := ClassifyRSI(b.Momentum.RSI)
	trend := ClassifyMACD(b.Momentum.MACD, b.Momentum.MACDSignal)
	pos := ClassifyBands(b.Price.Close, b.BollingerBands.Upper, b.BollingerBands.Lower)

	return map[Slot]Metric{
		SlotMA20:       {Text: c.format.Price(b.MovingAverages.MA20)},
		SlotMA50:       {Text: c.format.Price(b.MovingAverages.MA50)},
		SlotIndClose:   {Text: c.format.Price(b.Price.Close)},
		SlotVWAP:       {Text: c.format.Price(b.Price.VWAP)},
		SlotIndChange:  {Text: c.format.Percent(b.ChangePercent)},
		SlotIndRSI:     {Text: fmt.Sprintf("%s (%s)", Fixed2(b.Momentum.RSI), rsi), Tone: rsi.Tone()},
		SlotMACD:       {Text: Fixed2(b.Momentum.MACD)},
		SlotSignal:     {Text: Fixed2(b.Momentum.MACDSignal)},
		SlotTrend:      {Text: string(trend), Tone: trend.Tone()},
		SlotBBUpper:    {Text: c.format.Price(b.BollingerBands.Upper)},
		SlotBBMiddle:   {Text: c.format.Price(b.BollingerBands.Middle)},
		SlotBBLower:    {Text: c.format.Price(b.BollingerBands.Lower)},
		SlotBBPosition: {Text: string(pos), Tone: pos.Tone()},
	}
}
