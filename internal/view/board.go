package view

import "sync"

// Board is an in-memory Port. One-shot commands render from it after an
// operation completes, and tests use it to observe transitions.
type Board struct {
	mu       sync.Mutex
	state    State
	history  []State
	metrics  map[Slot]Metric
	errMsg   string
	analysis string
	status   StatusLine
	catalog  CatalogView
}

// NewBoard returns an empty board in the Idle state.
func NewBoard() *Board {
	return &Board{metrics: make(map[Slot]Metric)}
}

func (b *Board) SetViewState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
	b.history = append(b.history, s)
}

func (b *Board) SetMetric(slot Slot, m Metric) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics[slot] = m
}

func (b *Board) SetError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = message
}

func (b *Board) SetAnalysis(rendered string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analysis = rendered
}

func (b *Board) SetStatus(s StatusLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = s
}

func (b *Board) SetCatalog(c CatalogView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalog = CatalogView{Symbols: append([]string(nil), c.Symbols...), Placeholder: c.Placeholder}
}

// State returns the last state entered.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// History returns every state entered, oldest first.
func (b *Board) History() []State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]State(nil), b.history...)
}

// Metric returns the content of a slot and whether it was written.
func (b *Board) Metric(slot Slot) (Metric, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.metrics[slot]
	return m, ok
}

// Metrics returns the written slots among slots, in order.
func (b *Board) Metrics(slots []Slot) []SlotMetric {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []SlotMetric
	for _, s := range slots {
		if m, ok := b.metrics[s]; ok {
			out = append(out, SlotMetric{Slot: s, Metric: m})
		}
	}
	return out
}

// Err returns the last error message.
func (b *Board) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// Analysis returns the last rendered narrative.
func (b *Board) Analysis() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.analysis
}

// Status returns the last status line.
func (b *Board) Status() StatusLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Catalog returns the last picker content.
func (b *Board) Catalog() CatalogView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.catalog
}

// SlotMetric pairs a slot with its content.
type SlotMetric struct {
	Slot   Slot
	Metric Metric
}
