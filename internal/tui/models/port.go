package models

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/nepse-analyst/internal/view"
)

// ViewStateMsg reports a view state transition.
type ViewStateMsg struct{ State view.State }

// MetricMsg writes one slot.
type MetricMsg struct {
	Slot   view.Slot
	Metric view.Metric
}

// ErrorMsg sets the error region.
type ErrorMsg struct{ Message string }

// AnalysisMsg sets the rendered narrative.
type AnalysisMsg struct{ Rendered string }

// StatusMsg sets the backend status line.
type StatusMsg struct{ Line view.StatusLine }

// CatalogMsg replaces the picker content.
type CatalogMsg struct{ Catalog view.CatalogView }

// ProgramPort is a view.Port that forwards every write to a running
// program as a message, so only Update mutates the model. Writes before
// Attach are dropped.
type ProgramPort struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewProgramPort returns a detached port.
func NewProgramPort() *ProgramPort { return &ProgramPort{} }

// Attach directs writes to send, normally (*tea.Program).Send.
func (p *ProgramPort) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

func (p *ProgramPort) emit(msg tea.Msg) {
	p.mu.RLock()
	send := p.send
	p.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (p *ProgramPort) SetViewState(s view.State) { p.emit(ViewStateMsg{State: s}) }

func (p *ProgramPort) SetMetric(slot view.Slot, m view.Metric) {
	p.emit(MetricMsg{Slot: slot, Metric: m})
}

func (p *ProgramPort) SetError(message string) { p.emit(ErrorMsg{Message: message}) }

func (p *ProgramPort) SetAnalysis(rendered string) { p.emit(AnalysisMsg{Rendered: rendered}) }

func (p *ProgramPort) SetStatus(s view.StatusLine) { p.emit(StatusMsg{Line: s}) }

func (p *ProgramPort) SetCatalog(c view.CatalogView) {
	c.Symbols = append([]string(nil), c.Symbols...)
	p.emit(CatalogMsg{Catalog: c})
}
