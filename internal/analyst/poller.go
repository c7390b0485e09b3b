package analyst

import (
	"context"

	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/view"
)

// Poller performs one-shot status checks.
type Poller struct {
	backend Backend
	ctrl    *view.Controller
	session *Session
	log     *zap.Logger
}

// NewPoller creates a poller.
func NewPoller(backend Backend, ctrl *view.Controller, session *Session, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{backend: backend, ctrl: ctrl, session: session, log: log}
}

// Check queries the backend status, updates the status line and records
// the result in the session. Any transport or decode failure reads as
// offline; Check itself never fails.
func (p *Poller) Check(ctx context.Context) view.StatusLine {
	report, err := p.backend.Status(ctx)
	h := Health{Online: err == nil, Report: report}
	if err != nil {
		p.log.Warn("status check failed", zap.Error(err))
	} else {
		p.log.Debug("status checked",
			zap.String("status", report.Status),
			zap.Bool("bot_initialized", report.BotInitialized),
			zap.Bool("data_loaded", report.DataLoaded))
	}

	p.session.setHealth(h)
	return p.ctrl.ShowStatus(h.Online, h.BotReady())
}
