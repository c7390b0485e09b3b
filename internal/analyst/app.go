package analyst

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dallionking/nepse-analyst/internal/catalog"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// Options configures NewApp. Zero values pick the defaults of each
// component.
type Options struct {
	CSVPath   string
	Strategy  string
	Renderer  markdown.Renderer
	Formatter *view.Formatter
	Logger    *zap.Logger
}

// App wires the components around one session and one port.
type App struct {
	Session      *Session
	Controller   *view.Controller
	Poller       *Poller
	Orchestrator *Orchestrator
	Loader       *catalog.Loader

	log *zap.Logger
}

// NewApp builds an application over backend that draws on port.
func NewApp(backend Backend, port view.Port, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	session := NewSession(opts.Strategy)
	ctrl := view.NewController(port, opts.Renderer, opts.Formatter, log.Named("view"))

	return &App{
		Session:      session,
		Controller:   ctrl,
		Poller:       NewPoller(backend, ctrl, session, log.Named("poller")),
		Orchestrator: NewOrchestrator(backend, ctrl, session, log.Named("orchestrator")),
		Loader:       catalog.NewLoader(backend, opts.CSVPath, log.Named("catalog")),
		log:          log,
	}
}

// Start runs the status check and the catalog load concurrently and
// returns when both have updated the view. Neither failure is fatal.
func (a *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Poller.Check(gctx)
		return nil
	})
	g.Go(func() error {
		_, _ = a.LoadCatalog(gctx)
		return nil
	})

	return g.Wait()
}

// LoadCatalog reloads the stock list and fills the picker. On failure the
// session catalog is cleared, the picker shows no stocks and the view
// enters Error.
func (a *App) LoadCatalog(ctx context.Context) (catalog.Catalog, error) {
	a.Controller.ShowCatalogLoading()

	cat, err := a.Loader.Load(ctx)
	if err != nil {
		a.log.Error("catalog unavailable", zap.Error(err))
		a.Session.setCatalog(catalog.Catalog{})
		a.Controller.ShowCatalogUnavailable(MsgNoStocks)
		return catalog.Catalog{}, err
	}

	a.Session.setCatalog(cat)
	a.Controller.ShowCatalog(cat.Symbols, cat.Origin == catalog.OriginCSV)
	a.log.Info("catalog loaded", zap.Stringer("origin", cat.Origin), zap.Int("symbols", len(cat.Symbols)))
	return cat, nil
}
