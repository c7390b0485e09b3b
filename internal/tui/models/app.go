package models

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dallionking/nepse-analyst/internal/analyst"
	"github.com/Dallionking/nepse-analyst/internal/catalog"
	"github.com/Dallionking/nepse-analyst/internal/markdown"
	"github.com/Dallionking/nepse-analyst/internal/tui/components"
	"github.com/Dallionking/nepse-analyst/internal/tui/styles"
	"github.com/Dallionking/nepse-analyst/internal/view"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type startedMsg struct{}

type selectedMsg struct {
	symbol string
	err    error
}

type analyzedMsg struct{ err error }

type checkedMsg struct{}

type reloadedMsg struct{ err error }

type csvChangedMsg struct{ change catalog.Change }

type watchClosedMsg struct{}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

const (
	pickerWidth      = 22
	chromeHeight     = 3 // header, strategy bar, footer
	snapshotPerRow   = 3
	indicatorsPerRow = 5
	minViewport      = 3

	// Rows of the main panel that are not narrative: borders, the
	// snapshot block, the results title, the indicator grid and a divider.
	aboveNarrative = 16
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// AppOptions configures NewAppModel.
type AppOptions struct {
	// Strategies offered on the strategy bar. Empty uses analyst.Strategies.
	Strategies []string
	// MarkdownStyle is a glamour style name. Resolve "auto" before the
	// program starts; background detection cannot run inside it.
	MarkdownStyle string
	// Watcher reloads a CSV-backed catalog when the file changes. Optional.
	Watcher *catalog.Watcher
	Logger  *zap.Logger
}

// AppModel is the interactive analyst screen. Controller writes arrive as
// port messages; user actions run as commands against the analyst.App.
type AppModel struct {
	app *analyst.App
	ctx context.Context
	log *zap.Logger

	changes <-chan catalog.Change

	// Sub-components
	header   components.Header
	tabBar   components.TabBar
	picker   components.Picker
	spinner  spinner.Model
	viewport viewport.Model

	// Presentation state written through the port
	state     view.State
	metrics   map[view.Slot]view.Metric
	errMsg    string
	narrative string

	mdStyle  string
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewAppModel creates the model. ctx bounds every backend call the model
// starts.
func NewAppModel(ctx context.Context, app *analyst.App, opts AppOptions) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = analyst.Strategies
	}
	current := app.Session.Strategy()
	tabs := append([]string(nil), strategies...)
	if !slices.Contains(tabs, current) {
		tabs = append([]string{current}, tabs...)
	}
	tabBar := components.TabBar{Tabs: tabs}
	tabBar.Select(current)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	picker := components.NewPicker()
	picker.Placeholder = view.PlaceholderLoading

	var changes <-chan catalog.Change
	if opts.Watcher != nil {
		changes = opts.Watcher.Watch(ctx)
	}

	return AppModel{
		app:      app,
		ctx:      ctx,
		log:      log,
		changes:  changes,
		tabBar:   tabBar,
		picker:   picker,
		spinner:  sp,
		viewport: viewport.New(40, minViewport),
		metrics:  make(map[view.Slot]view.Metric),
		mdStyle:  opts.MarkdownStyle,
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m AppModel) startCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.app.Start(m.ctx)
		return startedMsg{}
	}
}

func (m AppModel) selectCmd(symbol string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Orchestrator.SelectStock(m.ctx, symbol)
		return selectedMsg{symbol: symbol, err: err}
	}
}

func (m AppModel) analyzeCmd(strategy string) tea.Cmd {
	return func() tea.Msg {
		return analyzedMsg{err: m.app.Orchestrator.Analyze(m.ctx, strategy)}
	}
}

func (m AppModel) checkCmd() tea.Cmd {
	return func() tea.Msg {
		m.app.Poller.Check(m.ctx)
		return checkedMsg{}
	}
}

func (m AppModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.LoadCatalog(m.ctx)
		return reloadedMsg{err: err}
	}
}

func waitForChange(changes <-chan catalog.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return watchClosedMsg{}
		}
		return csvChangedMsg{change: c}
	}
}

// ---------------------------------------------------------------------------
// Bubble Tea interface
// ---------------------------------------------------------------------------

// Init runs the bootstrap and starts watching the CSV.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startCmd()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update handles keys, port messages and command results.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.reflow()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// --- port messages ---
	case ViewStateMsg:
		m.state = msg.State
		if m.state == view.Loading {
			return m, m.spinner.Tick
		}
		return m, nil

	case MetricMsg:
		m.metrics[msg.Slot] = msg.Metric
		return m, nil

	case ErrorMsg:
		m.errMsg = msg.Message
		return m, nil

	case AnalysisMsg:
		m.narrative = msg.Rendered
		m.renderNarrative()
		return m, nil

	case StatusMsg:
		m.header.Status = msg.Line
		return m, nil

	case CatalogMsg:
		m.picker.SetItems(msg.Catalog.Symbols, msg.Catalog.Placeholder)
		switch msg.Catalog.Placeholder {
		case view.PlaceholderBackend:
			m.header.Source = catalog.OriginBackend.String()
		case view.PlaceholderFallback:
			m.header.Source = catalog.OriginCSV.String()
		default:
			m.header.Source = ""
		}
		return m, nil

	// --- command results ---
	case spinner.TickMsg:
		if m.state != view.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case selectedMsg:
		m.header.Symbol = msg.symbol
		return m, nil

	case analyzedMsg:
		if errors.Is(msg.err, analyst.ErrBusy) {
			m.log.Debug("analyze ignored, already running")
		}
		return m, nil

	case csvChangedMsg:
		cmds := []tea.Cmd{waitForChange(m.changes)}
		cat := m.app.Session.Catalog()
		if cat.Origin == catalog.OriginCSV || len(cat.Symbols) == 0 {
			m.log.Info("csv changed, reloading catalog", zap.String("path", msg.change.Path))
			cmds = append(cmds, m.reloadCmd())
		}
		return m, tea.Batch(cmds...)

	case startedMsg, checkedMsg, reloadedMsg, watchClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey maps keys to actions. While the filter has focus most keys go
// to the filter input.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.Filtering() {
		switch key {
		case "esc":
			m.picker.ClearFilter()
			return m, nil
		case "enter":
			m.picker.Blur()
			return m, m.selectCurrent()
		case "up":
			m.picker.Move(-1)
			return m, nil
		case "down":
			m.picker.Move(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "/":
		return m, m.picker.Focus()
	case "esc":
		m.picker.ClearFilter()
	case "up", "k":
		m.picker.Move(-1)
	case "down", "j":
		m.picker.Move(1)
	case "home", "g":
		m.picker.Move(-m.picker.Len())
	case "end", "G":
		m.picker.Move(m.picker.Len())
	case "enter":
		return m, m.selectCurrent()
	case "a":
		// One analysis at a time; the orchestrator also guards this.
		if m.state == view.Loading {
			return m, nil
		}
		return m, m.analyzeCmd(m.tabBar.Active())
	case "s", "tab":
		m.tabBar.Next()
		m.app.Session.SetStrategy(m.tabBar.Active())
	case "S", "shift+tab":
		m.tabBar.Prev()
		m.app.Session.SetStrategy(m.tabBar.Active())
	case "r":
		return m, m.checkCmd()
	case "R":
		return m, m.reloadCmd()
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) selectCurrent() tea.Cmd {
	symbol := m.picker.Selected()
	if symbol == "" {
		return nil
	}
	return m.selectCmd(symbol)
}

// View renders header, strategy bar, body and footer.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Starting..."
	}

	left := styles.Panel.Render(m.picker.View())
	if m.picker.Filtering() {
		left = styles.PanelFocused.Render(m.picker.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderMain())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.Render(),
		m.tabBar.Render(),
		body,
		m.footerView().Render(),
	)
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func (m AppModel) mainWidth() int {
	return max(m.width-pickerWidth-4, 30)
}

func (m AppModel) tiles(slots []view.Slot, width int) []components.MetricTile {
	tiles := make([]components.MetricTile, 0, len(slots))
	for _, s := range slots {
		tiles = append(tiles, components.MetricTile{Label: s.Label(), Metric: m.metrics[s], Width: width})
	}
	return tiles
}

// renderMain draws the snapshot and only the region of the current state.
func (m AppModel) renderMain() string {
	w := m.mainWidth()
	inner := w - 4

	snapshot := styles.Title.Render("Snapshot") + "\n" +
		components.MetricGrid(m.tiles(view.SnapshotSlots, inner/snapshotPerRow), snapshotPerRow)

	var region string
	switch m.state {
	case view.Idle:
		region = styles.Dim("Select a stock and press a to analyze.")
	case view.Loading:
		region = m.spinner.View() + " " + styles.Value.Render("Analyzing "+m.metrics[view.SlotAnalyzedStock].Text) +
			styles.Dim(" ("+m.tabBar.Active()+")")
	case view.Error:
		region = styles.ErrorPanel.Width(inner - 2).Render(m.errMsg)
	case view.Results:
		title := styles.Title.Render("Analysis: ") + styles.Gold(m.metrics[view.SlotAnalyzedStock].Text)
		grid := components.MetricGrid(m.tiles(view.IndicatorSlots, inner/indicatorsPerRow), indicatorsPerRow)
		region = lipgloss.JoinVertical(lipgloss.Left, title, grid, styles.Divider(inner), m.viewport.View())
	}

	return styles.Panel.Width(w - 2).Render(lipgloss.JoinVertical(lipgloss.Left, snapshot, "", region))
}

// renderNarrative renders the narrative for the current viewport width.
func (m *AppModel) renderNarrative() {
	out := m.narrative
	if r, err := markdown.NewTerminalRenderer(m.mdStyle, m.viewport.Width); err == nil {
		if rendered, err := r.Render(m.narrative); err == nil {
			out = rendered
		} else {
			m.log.Warn("narrative render failed", zap.Error(err))
		}
	}
	m.viewport.SetContent(strings.TrimRight(out, "\n"))
	m.viewport.GotoTop()
}

// reflow recalculates component dimensions after a terminal resize.
func (m *AppModel) reflow() {
	w := m.width

	m.header.Width = w
	m.tabBar.Width = w

	bodyHeight := max(m.height-chromeHeight, 8)
	m.picker.Width = pickerWidth
	m.picker.Height = bodyHeight - 2

	m.viewport.Width = m.mainWidth() - 4
	m.viewport.Height = max(bodyHeight-aboveNarrative, minViewport)

	if m.narrative != "" {
		m.renderNarrative()
	}
}

// Footer hints change while the filter has focus.
func (m AppModel) footerView() components.Footer {
	if m.picker.Filtering() {
		return components.FilterFooter(m.width)
	}
	return components.AnalystFooter(m.width)
}
