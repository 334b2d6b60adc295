package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/hazard"
	"github.com/vovakirdan/colosseum/internal/platform/canvas"
	"github.com/vovakirdan/colosseum/internal/storage"
)

// Rows around the arena.
const (
	headerRows = 1
	logRows    = 4
	helpRows   = 1
	chromeRows = headerRows + 1 + logRows + helpRows // header, separator, log, help
)

// Options configures the local spectator.
type Options struct {
	Names   []string
	StartHP int
	Players engine.PlayerOptions
	Store   *storage.Store // optional, feeds the session standings
	Logger  *log.Logger
}

// Model is the Bubble Tea model of the local spectator. It owns the engine
// and ticks it from the Bubble Tea loop.
type Model struct {
	eng    *engine.Engine
	opts   Options
	config core.RuntimeConfig
	cellW  float64
	cellH  float64

	screen     *core.Screen
	canvas     *canvas.Canvas
	inputFrame core.InputFrame
	keys       KeyMap
	help       help.Model

	results     ResultsModel
	hasResults  bool
	showResults bool
	shownFor    uuid.UUID // match whose results were already opened

	paused   bool
	quitting bool
	width    int
	height   int
}

// NewModel sizes the arena from the terminal and registers the roster.
// cellW and cellH are the arena size of one terminal cell.
func NewModel(eng *engine.Engine, opts Options, cfg core.RuntimeConfig, cellW, cellH float64) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rows := max(cfg.ScreenH-chromeRows, 1)
	screen := core.NewScreen(cfg.ScreenW, rows)
	m := Model{
		eng:        eng,
		opts:       opts,
		config:     cfg,
		cellW:      cellW,
		cellH:      cellH,
		screen:     screen,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.sizeArena()
	if err := m.register(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) sizeArena() {
	w := float64(m.screen.Width()) * m.cellW
	h := float64(m.screen.Height()) * m.cellH
	m.eng.SetArenaSize(w, h)
	if m.canvas == nil {
		m.canvas = canvas.New(m.screen, w, h)
	} else {
		m.canvas.SetArena(w, h)
	}
}

func (m *Model) register() error {
	return m.eng.RegisterPlayers(context.Background(), m.opts.Names, m.opts.StartHP, m.opts.Players)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		if m.showResults {
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
		if msg.String() == "?" {
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleMouse turns a left click on the arena into a touch.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showResults || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row := msg.Y - headerRows
	if row < 0 || row >= m.screen.Height() || msg.X < 0 || msg.X >= m.screen.Width() {
		return m, nil
	}
	m.inputFrame.Touch(m.canvas.ToArena(msg.X, row))
	return m, nil
}

// handleResize processes window resize events. The match keeps running in
// the rebuilt arena.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
	m.sizeArena()
	m.help.Width = msg.Width
	if m.hasResults {
		m.results.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick applies the actions of the frame and advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame
	ctx := context.Background()

	if in.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if in.Has(core.ActionRestart) {
		if err := m.eng.Restart(ctx); err != nil {
			m.opts.Logger.Error("restart failed", "err", err)
		}
		m.showResults = false
	}
	if in.Has(core.ActionReset) {
		m.eng.Reset()
		m.sizeArena()
		if err := m.register(); err != nil {
			m.opts.Logger.Error("new roster failed", "err", err)
		}
		m.showResults = false
	}
	if in.Has(core.ActionSpawnRock) {
		m.spawn(ctx, hazard.KindRock)
	}
	if in.Has(core.ActionSpawnCar) {
		m.spawn(ctx, hazard.KindCar)
	}
	if in.Has(core.ActionToggleDebug) {
		m.eng.SetDebug(!m.eng.Debug())
	}
	if in.Has(core.ActionResults) && m.hasResults {
		m.showResults = !m.showResults
	}
	for _, p := range in.Touches {
		m.eng.Touch(p.X, p.Y)
	}

	if !m.paused {
		m.eng.Tick(m.config.TickDelta())
	}

	if ended, ok := m.eng.State().(engine.Ended); ok && ended.ID != m.shownFor {
		m.shownFor = ended.ID
		m.results = NewResultsModel(ended.Result, m.standings(), m.width, m.height)
		m.hasResults = true
		m.showResults = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) spawn(ctx context.Context, kind string) {
	if _, err := m.eng.SpawnHazard(ctx, kind); err != nil {
		m.opts.Logger.Warn("spawn failed", "kind", kind, "err", err)
	}
}

func (m Model) standings() []storage.Standing {
	if m.opts.Store == nil {
		return nil
	}
	board, err := m.opts.Store.Leaderboard(5)
	if err != nil {
		m.opts.Logger.Warn("could not read standings", "err", err)
		return nil
	}
	return board
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	if m.showResults {
		b.WriteString(m.results.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	m.screen.Clear()
	m.eng.Render(m.canvas, m.canvas, "")
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ")
	}
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", m.screen.Width())))
	b.WriteString("\n")
	b.WriteString(renderLog(m.eng.LogEntries(), logRows))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) header() string {
	alive, total := 0, 0
	for _, p := range m.eng.Players() {
		total++
		if p.Alive() {
			alive++
		}
	}
	line := fmt.Sprintf("COLOSSEUM  %s  %.1fs  %d/%d standing",
		m.eng.State().Name(), m.eng.Match().Elapsed().Seconds(), alive, total)
	if m.paused {
		line += "  [PAUSED]"
	}
	if m.eng.Debug() {
		line += "  [COLLIDERS]"
	}
	return headerStyle.Render(line)
}

// Run starts the Bubble Tea program with the given engine and roster.
func Run(eng *engine.Engine, opts Options, cfg core.RuntimeConfig, cellW, cellH float64) error {
	model, err := NewModel(eng, opts, cfg, cellW, cellH)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks spawn touch rings
	)

	_, err = p.Run()
	return err
}
