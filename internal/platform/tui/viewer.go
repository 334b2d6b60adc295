package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/hazard"
	"github.com/vovakirdan/colosseum/internal/platform/canvas"
	"github.com/vovakirdan/colosseum/internal/spectate"
	"github.com/vovakirdan/colosseum/internal/storage"
)

// FrameMsg carries a frame published by the hub.
type FrameMsg spectate.Frame

// closedMsg reports that the hub ended the subscription.
type closedMsg struct{}

// waitFrame blocks until the next frame or the end of the subscription.
func waitFrame(s *spectate.Subscriber) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.Frames():
			return FrameMsg(f)
		case <-s.Done():
			return closedMsg{}
		}
	}
}

// ViewerModel shows the shared arena of a hub. It never touches the engine:
// frames come in through the subscription and requests go out as commands.
type ViewerModel struct {
	hub   *spectate.Hub
	sub   *spectate.Subscriber
	store *storage.Store
	user  string

	frame spectate.Frame
	keys  KeyMap
	help  help.Model

	results     ResultsModel
	hasResults  bool
	showResults bool
	shownFor    uuid.UUID

	width    int
	height   int
	quitting bool
}

// NewViewerModel subscribes a new viewer to the hub.
func NewViewerModel(hub *spectate.Hub, store *storage.Store, user string, width, height int) (ViewerModel, error) {
	sub, err := hub.Subscribe()
	if err != nil {
		return ViewerModel{}, err
	}
	return ViewerModel{
		hub:    hub,
		sub:    sub,
		store:  store,
		user:   user,
		frame:  hub.Last(),
		keys:   ViewerKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}, nil
}

// Init waits for the first frame.
func (m ViewerModel) Init() tea.Cmd {
	return waitFrame(m.sub)
}

// Update handles messages and updates the model state.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.applyFrame(spectate.Frame(msg))
		return m, waitFrame(m.sub)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.showResults {
			if p, ok := m.touchPoint(msg.X, msg.Y-headerRows); ok {
				m.hub.Send(spectate.TouchCmd{At: p})
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.hasResults {
			m.results.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	}
	return m, nil
}

func (m *ViewerModel) applyFrame(f spectate.Frame) {
	m.frame = f
	switch {
	case f.Result == nil:
		m.showResults = false
	case f.MatchID != m.shownFor:
		m.shownFor = f.MatchID
		var standings []storage.Standing
		if m.store != nil {
			standings, _ = m.store.Leaderboard(5)
		}
		m.results = NewResultsModel(*f.Result, standings, m.width, m.height)
		m.hasResults = true
		m.showResults = true
	}
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.hub.Unsubscribe(m.sub)
		return m, tea.Quit
	case core.ActionRestart:
		m.hub.Send(spectate.RestartCmd{})
	case core.ActionSpawnRock:
		m.hub.Send(spectate.SpawnCmd{Kind: hazard.KindRock})
	case core.ActionSpawnCar:
		m.hub.Send(spectate.SpawnCmd{Kind: hazard.KindCar})
	case core.ActionResults:
		if m.hasResults {
			m.showResults = !m.showResults
		}
	case core.ActionNone:
		if m.showResults {
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// touchPoint maps a cell of the frame screen to the arena.
func (m ViewerModel) touchPoint(col, row int) (core.Vec, bool) {
	s := m.frame.Screen
	if s == nil || col < 0 || row < 0 || col >= s.Width() || row >= s.Height() {
		return core.Vec{}, false
	}
	return canvas.New(s, m.frame.ArenaW, m.frame.ArenaH).ToArena(col, row), true
}

// View renders the latest frame.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	line := fmt.Sprintf("COLOSSEUM live  %s  %.1fs  %d watching  (%s)",
		m.frame.State, m.frame.Elapsed, m.hub.Viewers(), m.user)
	if m.frame.Result != nil {
		line += fmt.Sprintf("  next match in %.0fs", m.frame.Restart)
	}
	b.WriteString(headerStyle.Render(line))
	b.WriteString("\n")

	if m.showResults {
		b.WriteString(m.results.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	width := 0
	if m.frame.Screen != nil {
		width = m.frame.Screen.Width()
		b.WriteString(RenderScreen(m.frame.Screen))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(renderLog(m.frame.Log, logRows))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Close ends the subscription. Safe to call after quitting.
func (m ViewerModel) Close() {
	m.hub.Unsubscribe(m.sub)
}
