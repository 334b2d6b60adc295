package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colosseum/internal/core"
)

// KeyMap defines the spectator key bindings.
type KeyMap struct {
	Pause     key.Binding
	Restart   key.Binding
	Reset     key.Binding
	SpawnRock key.Binding
	SpawnCar  key.Binding
	Debug     key.Binding
	Results   key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.SpawnRock, k.SpawnCar, k.Results, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Restart, k.Reset},
		{k.SpawnRock, k.SpawnCar, k.Debug},
		{k.Results, k.Quit},
	}
}

// DefaultKeyMap returns the bindings of the local spectator.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Reset: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new roster"),
		),
		SpawnRock: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "rock"),
		),
		SpawnCar: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "car"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "colliders"),
		),
		Results: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "results"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ViewerKeyMap returns the bindings of a remote viewer. Viewers share one
// arena, so they cannot pause it or replace the roster.
func ViewerKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Pause.SetEnabled(false)
	k.Reset.SetEnabled(false)
	k.Debug.SetEnabled(false)
	return k
}

// MapKey translates a key message to a spectator action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.SpawnRock):
		return core.ActionSpawnRock
	case key.Matches(msg, k.SpawnCar):
		return core.ActionSpawnCar
	case key.Matches(msg, k.Debug):
		return core.ActionToggleDebug
	case key.Matches(msg, k.Results):
		return core.ActionResults
	}
	return core.ActionNone
}
