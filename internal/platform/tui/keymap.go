package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap defines the key bindings for the game and the store.
type KeyMap struct {
	Flap       key.Binding
	Restart    key.Binding
	Menu       key.Binding
	Store      key.Binding
	Tip        key.Binding
	Login      key.Binding
	Screenshot key.Binding
	Quit       key.Binding

	// Store overlay
	Up    key.Binding
	Down  key.Binding
	Buy   key.Binding
	Close key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "esc"),
			key.WithHelp("m", "main menu"),
		),
		Store: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "store"),
		),
		Tip: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tip"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log in"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", "b"),
			key.WithHelp("enter", "buy"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x", "s"),
			key.WithHelp("esc", "close"),
		),
	}
}

// gameHelp lists the bindings shown while the store is closed.
type gameHelp struct {
	keys KeyMap
	menu bool // Main menu entries are showing
	over bool // Game over screen is showing
}

func (h gameHelp) ShortHelp() []key.Binding {
	switch {
	case h.over:
		return []key.Binding{h.keys.Restart, h.keys.Menu, h.keys.Quit}
	case h.menu:
		return []key.Binding{h.keys.Flap, h.keys.Store, h.keys.Tip, h.keys.Login, h.keys.Quit}
	default:
		return []key.Binding{h.keys.Flap, h.keys.Menu, h.keys.Quit}
	}
}

func (h gameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp(), {h.keys.Screenshot}}
}

// storeHelp lists the bindings shown while the store is open.
type storeHelp struct {
	keys KeyMap
}

func (h storeHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Buy, h.keys.Close, h.keys.Quit}
}

func (h storeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// MapKey translates a key press outside the store to a game action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Flap):
		return core.ActionFlap
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Menu):
		return core.ActionMenu
	case key.Matches(msg, k.Store):
		return core.ActionStore
	case key.Matches(msg, k.Tip):
		return core.ActionTip
	case key.Matches(msg, k.Login):
		return core.ActionLogin
	}
	return core.ActionNone
}
