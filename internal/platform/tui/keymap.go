package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// GameKeyMap holds the in-level key bindings.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Use     key.Binding
	Pause   key.Binding
	Restart key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the default in-level bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space", "jump"),
		),
		Use: key.NewBinding(
			key.WithKeys("e", "down", "s", "j"),
			key.WithHelp("e", "use"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []binding
}

type binding struct {
	key    *key.Binding
	action core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap())
}

// NewKeyMapperWith creates a key mapper for custom bindings.
func NewKeyMapperWith(keys GameKeyMap) *KeyMapper {
	km := &KeyMapper{keys: keys}
	km.bindings = []binding{
		{&km.keys.Quit, core.ActionQuit},
		{&km.keys.Left, core.ActionLeft},
		{&km.keys.Right, core.ActionRight},
		{&km.keys.Jump, core.ActionJump},
		{&km.keys.Use, core.ActionUse},
		{&km.keys.Pause, core.ActionPause},
		{&km.keys.Restart, core.ActionRestart},
		{&km.keys.Confirm, core.ActionConfirm},
		{&km.keys.Back, core.ActionBack},
	}
	return km
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, *b.key) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
