package vim

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Action names what a key binding does.
type Action string

// Actions understood by the views.
const (
	ActionNone      Action = ""
	ActionQuit      Action = "quit"
	ActionDown      Action = "down"
	ActionUp        Action = "up"
	ActionTop       Action = "top"
	ActionBottom    Action = "bottom"
	ActionSelect    Action = "select"
	ActionInsert    Action = "insert"
	ActionExit      Action = "exit"
	ActionFavorite  Action = "favorite"
	ActionRemove    Action = "remove"
	ActionReload    Action = "reload"
	ActionCopy      Action = "copy"
	ActionBack      Action = "back"
	ActionNextTab   Action = "next-tab"
	ActionPrevTab   Action = "prev-tab"
	ActionHelp      Action = "help"
	ActionClearLine Action = "clear-line"
)

// KeyBinding maps a key to an action.
type KeyBinding struct {
	key         string
	description string
	action      Action
}

// NewKeyBinding creates a new key binding.
func NewKeyBinding(key, description string, action Action) *KeyBinding {
	return &KeyBinding{
		key:         key,
		description: description,
		action:      action,
	}
}

// Key returns the key string.
func (kb *KeyBinding) Key() string {
	return kb.key
}

// Description returns the description.
func (kb *KeyBinding) Description() string {
	return kb.description
}

// Action returns the bound action.
func (kb *KeyBinding) Action() Action {
	return kb.action
}

// Matches returns true if the key message matches this binding.
func (kb *KeyBinding) Matches(msg tea.KeyMsg) bool {
	return matchKey(kb.key, msg)
}

// matchKey checks if a key string matches a tea.KeyMsg.
// Single-rune keys are case-sensitive.
func matchKey(key string, msg tea.KeyMsg) bool {
	switch strings.ToLower(key) {
	case "enter":
		return msg.Type == tea.KeyEnter
	case "esc", "escape":
		return msg.Type == tea.KeyEsc
	case "space":
		return msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && string(msg.Runes) == " ")
	case "tab":
		return msg.Type == tea.KeyTab
	case "shift+tab":
		return msg.Type == tea.KeyShiftTab
	case "backspace":
		return msg.Type == tea.KeyBackspace
	case "up":
		return msg.Type == tea.KeyUp
	case "down":
		return msg.Type == tea.KeyDown
	case "ctrl+c":
		return msg.Type == tea.KeyCtrlC
	case "ctrl+u":
		return msg.Type == tea.KeyCtrlU
	case "ctrl+r":
		return msg.Type == tea.KeyCtrlR
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			return string(msg.Runes) == key
		}
		return false
	}
}

// KeyMap holds key bindings organized by mode.
type KeyMap struct {
	bindings map[Mode][]*KeyBinding
}

// NewKeyMap creates a new empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		bindings: make(map[Mode][]*KeyBinding),
	}
}

// Register adds a key binding for a mode.
func (km *KeyMap) Register(mode Mode, key, description string, action Action) {
	km.bindings[mode] = append(km.bindings[mode], NewKeyBinding(key, description, action))
}

// GetBindings returns all bindings for a mode.
func (km *KeyMap) GetBindings(mode Mode) []*KeyBinding {
	return km.bindings[mode]
}

// FindBinding finds a matching binding for the given mode and key message.
func (km *KeyMap) FindBinding(mode Mode, msg tea.KeyMsg) (*KeyBinding, bool) {
	for _, kb := range km.bindings[mode] {
		if kb.Matches(msg) {
			return kb, true
		}
	}
	return nil, false
}

// Resolve returns the action bound to msg in mode, or ActionNone.
func (km *KeyMap) Resolve(mode Mode, msg tea.KeyMsg) Action {
	if kb, ok := km.FindBinding(mode, msg); ok {
		return kb.action
	}
	return ActionNone
}

// ListKeyMap returns bindings shared by the result and favorites lists.
func ListKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Register(ModeNormal, "j", "down", ActionDown)
	km.Register(ModeNormal, "down", "down", ActionDown)
	km.Register(ModeNormal, "k", "up", ActionUp)
	km.Register(ModeNormal, "up", "up", ActionUp)
	km.Register(ModeNormal, "g", "top", ActionTop)
	km.Register(ModeNormal, "G", "bottom", ActionBottom)
	km.Register(ModeNormal, "enter", "details", ActionSelect)
	km.Register(ModeNormal, "f", "favorite", ActionFavorite)
	km.Register(ModeNormal, "space", "favorite", ActionFavorite)
	km.Register(ModeNormal, "x", "remove", ActionRemove)
	km.Register(ModeNormal, "d", "remove", ActionRemove)
	km.Register(ModeNormal, "r", "reload", ActionReload)
	km.Register(ModeNormal, "/", "search", ActionInsert)
	km.Register(ModeNormal, "i", "search", ActionInsert)

	km.Register(ModeInsert, "esc", "done", ActionExit)
	km.Register(ModeInsert, "enter", "done", ActionExit)
	km.Register(ModeInsert, "down", "results", ActionExit)
	km.Register(ModeInsert, "ctrl+u", "clear", ActionClearLine)

	return km
}

// GlobalKeyMap returns bindings handled by the main view.
func GlobalKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Register(ModeNormal, "q", "quit", ActionQuit)
	km.Register(ModeNormal, "tab", "next tab", ActionNextTab)
	km.Register(ModeNormal, "shift+tab", "prev tab", ActionPrevTab)
	km.Register(ModeNormal, "?", "help", ActionHelp)

	km.Register(ModeInsert, "tab", "next tab", ActionNextTab)
	km.Register(ModeInsert, "shift+tab", "prev tab", ActionPrevTab)

	return km
}

// DetailKeyMap returns bindings for the details view.
func DetailKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Register(ModeNormal, "esc", "back", ActionBack)
	km.Register(ModeNormal, "backspace", "back", ActionBack)
	km.Register(ModeNormal, "y", "copy image url", ActionCopy)
	km.Register(ModeNormal, "f", "favorite", ActionFavorite)

	return km
}
