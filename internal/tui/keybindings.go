package tui

import (
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypeRefresh
	ActionTypeToggleRead
	ActionTypeDeleteEntry
	ActionTypeDeleteSelected
	ActionTypeDeleteAll
	ActionTypeSelectAll
)

var actionTypes = map[string]ActionType{
	config.ActionRefresh:        ActionTypeRefresh,
	config.ActionToggleRead:     ActionTypeToggleRead,
	config.ActionDeleteEntry:    ActionTypeDeleteEntry,
	config.ActionDeleteSelected: ActionTypeDeleteSelected,
	config.ActionDeleteAll:      ActionTypeDeleteAll,
	config.ActionSelectAll:      ActionTypeSelectAll,
}

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type    ActionType
	Key     string
	Help    string
	Confirm string // Non-empty if confirmation required
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// Destructive reports whether the action removes records on the backend.
func (a Action) Destructive() bool {
	switch a.Type {
	case ActionTypeDeleteEntry, ActionTypeDeleteSelected, ActionTypeDeleteAll:
		return true
	default:
		return false
	}
}

// KeybindingHandler resolves configured keybindings to actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding) *KeybindingHandler {
	return &KeybindingHandler{keybindings: keybindings}
}

// Resolve attempts to resolve a key press to an action.
func (h *KeybindingHandler) Resolve(k string) (Action, bool) {
	kb, exists := h.keybindings[k]
	if !exists {
		return Action{}, false
	}

	t, ok := actionTypes[kb.Action]
	if !ok {
		return Action{}, false
	}

	help := kb.Help
	if help == "" {
		help = kb.Action
	}

	return Action{
		Type:    t,
		Key:     k,
		Help:    help,
		Confirm: kb.Confirm,
	}, true
}

// Bindings returns the configured keybindings as help entries, sorted by key.
func (h *KeybindingHandler) Bindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))

	out := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		a, ok := h.Resolve(k)
		if !ok {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, a.Help)))
	}
	return out
}

// navKeys are the fixed navigation bindings.
type navKeys struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Lane     key.Binding
	Toggle   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultNavKeys() navKeys {
	return navKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Lane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch lane")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k navKeys) short() []key.Binding {
	return []key.Binding{k.Lane, k.Toggle, k.Help, k.Quit}
}

func (k navKeys) all() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Lane, k.Toggle, k.Help, k.Quit}
}
