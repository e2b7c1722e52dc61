package carousel

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/treykane/infiniscroll/internal/engine"
)

// KeyMap holds the carousel's scroll bindings.
type KeyMap struct {
	Back        key.Binding
	Forward     key.Binding
	PageBack    key.Binding
	PageForward key.Binding
	PrevItem    key.Binding
	NextItem    key.Binding
	First       key.Binding
	Refresh     key.Binding
}

// DefaultKeyMap returns bindings that follow the scroll axis: up/down for a
// vertical carousel, left/right for a horizontal one.
func DefaultKeyMap(o engine.Orientation) KeyMap {
	km := KeyMap{
		Back:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Forward:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageBack:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page back")),
		PageForward: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page forward")),
		PrevItem:    key.NewBinding(key.WithKeys("[", "shift+tab"), key.WithHelp("[", "previous item")),
		NextItem:    key.NewBinding(key.WithKeys("]", "tab"), key.WithHelp("]", "next item")),
		First:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first loaded item")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
	if o == engine.Horizontal {
		km.Back = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left"))
		km.Forward = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right"))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Forward, k.PrevItem, k.NextItem}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward, k.PageBack, k.PageForward},
		{k.PrevItem, k.NextItem, k.First, k.Refresh},
	}
}
