package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/treykane/infiniscroll/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Each constant below identifies an app-level action. A key press is looked
// up in the keyToAction map; keys that map to no action are handed to the
// carousel, which owns scrolling.
//
// Default key assignments are declared in defaultActionKeys. Users can
// override any assignment via the "keybindings" map in config.yaml.
// ---------------------------------------------------------------------------

const (
	// actionToday centers the carousel on the current month.
	actionToday = "month.today"

	// actionGoto opens the YYYY-MM prompt.
	actionGoto = "month.goto"

	// actionReload raises the carousel's reload signal, rebuilding cards
	// around the current month.
	actionReload = "carousel.reload"

	// actionHelp toggles the full key reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
// Key strings use the Bubble Tea notation.
var defaultActionKeys = map[string][]string{
	actionToday:  {"t"},
	actionGoto:   {"g", ":"},
	actionReload: {"shift+r", "ctrl+r"},
	actionHelp:   {"?"},
	actionQuit:   {"q", "ctrl+c"},
}

var actionDescriptions = map[string]string{
	actionToday:  "today",
	actionGoto:   "go to month",
	actionReload: "reload",
	actionHelp:   "help",
	actionQuit:   "quit",
}

// actionOrder fixes the order actions appear in help.
var actionOrder = []string{actionToday, actionGoto, actionReload, actionHelp, actionQuit}

// loadKeybindings initializes the key and action maps from the defaults and
// then the config overrides. Unknown actions are logged and ignored.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

// applyKeybindingOverride replaces an action's full default key set.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map. If two actions
// claim the same key, the first one keeps it and a warning is logged.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	for _, action := range actionOrder {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form. A single uppercase letter becomes "shift+<letter>" since
// Bubble Tea reports shifted letters as uppercase runes.
//
//	normalizeKeyString("Ctrl+R")  → "ctrl+r"
//	normalizeKeyString(" T ")     → "shift+t"
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey looks up the action bound to the given key string.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// actionBinding exposes an action as a bubbles key.Binding for help views.
func (m *Model) actionBinding(action string) key.Binding {
	labels := m.actionKeyLabels(action)
	return key.NewBinding(
		key.WithKeys(m.keyForAction[action]...),
		key.WithHelp(strings.Join(labels, "/"), actionDescriptions[action]),
	)
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":     "↑",
		"down":   "↓",
		"left":   "←",
		"right":  "→",
		"enter":  "Enter",
		"esc":    "Esc",
		"tab":    "Tab",
		"home":   "Home",
		"pgup":   "PgUp",
		"pgdown": "PgDn",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = strings.ToUpper(part)
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}

// helpKeyMap joins the app's actions with the carousel's scroll bindings
// for the bubbles help view.
type helpKeyMap struct {
	app      []key.Binding
	carousel [][]key.Binding
	short    []key.Binding
}

func (h helpKeyMap) ShortHelp() []key.Binding {
	return h.short
}

func (h helpKeyMap) FullHelp() [][]key.Binding {
	return append([][]key.Binding{h.app}, h.carousel...)
}

func (m *Model) helpKeys() helpKeyMap {
	app := make([]key.Binding, 0, len(actionOrder))
	for _, action := range actionOrder {
		app = append(app, m.actionBinding(action))
	}
	short := append([]key.Binding{}, m.carousel.KeyMap.ShortHelp()...)
	short = append(short, m.actionBinding(actionToday), m.actionBinding(actionHelp))
	return helpKeyMap{app: app, carousel: m.carousel.KeyMap.FullHelp(), short: short}
}
