package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/infiniscroll/internal/calendar"
	"github.com/treykane/infiniscroll/internal/carousel"
	"github.com/treykane/infiniscroll/internal/config"
	"github.com/treykane/infiniscroll/internal/engine"
)

// mode controls which input widget receives keys.
type mode int

const (
	modeBrowse mode = iota
	modeGoto
)

// Model holds the Bubble Tea state for the month browser.
type Model struct {
	// Calendar state. current is the owner side of the carousel's index
	// binding: the carousel reports into it and is told about changes to it.
	cal         *calendar.Calendar
	current     calendar.Month
	orientation engine.Orientation
	styles      calendar.Styles

	// Notes
	notesDir string
	notes    *noteCache

	// UI widgets
	carousel *carousel.Model[calendar.Month]
	input    textinput.Model
	help     help.Model
	mode     mode
	status   string
	showHelp bool

	// Layout sizing
	width  int
	height int

	// Keybindings
	keyForAction map[string][]string
	keyToAction  map[string]string

	// Watcher
	fileWatchInterval time.Duration
	fileWatchSnapshot fileWatchSnapshot
	fileWatchPrimed   bool

	reloads int
}

// New prepares the UI model from a loaded configuration.
func New(cfg config.Config) (*Model, error) {
	return newModel(cfg, time.Now)
}

func newModel(cfg config.Config, now func() time.Time) (*Model, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "YYYY-MM"
	input.CharLimit = InputCharLimit
	input.Prompt = "Go to: "

	cal := calendar.New(now, cfg.MonthRange)
	m := &Model{
		cal:               cal,
		current:           cal.Today(),
		orientation:       cfg.OrientationValue(),
		styles:            calendar.DefaultStyles(),
		notesDir:          cfg.NotesDir,
		notes:             newNoteCache(cfg.NotesDir, cfg.GlamourStyle),
		input:             input,
		help:              help.New(),
		mode:              modeBrowse,
		status:            "Ready",
		fileWatchInterval: time.Duration(cfg.WatchInterval),
	}
	m.loadKeybindings(cfg)

	ctrl, err := engine.New(engine.Config[calendar.Month]{
		Start:                  m.current,
		Spacing:                cfg.Spacing,
		Multiplier:             cfg.ContentMultiplier,
		Orientation:            m.orientation,
		Increase:               cal.Next,
		Decrease:               cal.Prev,
		OnCenteredIndexChanged: m.handleCenteredMonth,
		OnReloadReset:          m.handleReloadReset,
		Refresh:                m.refreshNotes,
		SuspendScrollOnUpdate:  cfg.SuspendScrollOnUpdate,
		ScrollsToTop:           cfg.ScrollsToTop,
	})
	if err != nil {
		return nil, err
	}
	m.carousel = carousel.New(ctrl, m.renderCard)
	return m, nil
}

// Init mounts the carousel and starts the notes watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.carousel.Init(), m.scheduleFileWatchTick())
}

// Update routes messages: app keys first, then everything else to the
// carousel. After the carousel ran, the owner-side month is pushed back so
// the binding stays in sync.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case fileWatchTickMsg:
		return m.handleFileWatchTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeGoto {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		_, cmd := m.carousel.Update(msg)
		return m, tea.Batch(inputCmd, cmd, m.syncIndex())
	}
	_, cmd := m.carousel.Update(msg)
	return m, tea.Batch(cmd, m.syncIndex())
}

// syncIndex echoes the owner-side month back into the carousel. A change
// that came from the carousel itself is recognized and ignored there.
func (m *Model) syncIndex() tea.Cmd {
	if m.current == m.carousel.Controller().ExternalIndex() {
		return nil
	}
	return m.carousel.SetIndex(m.current)
}

// jumpTo makes month the owner-side month and centers the carousel on it.
func (m *Model) jumpTo(month calendar.Month) tea.Cmd {
	m.current = month
	m.status = "Centering " + m.cal.Label(month)
	return m.syncIndex()
}

func (m *Model) handleCenteredMonth(month calendar.Month) {
	m.current = month
}

func (m *Model) handleReloadReset() {
	m.reloads++
	m.status = "Reloaded around " + m.cal.Label(m.current)
}

// refreshNotes is the carousel's refresh hook. It drops rendered notes off
// the UI loop; the carousel re-renders every card once done is called.
func (m *Model) refreshNotes(done func()) {
	notes, dir := m.notes, m.notesDir
	go func() {
		defer done()
		notes.Clear()
		entries, err := walkFileWatchEntries(dir)
		if err != nil {
			appLog.Warn("refresh notes", "root", dir, "error", err)
			return
		}
		appLog.Debug("notes refreshed", "root", dir, "notes", len(entries))
	}()
}

// renderCard is the carousel's content func.
func (m *Model) renderCard(month calendar.Month, width, _ int) string {
	cardWidth := min(width, MaxVerticalCardWidth)
	if m.orientation == engine.Horizontal {
		cardWidth = min(width, HorizontalCardWidth)
	}
	note := m.notes.Rendered(m.cal.Key(month), m.styles.InnerWidth(cardWidth))
	card := m.cal.Card(month, cardWidth, note, m.styles)
	if m.orientation == engine.Vertical {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
	}
	return card
}
