package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/infiniscroll/internal/calendar"
	"github.com/treykane/infiniscroll/internal/config"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestModel(t *testing.T, mutate func(*config.Config)) *Model {
	t.Helper()
	cfg := config.Config{
		NotesDir:          t.TempDir(),
		ContentMultiplier: 3,
		MonthRange:        120,
		WatchInterval:     config.Duration(time.Millisecond),
		GlamourStyle:      "notty",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := newModel(cfg, fixedNow)
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m
}

// settle starts the model at the given terminal size and drains every
// carousel message.
func settle(t *testing.T, m *Model, width, height int) {
	t.Helper()
	pump(t, m, m.Init())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	pump(t, m, cmd)
}

// pump runs cmd and every command it produces. Only carousel messages are
// fed back; watcher ticks, cursor blinks and spinner ticks would otherwise
// reschedule forever.
func pump(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.LessOrEqual(t, steps, 5000, "model did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if !strings.HasPrefix(fmt.Sprintf("%T", msg), "carousel.") {
				continue
			}
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	pump(t, m, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func centered(t *testing.T, m *Model) calendar.Month {
	t.Helper()
	month, ok := m.carousel.Centered()
	require.True(t, ok, "expected a centered month")
	return month
}

func TestNewStartsOnCurrentMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	assert.Equal(t, calendar.Month(0), centered(t, m))
	assert.Equal(t, calendar.Month(0), m.current)
	assert.Equal(t, "October 2026", m.cal.Label(m.current))
}

func TestNewRejectsInvalidOrientation(t *testing.T) {
	_, err := newModel(config.Config{NotesDir: t.TempDir(), Orientation: "diagonal"}, fixedNow)
	assert.Error(t, err)
}

func TestNewUsesConfiguredFileWatchInterval(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) {
		cfg.WatchInterval = config.Duration(10 * time.Second)
	})
	assert.Equal(t, 10*time.Second, m.effectiveFileWatchInterval())
}

func TestNextItemKeyUpdatesOwnerMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	press(t, m, runes("]"))

	assert.Equal(t, calendar.Month(1), centered(t, m), "November should be centered")
	assert.Equal(t, calendar.Month(1), m.current, "owner month should follow the carousel")
	assert.Equal(t, calendar.Month(1), m.carousel.Controller().ExternalIndex())
}

func TestTodayKeyReturnsToCurrentMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)
	press(t, m, runes("]"))
	press(t, m, runes("]"))

	press(t, m, runes("t"))

	assert.Equal(t, calendar.Month(0), centered(t, m))
	assert.Equal(t, calendar.Month(0), m.current)
}

func TestGotoPromptCentersParsedMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	press(t, m, runes("g"))
	require.Equal(t, modeGoto, m.mode)
	press(t, m, runes("2027-03"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, calendar.Month(5), centered(t, m), "March 2027 should be centered")
	assert.Equal(t, calendar.Month(5), m.current)
}

func TestGotoPromptReportsInvalidMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	press(t, m, runes(":"))
	press(t, m, runes("2027-13"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, strings.HasPrefix(m.status, "Invalid month"), "status: %q", m.status)
	assert.Equal(t, calendar.Month(0), m.current)
}

func TestGotoPromptEscCancels(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	press(t, m, runes("g"))
	press(t, m, runes("2027"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, "Cancelled", m.status)
}

func TestReloadKeyResetsAroundCurrentMonth(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)
	press(t, m, runes("]"))

	press(t, m, runes("R"))

	assert.Equal(t, 1, m.reloads)
	assert.Equal(t, "Reloaded around November 2026", m.status)
	assert.Equal(t, calendar.Month(1), centered(t, m), "November should stay centered")
	assert.False(t, m.carousel.Controller().ReloadPending(), "reload signal should be consumed")
}

func TestHelpToggleShrinksCarousel(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)
	before := m.calculateLayout().CarouselHeight

	press(t, m, runes("?"))

	require.True(t, m.showHelp)
	assert.Less(t, m.calculateLayout().CarouselHeight, before)
	assert.Contains(t, m.View(), "go to month")
}

func TestQuitKeyReturnsQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewFillsTerminal(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 40)
	for i, line := range lines {
		assert.Equal(t, 80, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, view, "October 2026")
}

func TestViewBeforeResizeIsLoading(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestRenderCardIncludesMonthNote(t *testing.T) {
	m := newTestModel(t, nil)
	mustWriteFile(t, filepath.Join(m.notesDir, "2026-10.md"), "ship the carousel\n")

	card := m.renderCard(0, 76, 30)
	assert.Contains(t, card, "ship the carousel")
	assert.Equal(t, 76, lipgloss.Width(card), "vertical card should be centered across the width")
}

func TestRenderCardHorizontalUsesFixedWidth(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Orientation = "horizontal" })

	card := m.renderCard(0, 200, 12)
	assert.Equal(t, HorizontalCardWidth, lipgloss.Width(card))
}

func TestRefreshHookClearsNotes(t *testing.T) {
	m := newTestModel(t, nil)
	mustWriteFile(t, filepath.Join(m.notesDir, "2026-10.md"), "cached\n")
	m.notes.Rendered("2026-10", 40)
	require.Equal(t, 1, m.notes.Len())

	done := make(chan struct{})
	m.refreshNotes(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh hook never finished")
	}
	assert.Equal(t, 0, m.notes.Len())
}
