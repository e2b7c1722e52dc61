package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes a key press. The go-to prompt owns the keyboard while
// open; otherwise app actions win and anything unbound scrolls the carousel.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeGoto {
		return m.handleGotoKey(msg)
	}

	switch m.actionForKey(msg.String()) {
	case actionQuit:
		return m, tea.Quit
	case actionToday:
		return m, m.jumpTo(m.cal.Today())
	case actionGoto:
		return m, m.openGotoPrompt()
	case actionReload:
		m.status = "Reloading"
		return m, m.carousel.Reload()
	case actionHelp:
		m.showHelp = !m.showHelp
		return m, m.applyLayout()
	}

	_, cmd := m.carousel.Update(msg)
	return m, tea.Batch(cmd, m.syncIndex())
}

func (m *Model) openGotoPrompt() tea.Cmd {
	m.mode = modeGoto
	m.input.SetValue("")
	m.status = "Enter a month as YYYY-MM"
	return m.input.Focus()
}

func (m *Model) closeGotoPrompt() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeGotoPrompt()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		return m, m.submitGoto()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitGoto parses the prompt and centers the carousel on the month.
func (m *Model) submitGoto() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	m.closeGotoPrompt()
	month, err := m.cal.Parse(value)
	if err != nil {
		m.setStatusError("Invalid month: "+value, err, "input", value)
		return nil
	}
	return m.jumpTo(month)
}
