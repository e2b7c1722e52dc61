// layout.go centralizes terminal layout calculations for the month browser.
//
// The UI is a vertical stack: a one-row header (title or go-to prompt), the
// bordered carousel pane, the optional full help block, and the footer. The
// footer reserves either two or three rows depending on terminal width and
// footer content density.
//
// All dimensions are gathered into a single LayoutDimensions struct so they
// are computed once and reused by View and applyLayout.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	FooterRows     int // rows reserved for the status footer
	HelpRows       int // rows used by the full help block, 0 when hidden
	ContentHeight  int // rows left for the carousel pane including its border
	CarouselWidth  int // usable width inside the carousel pane
	CarouselHeight int // usable height inside the carousel pane
}

// calculateLayout computes all UI dimensions from the terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	footerRows := m.footerHeightForWidth(m.width)
	helpRows := 0
	if m.showHelp {
		helpRows = lipgloss.Height(m.renderHelp())
	}
	contentHeight := max(0, m.height-HeaderRows-footerRows-helpRows)

	return LayoutDimensions{
		FooterRows:     footerRows,
		HelpRows:       helpRows,
		ContentHeight:  contentHeight,
		CarouselWidth:  max(0, m.width-carouselPane.GetHorizontalFrameSize()),
		CarouselHeight: max(0, contentHeight-carouselPane.GetVerticalFrameSize()),
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout hands the carousel its viewport. The carousel re-measures and
// re-centers on the next layout pass.
func (m *Model) applyLayout() tea.Cmd {
	layout := m.calculateLayout()
	m.help.Width = m.width
	return m.carousel.SetSize(layout.CarouselWidth, layout.CarouselHeight)
}

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, m.applyLayout()
}
