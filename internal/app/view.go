package app

import (
	"strings"
)

// View draws the header, the carousel pane, the optional help block and the
// footer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	parts := []string{m.renderHeader(m.width)}
	if layout.ContentHeight > carouselPane.GetVerticalFrameSize() {
		parts = append(parts, m.renderCarousel(layout))
	}
	if m.showHelp {
		parts = append(parts, m.renderHelp())
	}
	parts = append(parts, m.renderStatus(m.width, layout.FooterRows))
	return padBlock(strings.Join(parts, "\n"), m.width, m.height)
}

// renderHeader shows the go-to prompt while it is open, the title otherwise.
func (m *Model) renderHeader(width int) string {
	if m.mode == modeGoto {
		return truncate(promptStyle.Render(m.input.View()), width)
	}
	title := titleStyle.Render("infiniscroll") + " " + mutedStyle.Render(m.cal.Label(m.current)+"  "+m.notesDir)
	return truncate(title, width)
}

func (m *Model) renderCarousel(layout LayoutDimensions) string {
	content := padBlock(m.carousel.View(), layout.CarouselWidth, layout.CarouselHeight)
	inner := layout.CarouselWidth + carouselPane.GetHorizontalPadding()
	return carouselPane.Width(inner).Render(content)
}

func (m *Model) renderHelp() string {
	return m.help.FullHelpView(m.helpKeys().FullHelp())
}
