package carousel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/treykane/infiniscroll/internal/engine"
)

// View draws the items intersecting the viewport. Items outside it are
// measured but never composed.
func (m *Model[I]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	ps := m.visible(m.measure())

	var lines []string
	if m.orientation == engine.Horizontal {
		lines = m.composeColumns(ps)
	} else {
		lines = m.composeRows(ps)
	}
	if m.refreshing && len(lines) > 0 {
		lines[0] = m.spinner.View() + " Refreshing..."
	}
	for i, line := range lines {
		lines[i] = fit(line, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m *Model[I]) visible(ps []placement[I]) []placement[I] {
	length := m.viewportLength()
	out := ps[:0:0]
	for _, p := range ps {
		rel := p.start - m.offset
		if rel+p.extent <= 0 || rel >= length {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (m *Model[I]) composeRows(ps []placement[I]) []string {
	lines := make([]string, m.height)
	for _, p := range ps {
		rel := p.start - m.offset
		for j, line := range strings.Split(p.rendered, "\n") {
			row := rel + j
			if row < 0 || row >= m.height {
				continue
			}
			lines[row] = line
		}
	}
	return lines
}

func (m *Model[I]) composeColumns(ps []placement[I]) []string {
	rows := make([]strings.Builder, m.height)
	cursor := make([]int, m.height)
	for _, p := range ps {
		rel := p.start - m.offset
		block := strings.Split(p.rendered, "\n")
		for r := 0; r < m.height; r++ {
			line := ""
			if r < len(block) {
				line = block[r]
			}
			line = fit(line, p.extent)
			lo, hi := 0, p.extent
			if rel < 0 {
				lo = -rel
			}
			if rel+p.extent > m.width {
				hi = m.width - rel
			}
			col := rel + lo
			if col > cursor[r] {
				rows[r].WriteString(strings.Repeat(" ", col-cursor[r]))
			}
			rows[r].WriteString(cutCells(line, lo, hi))
			cursor[r] = col + (hi - lo)
		}
	}
	out := make([]string, m.height)
	for r := range rows {
		out[r] = rows[r].String()
	}
	return out
}

// fit pads or truncates s to exactly width cells, keeping its styling.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// cutCells returns the cells [lo, hi) of s. A slice that starts past the
// first cell loses its styling since escape sequences cannot be split
// safely.
func cutCells(s string, lo, hi int) string {
	if lo <= 0 {
		return ansi.Truncate(s, hi, "")
	}
	var b strings.Builder
	col := 0
	for _, r := range ansi.Strip(s) {
		w := runewidth.RuneWidth(r)
		if col >= lo && col+w <= hi {
			b.WriteRune(r)
		} else if col < lo && col+w > lo {
			b.WriteString(strings.Repeat(" ", col+w-lo))
		}
		col += w
		if col >= hi {
			break
		}
	}
	return lipgloss.NewStyle().Width(hi - lo).Render(b.String())
}
