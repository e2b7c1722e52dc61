package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// GridWidth is the width of the weekday header and day grid.
const GridWidth = 7*3 - 1

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Styles controls how a month card looks.
type Styles struct {
	Card    lipgloss.Style
	Current lipgloss.Style
	Title   lipgloss.Style
	Weekday lipgloss.Style
	Day     lipgloss.Style
	Weekend lipgloss.Style
	Today   lipgloss.Style
}

// DefaultStyles returns the card palette.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240"))
	return Styles{
		Card:    card,
		Current: card.Copy().BorderForeground(lipgloss.Color("62")),
		Title:   lipgloss.NewStyle().Bold(true),
		Weekday: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Day:     lipgloss.NewStyle(),
		Weekend: lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Today:   lipgloss.NewStyle().Reverse(true).Bold(true),
	}
}

// Card renders month m at the given total width. note is appended below the
// grid as is; callers render it to fit width minus the card frame.
func (c *Calendar) Card(m Month, width int, note string, st Styles) string {
	style := st.Card
	if m == c.Today() {
		style = st.Current
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < GridWidth {
		inner = GridWidth
	}

	lines := []string{
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, st.Title.Render(c.Label(m))),
		"",
	}
	for _, row := range c.grid(m, st) {
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, row))
	}
	if note = strings.TrimRight(note, "\n"); strings.TrimSpace(note) != "" {
		lines = append(lines, "", note)
	}
	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// InnerWidth returns the content width of a card rendered at width.
func (st Styles) InnerWidth(width int) int {
	inner := width - st.Card.GetHorizontalFrameSize()
	if inner < GridWidth {
		return GridWidth
	}
	return inner
}

// grid returns the weekday header followed by one row per week, weeks
// starting on Monday.
func (c *Calendar) grid(m Month, st Styles) []string {
	header := make([]string, len(weekdays))
	for i, name := range weekdays {
		header[i] = st.Weekday.Render(runewidth.FillLeft(name, 2))
	}
	rows := []string{strings.Join(header, " ")}

	first := c.Date(m)
	days := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7
	now := c.now()

	cells := make([]string, 0, 7)
	for i := 0; i < lead; i++ {
		cells = append(cells, "  ")
	}
	for d := 1; d <= days; d++ {
		cell := runewidth.FillLeft(strconv.Itoa(d), 2)
		date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location())
		switch {
		case sameDay(date, now):
			cell = st.Today.Render(cell)
		case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
			cell = st.Weekend.Render(cell)
		default:
			cell = st.Day.Render(cell)
		}
		cells = append(cells, cell)
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, "  ")
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return rows
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
