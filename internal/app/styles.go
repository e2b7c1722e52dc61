package app

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	carouselPane = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	lockedStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
