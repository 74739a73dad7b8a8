package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(colorLavender)

	cellStyle       = lipgloss.NewStyle().Width(3).Align(lipgloss.Center)
	cursorCellStyle = cellStyle.Background(colorSurface1)
	winCellStyle    = cellStyle.Foreground(colorGreen).Bold(true)
	markXStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	markOStyle      = lipgloss.NewStyle().Foreground(colorPink)

	statusStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)
