package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ripemerchant/repsync/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")
	rankColor    = lipgloss.Color("220")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Text styles
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	rankStyle   = lipgloss.NewStyle().Foreground(rankColor).Bold(true)
	xpStyle     = lipgloss.NewStyle().Foreground(successColor)
	warnStyle   = lipgloss.NewStyle().Foreground(warningColor)
	errStyle    = lipgloss.NewStyle().Foreground(errorColor)

	queueAgeStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("45")),  // 0 attempts
		lipgloss.NewStyle().Foreground(warningColor),          // 1
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // 2
	}
)

// formatAttempts colors a queue entry by how many deliveries have failed
func formatAttempts(e models.QueueEntry) string {
	idx := e.Attempts
	if idx >= len(queueAgeStyles) {
		return errStyle.Render("final")
	}
	if idx == 0 {
		return queueAgeStyles[0].Render("fresh")
	}
	return queueAgeStyles[idx].Render("retry")
}
