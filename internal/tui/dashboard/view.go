package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ripemerchant/repsync/internal/progression"
)

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	if m.Err != nil {
		return m.renderError()
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	availableHeight := m.Height - 2 // Leave room for footer
	panelHeight := availableHeight / 3

	panels := lipgloss.JoinVertical(lipgloss.Left,
		m.renderProgressionPanel(panelHeight),
		m.renderMetricsPanel(panelHeight),
		m.renderQueuePanel(panelHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, panels, m.renderFooter())
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder

	s.WriteString("repsync dashboard (resize for full view)\n\n")
	if m.Progression != nil {
		s.WriteString(fmt.Sprintf("%s lvl %d, %d XP\n",
			m.Progression.Rank, m.Progression.Level, m.Progression.TotalXP))
	}
	s.WriteString(fmt.Sprintf("Dials today: %d | Queued: %d\n", m.Today.Dials, len(m.Queue)))
	s.WriteString("\nq:quit r:refresh s:sync ?:help")

	return s.String()
}

// renderError renders an error message
func (m Model) renderError() string {
	return fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.Err)
}

// renderProgressionPanel renders XP, rank, and completion state (Panel 1)
func (m Model) renderProgressionPanel(height int) string {
	var content strings.Builder

	if m.Progression == nil {
		content.WriteString(subtleStyle.Render("No progression recorded"))
		return m.wrapPanel("PROGRESSION", content.String(), height, PanelProgression)
	}

	p := m.Progression
	name := p.Name
	if name == "" {
		name = "Rep"
	}
	content.WriteString(titleStyle.Render(name))
	content.WriteString("  ")
	content.WriteString(rankStyle.Render(p.Rank))
	content.WriteString(subtleStyle.Render(" (" + progression.RankName(p.TotalXP) + ")"))
	content.WriteString("\n")
	content.WriteString(xpStyle.Render(fmt.Sprintf("Level %d, %d XP", p.Level, p.TotalXP)))
	content.WriteString("\n")

	if next := progression.NextRankXP(p.TotalXP); next > 0 {
		content.WriteString(m.renderXPBar(p.TotalXP, next))
		content.WriteString("\n")
	}

	content.WriteString(fmt.Sprintf("Modules %d  Bosses %d  Exams %d  Deals %d  Streak %dd\n",
		len(p.CompletedModules), len(p.DefeatedBosses), len(p.PassedExams),
		p.ClosedDeals, p.StreakDays))

	return m.wrapPanel("PROGRESSION", content.String(), height, PanelProgression)
}

// renderMetricsPanel renders today's counts and window rates (Panel 2)
func (m Model) renderMetricsPanel(height int) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("Today: %d dials, %d connects, %d appts, %d shows\n",
		m.Today.Dials, m.Today.Connects, m.Today.Appointments, m.Today.Shows))

	if progression.IsRamping(m.Window) {
		content.WriteString(subtleStyle.Render(
			fmt.Sprintf("ramping: under %d dials in window", progression.MinDialsForMetrics)))
		content.WriteString("\n")
	} else {
		em := progression.Rollup(m.Window)
		content.WriteString(fmt.Sprintf("7d rates: drop %.0f%%  appt %.0f%%  2min+ %.0f%%  show %.0f%%\n",
			em.Sub30sDropRate*100, em.CallToApptRate*100, em.TwoPlusMinRate*100, em.ShowRate*100))
	}

	return m.wrapPanel("METRICS", content.String(), height, PanelMetrics)
}

// renderQueuePanel renders the pending outbox (Panel 3)
func (m Model) renderQueuePanel(height int) string {
	var content strings.Builder

	if len(m.Queue) == 0 {
		content.WriteString(subtleStyle.Render("Queue empty"))
	} else {
		maxLines := height - 2
		for i, e := range m.Queue {
			if i >= maxLines {
				content.WriteString(subtleStyle.Render(fmt.Sprintf("... %d more", len(m.Queue)-i)))
				content.WriteString("\n")
				break
			}
			content.WriteString(fmt.Sprintf("%s #%d %s queued %s\n",
				formatAttempts(e), e.ID, e.Operation,
				e.CreatedAt.Local().Format("15:04:05")))
		}
	}

	return m.wrapPanel("PUSH QUEUE", content.String(), height, PanelQueue)
}

// renderXPBar renders progress toward the next rank threshold
func (m Model) renderXPBar(current, next int) string {
	width := m.Width - 20
	if width < 10 {
		width = 10
	}
	filled := current * width / next
	if filled > width {
		filled = width
	}
	bar := xpStyle.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, current, next)
}

// wrapPanel wraps content in a bordered panel with a title
func (m Model) wrapPanel(title, content string, height int, panel Panel) string {
	style := panelStyle
	if m.ActivePanel == panel {
		style = activePanelStyle
	}

	header := panelTitleStyle.Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, header, content)

	return style.
		Width(m.Width - 2).
		Height(height - 2).
		Render(body)
}

// renderFooter renders the keybinding hints and sync state
func (m Model) renderFooter() string {
	left := helpStyle.Render("tab:panel s:sync r:refresh ?:help q:quit")

	var right string
	switch {
	case m.Syncing:
		right = m.Spinner.View() + warnStyle.Render(" syncing")
	case !m.LastRefresh.IsZero():
		right = subtleStyle.Render("refreshed " + m.LastRefresh.Format("15:04:05"))
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	help := `repsync dashboard

  tab, 1-3   switch panel
  s          run a full sync now
  r          refresh data
  ?          toggle this help
  q, ctrl-c  quit

Panels refresh automatically every ` + m.RefreshInterval.String() + `.`

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		panelStyle.Render(help))
}
