// Package dashboard is the live terminal view of rep progression:
// XP and rank, today's call metrics, efficiency rates, and sync queue
// state, refreshed on an interval.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ripemerchant/repsync/internal/db"
	"github.com/ripemerchant/repsync/internal/models"
	reposync "github.com/ripemerchant/repsync/internal/sync"
)

// Panel represents which panel is active
type Panel int

const (
	PanelProgression Panel = iota
	PanelMetrics
	PanelQueue
)

// Model is the main Bubble Tea model for the dashboard TUI
type Model struct {
	DB     *db.DB
	Engine *reposync.Engine

	Width  int
	Height int

	Progression *models.Progression
	Today       models.DailyMetrics
	Window      []models.DailyMetrics
	Queue       []models.QueueEntry

	ActivePanel Panel
	ShowHelp    bool
	LastRefresh time.Time
	Syncing     bool
	Err         error

	Spinner         spinner.Model
	RefreshInterval time.Duration
}

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 12

// TickMsg triggers a data refresh
type TickMsg time.Time

// RefreshDataMsg carries refreshed data
type RefreshDataMsg struct {
	Progression *models.Progression
	Today       models.DailyMetrics
	Window      []models.DailyMetrics
	Queue       []models.QueueEntry
	Timestamp   time.Time
	Err         error
}

// SyncDoneMsg reports a completed manual sync.
type SyncDoneMsg struct {
	Result reposync.FullResult
}

// NewModel creates a new dashboard model
func NewModel(database *db.DB, engine *reposync.Engine, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		DB:              database,
		Engine:          engine,
		RefreshInterval: interval,
		ActivePanel:     PanelProgression,
		Spinner:         sp,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchData(),
		m.scheduleTick(),
		m.Spinner.Tick,
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.fetchData(), m.scheduleTick())

	case RefreshDataMsg:
		m.Progression = msg.Progression
		m.Today = msg.Today
		m.Window = msg.Window
		m.Queue = msg.Queue
		m.LastRefresh = msg.Timestamp
		m.Err = msg.Err
		return m, nil

	case SyncDoneMsg:
		m.Syncing = false
		return m, m.fetchData()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.ActivePanel = (m.ActivePanel + 1) % 3
		return m, nil

	case "1":
		m.ActivePanel = PanelProgression
		return m, nil

	case "2":
		m.ActivePanel = PanelMetrics
		return m, nil

	case "3":
		m.ActivePanel = PanelQueue
		return m, nil

	case "r":
		return m, m.fetchData()

	case "s":
		if m.Syncing {
			return m, nil
		}
		m.Syncing = true
		return m, m.runSync()

	case "?":
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchData returns a command that loads local state and sends a RefreshDataMsg
func (m Model) fetchData() tea.Cmd {
	return func() tea.Msg {
		msg := RefreshDataMsg{Timestamp: time.Now()}

		p, err := m.DB.GetProgression()
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Progression = p

		today, err := m.DB.GetDailyMetrics(db.Today())
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Today = *today

		start := time.Now().AddDate(0, 0, -6).Format("2006-01-02")
		if window, err := m.DB.MetricsSince(start); err == nil {
			msg.Window = window
		}
		if queue, err := m.DB.ListQueue(); err == nil {
			msg.Queue = queue
		}
		return msg
	}
}

// runSync runs a full sync off the UI loop.
func (m Model) runSync() tea.Cmd {
	engine := m.Engine
	return func() tea.Msg {
		return SyncDoneMsg{Result: engine.Full()}
	}
}
