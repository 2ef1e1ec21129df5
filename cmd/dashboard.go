package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ripemerchant/repsync/internal/tui/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Live terminal dashboard of progression, metrics, and sync state",
	GroupID: "activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetDuration("refresh")
		if refresh < time.Second {
			refresh = time.Second
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		model := dashboard.NewModel(database, newEngine(database), refresh)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().Duration("refresh", 5*time.Second, "data refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}
