package cmd

import (
	"fmt"
	"os"

	"github.com/ripemerchant/repsync/internal/db"
	"github.com/ripemerchant/repsync/internal/settings"
	reposync "github.com/ripemerchant/repsync/internal/sync"
	"github.com/ripemerchant/repsync/internal/twenty"
	"github.com/spf13/cobra"
)

var version string

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "repsync",
	Short: "Local-first sales rep progression tracker synced to Twenty CRM",
	Long: `repsync - Track call dispositions, daily activity metrics, and gamified
rep progression (XP, levels, ranks) on-device, with bidirectional sync
to a Twenty CRM workspace.

Writes land locally first and are pushed to the CRM best-effort; failed
pushes queue in a durable outbox and replay on the next sync cycle.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "activity", Title: "Activity Commands:"},
		&cobra.Group{ID: "progression", Title: "Progression Commands:"},
		&cobra.Group{ID: "sync", Title: "Sync Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

// openStore opens the local database under the repsync home directory.
func openStore() (*db.DB, error) {
	dir, err := settings.Dir()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return database, nil
}

// newEngine wires a sync engine over the store and the configured CRM.
func newEngine(database *db.DB) *reposync.Engine {
	client := twenty.New(settings.CRMURL(), settings.APIKey())
	return reposync.New(database, client, reposync.Options{})
}
