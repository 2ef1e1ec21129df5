package cmd

import (
	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Reconcile local progression with the CRM",
	GroupID: "sync",
	Long: `Sync compares local and remote XP totals and moves data in whichever
direction has more progress. Use --push or --pull to force one
direction, or --status to inspect sync state without touching the
network.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		push, _ := cmd.Flags().GetBool("push")
		pull, _ := cmd.Flags().GetBool("pull")
		status, _ := cmd.Flags().GetBool("status")

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		if status {
			depth, err := database.QueueDepth()
			if err != nil {
				return err
			}
			if settings.IsConfigured() {
				output.Info("CRM: %s", settings.CRMURL())
			} else {
				output.Warning("not configured (run: repsync init)")
			}
			if settings.Offline() {
				output.Warning("offline mode: pushes queue locally")
			}
			output.Info("queued operations: %d", depth)
			return nil
		}

		engine := newEngine(database)
		switch {
		case push:
			if err := engine.Push(); err != nil {
				return err
			}
			output.Success("pushed progression to CRM")
		case pull:
			if err := engine.Pull(); err != nil {
				return err
			}
			output.Success("pulled progression from CRM")
		default:
			if flushed, err := engine.Flush(); err == nil && flushed.Delivered > 0 {
				output.Subtle("flushed %d queued operations", flushed.Delivered)
			}
			res := engine.Full()
			if !res.Success {
				output.Error("sync failed")
				return nil
			}
			switch res.Direction {
			case models.DirectionFromTwenty:
				output.Success("pulled %d XP from CRM", res.Changes)
			case models.DirectionToTwenty:
				output.Success("pushed %d XP to CRM", res.Changes)
			default:
				output.Info("already in sync")
			}
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("push", false, "push local progression only")
	syncCmd.Flags().Bool("pull", false, "pull remote progression only")
	syncCmd.Flags().Bool("status", false, "show sync state without syncing")
	rootCmd.AddCommand(syncCmd)
}
