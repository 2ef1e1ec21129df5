package cmd

import (
	"fmt"

	"github.com/ripemerchant/repsync/internal/output"
	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:     "queue",
	Short:   "Inspect and flush the offline push queue",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		flush, _ := cmd.Flags().GetBool("flush")

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		if flush {
			res, err := newEngine(database).Flush()
			if err != nil {
				return err
			}
			output.Success("delivered %d, failed %d, dropped %d",
				res.Delivered, res.Failed, res.Dropped)
			return nil
		}

		entries, err := database.ListQueue()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			output.Subtle("queue empty")
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("#%d %-20s attempts=%d queued=%s",
				e.ID, e.Operation, e.Attempts, e.CreatedAt.Local().Format("01-02 15:04"))
			if e.LastAttempt != nil {
				line += " last=" + e.LastAttempt.Local().Format("01-02 15:04")
			}
			output.Info("%s", line)
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().Bool("flush", false, "replay queued operations now")
	rootCmd.AddCommand(queueCmd)
}
