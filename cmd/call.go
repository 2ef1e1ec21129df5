package cmd

import (
	"fmt"
	"strings"

	"github.com/ripemerchant/repsync/internal/calllog"
	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/ripemerchant/repsync/internal/twenty"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:     "call",
	Short:   "Record and review call dispositions",
	GroupID: "activity",
}

var callLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a completed call",
	Example: `  repsync call log --disposition CONTACT --duration 135 --lead "Jane Doe"
  repsync call log -d VOICEMAIL -s 22`,
	RunE: func(cmd *cobra.Command, args []string) error {
		disposition, _ := cmd.Flags().GetString("disposition")
		duration, _ := cmd.Flags().GetInt("duration")
		lead, _ := cmd.Flags().GetString("lead")
		leadID, _ := cmd.Flags().GetString("lead-id")
		xp, _ := cmd.Flags().GetInt("xp")

		if disposition == "" {
			return fmt.Errorf("--disposition is required")
		}
		if duration < 0 {
			return fmt.Errorf("--duration must be >= 0")
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		call := models.CallRecord{
			Disposition:     models.Disposition(strings.ToUpper(disposition)),
			DurationSeconds: duration,
			LeadName:        lead,
			LeadID:          leadID,
			XPAwarded:       xp,
		}
		if err := newEngine(database).RecordCall(call); err != nil {
			return err
		}

		output.Success("Call recorded: %s %s",
			output.RenderDisposition(call.Disposition), calllog.FormatDuration(duration))
		if xp > 0 {
			output.Subtle("+%d XP", xp)
		}
		return nil
	},
}

var callHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent call logs from the CRM",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		if !settings.IsConfigured() {
			output.Warning("not connected: no API key configured (run: repsync init)")
			return nil
		}

		client := twenty.New(settings.CRMURL(), settings.APIKey())
		notes, err := client.GetNotes(limit * 5)
		if err != nil {
			return fmt.Errorf("fetch notes: %w", err)
		}

		// Mixed note list: non-call titles parse to nil and drop out.
		shown := 0
		for _, note := range notes {
			rec := calllog.ParseTitle(note.Title)
			if rec == nil {
				continue
			}
			name := rec.LeadName
			if name == "" {
				name = "Unknown"
			}
			output.Info("%-16s %6s  %s",
				output.RenderDisposition(rec.Disposition),
				calllog.FormatDuration(rec.DurationSeconds), name)
			shown++
			if shown >= limit {
				break
			}
		}
		if shown == 0 {
			output.Subtle("no call logs found")
		}
		return nil
	},
}

func init() {
	callLogCmd.Flags().StringP("disposition", "d", "", "call outcome (CONTACT, CALLBACK, VOICEMAIL, NO_ANSWER, NOT_INTERESTED, WRONG_NUMBER, BUSY, DNC)")
	callLogCmd.Flags().IntP("duration", "s", 0, "call duration in seconds")
	callLogCmd.Flags().String("lead", "", "lead display name")
	callLogCmd.Flags().String("lead-id", "", "CRM person id for the lead")
	callLogCmd.Flags().Int("xp", 0, "experience points to award for this call")
	callHistoryCmd.Flags().Int("limit", 20, "max call logs to show")

	callCmd.AddCommand(callLogCmd, callHistoryCmd)
	rootCmd.AddCommand(callCmd)
}
