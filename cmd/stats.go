package cmd

import (
	"fmt"
	"time"

	"github.com/ripemerchant/repsync/internal/db"
	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/progression"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show daily activity metrics and efficiency rates",
	GroupID: "activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		windowDays, _ := cmd.Flags().GetInt("days")
		asJSON, _ := cmd.Flags().GetBool("json")
		if windowDays < 1 {
			windowDays = 1
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		start := time.Now().AddDate(0, 0, -(windowDays - 1)).Format("2006-01-02")
		days, err := database.MetricsSince(start)
		if err != nil {
			return err
		}

		em := progression.Rollup(days)
		if asJSON {
			return output.JSON(struct {
				Days       []models.DailyMetrics    `json:"days"`
				Efficiency models.EfficiencyMetrics `json:"efficiency"`
				Ramping    bool                     `json:"ramping"`
			}{days, em, progression.IsRamping(days)})
		}

		fmt.Println(output.Title(fmt.Sprintf("Last %d days", windowDays)))
		if len(days) == 0 {
			output.Subtle("no activity recorded")
			return nil
		}

		fmt.Printf("%-12s %6s %6s %6s %6s %6s %6s\n",
			"date", "dials", "conn", "<30s", ">2m", "appt", "shows")
		var totals models.DailyMetrics
		for _, d := range days {
			fmt.Printf("%-12s %6d %6d %6d %6d %6d %6d\n",
				d.Date, d.Dials, d.Connects, d.CallsUnder30s, d.CallsOver2Min,
				d.Appointments, d.Shows)
			totals.Dials += d.Dials
			totals.Connects += d.Connects
			totals.CallsUnder30s += d.CallsUnder30s
			totals.CallsOver2Min += d.CallsOver2Min
			totals.Appointments += d.Appointments
			totals.Shows += d.Shows
		}
		fmt.Printf("%-12s %6d %6d %6d %6d %6d %6d\n",
			"total", totals.Dials, totals.Connects, totals.CallsUnder30s,
			totals.CallsOver2Min, totals.Appointments, totals.Shows)

		fmt.Println()
		if progression.IsRamping(days) {
			output.Subtle("ramping: under %d dials in window, rates not scored",
				progression.MinDialsForMetrics)
			return nil
		}
		fmt.Println(output.Title("Efficiency"))
		fmt.Printf("sub-30s drop rate  %5.1f%%\n", em.Sub30sDropRate*100)
		fmt.Printf("call to appt rate  %5.1f%%\n", em.CallToApptRate*100)
		fmt.Printf("2min+ call rate    %5.1f%%\n", em.TwoPlusMinRate*100)
		fmt.Printf("show rate          %5.1f%%\n", em.ShowRate*100)
		fmt.Printf("sms enroll rate    %5.1f%%\n", em.SMSEnrollmentRate*100)
		return nil
	},
}

var statsMarkCmd = &cobra.Command{
	Use:   "mark <metric>",
	Short: "Increment a non-call metric for today (shows, deals, sms_enrollments)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := args[0]
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			count = 1
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.IncrementMetric(db.Today(), metric, count); err != nil {
			return err
		}
		output.Success("%s +%d", metric, count)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 7, "trailing window in days")
	statsCmd.Flags().Bool("json", false, "machine-readable output")
	statsMarkCmd.Flags().IntP("count", "n", 1, "increment amount")

	statsCmd.AddCommand(statsMarkCmd)
	rootCmd.AddCommand(statsCmd)
}
