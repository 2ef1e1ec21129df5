package cmd

import (
	"fmt"
	"strings"

	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/progression"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show rep progression: XP, level, rank, completions",
	GroupID: "progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		local, err := database.GetProgression()
		if err != nil {
			return err
		}
		if asJSON {
			return output.JSON(local)
		}

		name := local.Name
		if name == "" {
			name = "Rep"
		}
		fmt.Printf("%s  %s (%s)\n", output.Title(name), output.Rank(local.Rank),
			progression.RankName(local.TotalXP))
		fmt.Printf("Level %d  %d XP total\n", local.Level, local.TotalXP)

		if next := progression.NextRankXP(local.TotalXP); next > 0 {
			fmt.Printf("Next rank %s %d/%d XP\n",
				output.ProgressBar(local.TotalXP, next, 24), local.TotalXP, next)
		} else {
			output.Subtle("top rank reached")
		}

		fmt.Println()
		fmt.Printf("Modules:  %d complete\n", len(local.CompletedModules))
		fmt.Printf("Bosses:   %d defeated\n", len(local.DefeatedBosses))
		fmt.Printf("Exams:    %d passed\n", len(local.PassedExams))
		fmt.Printf("Deals:    %d closed, %d day streak\n", local.ClosedDeals, local.StreakDays)
		if len(local.Badges) > 0 {
			fmt.Printf("Badges:   %s\n", strings.Join(local.Badges, ", "))
		}
		if local.ActiveTitle != "" {
			fmt.Printf("Title:    %s\n", local.ActiveTitle)
		}
		if !local.LastActivity.IsZero() {
			output.Subtle("last activity %s", local.LastActivity.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "machine-readable output")
	rootCmd.AddCommand(statusCmd)
}
