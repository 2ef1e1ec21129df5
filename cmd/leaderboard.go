package cmd

import (
	"fmt"
	"sort"

	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/ripemerchant/repsync/internal/twenty"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Short:   "Show the workspace-wide rep leaderboard",
	GroupID: "progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		if !settings.IsConfigured() {
			output.Warning("not connected: no API key configured (run: repsync init)")
			return nil
		}

		client := twenty.New(settings.CRMURL(), settings.APIKey())
		reps, err := client.ListRepProgressions()
		if err != nil {
			return fmt.Errorf("fetch leaderboard: %w", err)
		}

		board := make([]models.LeaderboardEntry, 0, len(reps))
		for _, r := range reps {
			name := r.Name
			if name == "" {
				name = "Rep"
			}
			board = append(board, models.LeaderboardEntry{
				Name:              name,
				WorkspaceMemberID: r.WorkspaceMemberID,
				TotalXP:           r.TotalXP,
				Level:             r.CurrentLevel,
				Rank:              r.CurrentRank,
			})
		}
		sort.SliceStable(board, func(i, j int) bool {
			return board[i].TotalXP > board[j].TotalXP
		})

		if asJSON {
			return output.JSON(board)
		}
		if len(board) == 0 {
			output.Subtle("no reps found")
			return nil
		}

		me := settings.WorkspaceMemberID()
		for i, e := range board {
			marker := " "
			if e.WorkspaceMemberID != "" && e.WorkspaceMemberID == me {
				marker = "*"
			}
			output.Info("%s %2d. %-24s %s  lvl %-3d %6d XP",
				marker, i+1, e.Name, output.Rank(e.Rank), e.Level, e.TotalXP)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().Bool("json", false, "machine-readable output")
	rootCmd.AddCommand(leaderboardCmd)
}
