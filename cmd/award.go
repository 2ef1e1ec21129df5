package cmd

import (
	"fmt"
	"time"

	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/progression"
	"github.com/spf13/cobra"
)

var awardCmd = &cobra.Command{
	Use:     "award",
	Short:   "Award experience for training progress",
	GroupID: "progression",
}

var awardModuleCmd = &cobra.Command{
	Use:   "module <module-id>",
	Short: "Mark a training module complete and award its XP",
	Args:  cobra.ExactArgs(1),
	Example: `  repsync award module module_3
  repsync award module module_6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		moduleID := args[0]

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		local, err := database.GetProgression()
		if err != nil {
			return err
		}
		for _, done := range local.CompletedModules {
			if done == moduleID {
				output.Warning("%s already completed", moduleID)
				return nil
			}
		}

		xp := progression.ModuleAward(moduleID)
		local.CompletedModules = progression.UnionStrings(local.CompletedModules, []string{moduleID})
		progression.Apply(local, xp)
		local.LastActivity = time.Now().UTC()
		if err := database.PutProgression(local); err != nil {
			return err
		}
		if err := database.AppendXPEvent("module_"+moduleID, xp); err != nil {
			return err
		}

		output.Success("%s complete: +%d XP (level %d, %s)",
			moduleID, xp, local.Level, output.Rank(local.Rank))
		autoSyncAfterMutation(database)
		return nil
	},
}

var awardBattleCmd = &cobra.Command{
	Use:   "battle <boss-id> <win|lose|abandon>",
	Short: "Record a boss battle outcome and award its XP",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bossID := args[0]
		outcome := progression.BattleOutcome(args[1])
		cleared, _ := cmd.Flags().GetBool("cleared")

		switch outcome {
		case progression.OutcomeWin, progression.OutcomeLose, progression.OutcomeAbandon:
		default:
			return fmt.Errorf("outcome must be win, lose or abandon, got %q", args[1])
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		local, err := database.GetProgression()
		if err != nil {
			return err
		}

		if local.BossAttempts == nil {
			local.BossAttempts = map[string]int{}
		}
		local.BossAttempts[bossID]++
		xp := progression.BattleAward(outcome, local.Level, cleared)
		if outcome == progression.OutcomeWin {
			local.DefeatedBosses = progression.UnionStrings(local.DefeatedBosses, []string{bossID})
		}
		progression.Apply(local, xp)
		local.LastActivity = time.Now().UTC()
		if err := database.PutProgression(local); err != nil {
			return err
		}
		if err := database.AppendXPEvent("battle_"+bossID+"_"+string(outcome), xp); err != nil {
			return err
		}

		output.Success("battle %s %s: +%d XP (attempt %d)", bossID, outcome, xp, local.BossAttempts[bossID])
		autoSyncAfterMutation(database)
		return nil
	},
}

var awardExamCmd = &cobra.Command{
	Use:   "exam <exam-id>",
	Short: "Record a passed exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID := args[0]
		xp, _ := cmd.Flags().GetInt("xp")

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		local, err := database.GetProgression()
		if err != nil {
			return err
		}
		for _, done := range local.PassedExams {
			if done == examID {
				output.Warning("%s already passed", examID)
				return nil
			}
		}

		local.PassedExams = progression.UnionStrings(local.PassedExams, []string{examID})
		progression.Apply(local, xp)
		local.LastActivity = time.Now().UTC()
		if err := database.PutProgression(local); err != nil {
			return err
		}
		if xp > 0 {
			if err := database.AppendXPEvent("exam_"+examID, xp); err != nil {
				return err
			}
		}

		output.Success("exam %s passed: +%d XP", examID, xp)
		autoSyncAfterMutation(database)
		return nil
	},
}

func init() {
	awardBattleCmd.Flags().Bool("cleared", false, "first-clear bonus for a won battle")
	awardExamCmd.Flags().Int("xp", 100, "experience points awarded for the exam")

	awardCmd.AddCommand(awardModuleCmd, awardBattleCmd, awardExamCmd)
	rootCmd.AddCommand(awardCmd)
}
