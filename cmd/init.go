package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/ripemerchant/repsync/internal/twenty"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Configure the CRM connection and create the local store",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		crmURL, _ := cmd.Flags().GetString("crm-url")
		apiKey, _ := cmd.Flags().GetString("api-key")

		cfg, err := settings.Load()
		if err != nil {
			return err
		}

		if crmURL == "" || apiKey == "" {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Twenty CRM URL").
						Placeholder("http://localhost:3001").
						Value(&crmURL),
					huh.NewInput().
						Title("API key").
						EchoMode(huh.EchoModePassword).
						Value(&apiKey),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("init form: %w", err)
			}
		}
		if crmURL != "" {
			cfg.CRMURL = crmURL
		}
		if apiKey != "" {
			cfg.APIKey = apiKey
		}
		if err := settings.Save(cfg); err != nil {
			return err
		}

		// Resolve the workspace member identity. A single-member
		// workspace is adopted automatically, matching first-run
		// behavior on a fresh install.
		client := twenty.New(settings.CRMURL(), settings.APIKey())
		members, err := client.GetWorkspaceMembers()
		if err != nil {
			output.Warning("could not fetch workspace members: %v", err)
		} else if settings.WorkspaceMemberID() == "" {
			switch len(members) {
			case 0:
				output.Warning("workspace has no members; set one later with: repsync config set workspace_member_id <id>")
			case 1:
				if err := settings.SetWorkspaceMemberID(members[0].ID); err != nil {
					return err
				}
				output.Info("Workspace member: %s", members[0].DisplayName())
			default:
				var memberID string
				opts := make([]huh.Option[string], 0, len(members))
				for _, m := range members {
					opts = append(opts, huh.NewOption(m.DisplayName(), m.ID))
				}
				sel := huh.NewForm(huh.NewGroup(
					huh.NewSelect[string]().
						Title("Which workspace member are you?").
						Options(opts...).
						Value(&memberID),
				))
				if err := sel.Run(); err != nil {
					return fmt.Errorf("member selection: %w", err)
				}
				if err := settings.SetWorkspaceMemberID(memberID); err != nil {
					return err
				}
			}
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()
		if _, err := database.GetProgression(); err != nil {
			return err
		}

		output.Success("repsync initialized")
		return nil
	},
}

func init() {
	initCmd.Flags().String("crm-url", "", "Twenty CRM base URL")
	initCmd.Flags().String("api-key", "", "Twenty API key")
	rootCmd.AddCommand(initCmd)
}
