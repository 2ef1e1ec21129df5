package cmd

import (
	"fmt"

	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect and change repsync settings",
	GroupID: "system",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := settings.APIKey()
		masked := "(not set)"
		if key != "" {
			if len(key) > 8 {
				key = key[:8]
			}
			masked = key + "…"
		}
		output.Info("crm_url             = %s", settings.CRMURL())
		output.Info("api_key             = %s", masked)
		output.Info("workspace_member_id = %s", settings.WorkspaceMemberID())
		output.Info("offline             = %v", settings.Offline())
		output.Info("auto_sync           = %v", settings.AutoSyncEnabled())
		output.Info("sync_interval       = %s", settings.SyncInterval())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one effective setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "crm_url":
			output.Info("%s", settings.CRMURL())
		case "api_key":
			if settings.IsConfigured() {
				output.Info("(set)")
			} else {
				output.Info("(not set)")
			}
		case "workspace_member_id":
			output.Info("%s", settings.WorkspaceMemberID())
		case "offline":
			output.Info("%v", settings.Offline())
		case "auto_sync":
			output.Info("%v", settings.AutoSyncEnabled())
		case "sync_interval":
			output.Info("%s", settings.SyncInterval())
		default:
			return fmt.Errorf("unknown setting: %q", args[0])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		switch key {
		case "crm_url":
			cfg.CRMURL = value
		case "api_key":
			cfg.APIKey = value
		case "workspace_member_id":
			cfg.WorkspaceMemberID = value
		case "offline":
			b := value == "true" || value == "1"
			cfg.Offline = &b
		case "auto_sync":
			b := value == "true" || value == "1"
			cfg.AutoSync = &b
		case "sync_interval":
			cfg.SyncInterval = value
		default:
			return fmt.Errorf("unknown setting: %q", key)
		}
		if err := settings.Save(cfg); err != nil {
			return err
		}
		output.Success("%s updated", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
