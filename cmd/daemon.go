package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ripemerchant/repsync/internal/daemon"
	"github.com/ripemerchant/repsync/internal/output"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:     "daemon",
	Short:   "Run the periodic sync loop in the foreground",
	GroupID: "sync",
	Long: `Daemon flushes the push queue, pulls remote progression, and rolls up
efficiency metrics on a fixed interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		intervalFlag, _ := cmd.Flags().GetDuration("interval")

		// Optional .env next to the working directory, for service managers.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Debug("daemon: load .env", "err", err)
		}

		if !settings.IsConfigured() {
			output.Warning("not configured (run: repsync init); daemon will queue pushes only")
		}

		database, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()

		interval := intervalFlag
		if interval <= 0 {
			interval = settings.SyncInterval()
		}

		svc := daemon.New(newEngine(database), interval)
		if err := svc.Start(); err != nil {
			return err
		}
		output.Info("repsync daemon running, interval %s (ctrl-c to stop)", interval)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		svc.Stop()
		// Give in-flight ticks a moment to log before exit.
		time.Sleep(100 * time.Millisecond)
		output.Info("stopped")
		return nil
	},
}

func init() {
	daemonCmd.Flags().Duration("interval", 0, "sync interval (default from config, 5m)")
	rootCmd.AddCommand(daemonCmd)
}
