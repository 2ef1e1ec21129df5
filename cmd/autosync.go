package cmd

import (
	"log/slog"

	"github.com/ripemerchant/repsync/internal/db"
	"github.com/ripemerchant/repsync/internal/settings"
)

// autoSyncAfterMutation runs a best-effort push after a mutating
// command completes. Errors are logged, not returned; while offline
// the push lands in the outbox instead.
func autoSyncAfterMutation(database *db.DB) {
	if !settings.AutoSyncEnabled() {
		return
	}
	if !settings.IsConfigured() {
		return
	}
	if err := newEngine(database).Push(); err != nil {
		slog.Debug("autosync: push", "err", err)
	}
}
