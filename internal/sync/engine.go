// Package sync reconciles the local progression store with the Twenty
// CRM: pull with a fixed-field merge policy, push with a durable
// offline outbox, outbox replay, and a coarse higher-XP-wins full sync.
package sync

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ripemerchant/repsync/internal/calllog"
	"github.com/ripemerchant/repsync/internal/db"
	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/progression"
	"github.com/ripemerchant/repsync/internal/settings"
	"github.com/ripemerchant/repsync/internal/twenty"
)

// maxQueueAttempts is how many replays an outbox entry gets before it
// is abandoned.
const maxQueueAttempts = 3

// efficiencyWindowDays is the trailing window for the metrics roll-up.
const efficiencyWindowDays = 7

// Engine orchestrates sync between the local store and the CRM.
type Engine struct {
	store    *db.DB
	remote   Remote
	memberID func() string
	offline  func() bool
}

// Options override the engine's environment probes. Nil funcs default
// to the settings package.
type Options struct {
	MemberID func() string
	Offline  func() bool
}

// New creates an engine over the given store and remote.
func New(store *db.DB, remote Remote, opts Options) *Engine {
	e := &Engine{
		store:    store,
		remote:   remote,
		memberID: opts.MemberID,
		offline:  opts.Offline,
	}
	if e.memberID == nil {
		e.memberID = settings.WorkspaceMemberID
	}
	if e.offline == nil {
		e.offline = settings.Offline
	}
	return e
}

// Pull fetches the remote progression record and merges it into the
// local singleton: remote scalars overwrite, set fields union, and
// local-only fields survive. Silently no-ops when no workspace member
// is configured or no remote record exists. On any remote failure the
// local record is left untouched.
func (e *Engine) Pull() error {
	memberID := e.memberID()
	if memberID == "" {
		slog.Debug("pull: no workspace member configured, skipping")
		return nil
	}

	remote, err := e.remote.GetRepProgression(memberID)
	if err != nil {
		slog.Warn("pull: fetch remote progression", "err", err)
		return fmt.Errorf("pull: %w", err)
	}
	if remote == nil {
		slog.Debug("pull: no remote progression record", "member", memberID)
		return nil
	}

	local, err := e.store.GetProgression()
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	progression.Merge(local, twenty.ToSnapshot(remote))
	if err := e.store.PutProgression(local); err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	slog.Debug("pull: merged remote progression", "xp", local.TotalXP)
	return nil
}

// Push delivers the local progression snapshot to the CRM. While
// offline it enqueues the snapshot and returns without touching the
// network; on delivery failure it enqueues with zero attempts so the
// outbox replay can retry later.
func (e *Engine) Push() error {
	memberID := e.memberID()
	if memberID == "" {
		slog.Debug("push: no workspace member configured, skipping")
		return nil
	}

	local, err := e.store.GetProgression()
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}

	if e.offline() {
		if _, err := e.store.Enqueue(models.OpUpdateProgression, local); err != nil {
			return fmt.Errorf("push: enqueue offline: %w", err)
		}
		slog.Debug("push: offline, snapshot queued")
		return nil
	}

	if err := e.pushRemote(memberID, local); err != nil {
		if _, qErr := e.store.Enqueue(models.OpUpdateProgression, local); qErr != nil {
			slog.Error("push: enqueue after failure", "err", qErr)
		}
		slog.Warn("push: delivery failed, snapshot queued", "err", err)
		return fmt.Errorf("push: %w", err)
	}
	return nil
}

// pushRemote performs the update-or-create against the CRM without
// touching the outbox.
func (e *Engine) pushRemote(memberID string, local *models.Progression) error {
	existing, err := e.remote.GetRepProgression(memberID)
	if err != nil {
		return err
	}

	displayName := local.Name
	if displayName == "" || displayName == "Rep" {
		if member, mErr := e.remote.CurrentWorkspaceMember(memberID); mErr == nil && member != nil {
			displayName = member.DisplayName()
		}
	}

	payload := twenty.FromLocal(local, memberID, displayName)
	if existing != nil {
		_, err = e.remote.UpdateRepProgression(existing.ID, payload)
	} else {
		_, err = e.remote.CreateRepProgression(payload)
	}
	if err != nil {
		return err
	}

	slog.Debug("push: delivered progression", "xp", local.TotalXP)
	return nil
}

// Flush replays the outbox oldest first. Entries that have exhausted
// their attempts are dropped; the rest are replayed at-least-once.
// Replaying updateProgression is safe because each payload is a full
// snapshot, not a delta, so applying one twice is a no-op.
func (e *Engine) Flush() (FlushResult, error) {
	var result FlushResult

	entries, err := e.store.ListQueue()
	if err != nil {
		return result, fmt.Errorf("flush: %w", err)
	}
	if len(entries) == 0 {
		return result, nil
	}
	if e.offline() {
		slog.Debug("flush: offline, leaving queue untouched", "pending", len(entries))
		return result, nil
	}

	memberID := e.memberID()
	for _, entry := range entries {
		if entry.Attempts >= maxQueueAttempts {
			slog.Error("flush: abandoning entry after max attempts",
				"id", entry.ID, "op", entry.Operation, "key", entry.IdempotencyKey)
			if err := e.store.DeleteQueueEntry(entry.ID); err != nil {
				return result, err
			}
			result.Dropped++
			continue
		}

		var replayErr error
		switch entry.Operation {
		case models.OpUpdateProgression:
			// Replay the queued snapshot in order. Later entries and
			// the next Push supersede it, so stale payloads cannot
			// leave the remote behind for long.
			var queued models.Progression
			if err := json.Unmarshal(entry.Payload, &queued); err != nil {
				replayErr = fmt.Errorf("decode queued payload: %w", err)
			} else {
				replayErr = e.pushRemote(memberID, &queued)
			}
		default:
			replayErr = fmt.Errorf("unknown queue operation: %q", entry.Operation)
		}

		if replayErr != nil {
			slog.Warn("flush: replay failed", "id", entry.ID, "op", entry.Operation,
				"attempts", entry.Attempts+1, "err", replayErr)
			if err := e.store.BumpQueueAttempt(entry.ID); err != nil {
				return result, err
			}
			result.Failed++
			continue
		}

		if err := e.store.DeleteQueueEntry(entry.ID); err != nil {
			return result, err
		}
		result.Delivered++
	}

	return result, nil
}

// Full performs the bidirectional reconciliation: whichever side holds
// the higher XP total wins and overwrites the other. Equal totals do
// nothing.
func (e *Engine) Full() FullResult {
	memberID := e.memberID()
	if memberID == "" {
		return FullResult{Direction: models.DirectionNone}
	}

	remote, err := e.remote.GetRepProgression(memberID)
	if err != nil {
		slog.Warn("full sync: fetch remote", "err", err)
		return FullResult{Direction: models.DirectionNone}
	}
	local, err := e.store.GetProgression()
	if err != nil {
		slog.Warn("full sync: read local", "err", err)
		return FullResult{Direction: models.DirectionNone}
	}

	remoteXP := 0
	if remote != nil {
		remoteXP = remote.TotalXP
	}
	localXP := local.TotalXP

	switch {
	case remoteXP > localXP:
		if err := e.Pull(); err != nil {
			return FullResult{Direction: models.DirectionNone}
		}
		return FullResult{Success: true, Direction: models.DirectionFromTwenty, Changes: remoteXP - localXP}
	case localXP > remoteXP:
		if err := e.Push(); err != nil {
			return FullResult{Direction: models.DirectionNone}
		}
		return FullResult{Success: true, Direction: models.DirectionToTwenty, Changes: localXP - remoteXP}
	}
	return FullResult{Success: true, Direction: models.DirectionNone}
}

// RecordCall logs a completed call: a best-effort call-log note in the
// CRM, daily metric increments, an XP award when one applies, then a
// progression push. Remote failures never block the local writes.
func (e *Engine) RecordCall(call models.CallRecord) error {
	if !e.offline() && e.remote != nil {
		title := calllog.FormatTitle(call.Disposition, call.DurationSeconds, call.LeadName)
		if _, err := e.remote.CreateNote(title, "", call.LeadID); err != nil {
			slog.Warn("record call: create note", "err", err)
		}
	}

	today := db.Today()
	if err := e.store.IncrementMetric(today, "dials", 1); err != nil {
		return fmt.Errorf("record call: %w", err)
	}
	switch call.Disposition {
	case models.DispositionContact, "CONTACTED":
		if err := e.store.IncrementMetric(today, "connects", 1); err != nil {
			return fmt.Errorf("record call: %w", err)
		}
	case models.DispositionCallback:
		if err := e.store.IncrementMetric(today, "appointments", 1); err != nil {
			return fmt.Errorf("record call: %w", err)
		}
	}
	if call.WasSubThirty() {
		if err := e.store.IncrementMetric(today, "calls_under_30s", 1); err != nil {
			return fmt.Errorf("record call: %w", err)
		}
	}
	if call.WasTwoPlusMin() {
		if err := e.store.IncrementMetric(today, "calls_over_2min", 1); err != nil {
			return fmt.Errorf("record call: %w", err)
		}
	}

	if call.XPAwarded > 0 {
		local, err := e.store.GetProgression()
		if err != nil {
			return fmt.Errorf("record call: %w", err)
		}
		progression.Apply(local, call.XPAwarded)
		local.LastActivity = time.Now().UTC()
		if err := e.store.PutProgression(local); err != nil {
			return fmt.Errorf("record call: %w", err)
		}
		if err := e.store.AppendXPEvent("call_"+string(call.Disposition), call.XPAwarded); err != nil {
			slog.Debug("record call: append xp event", "err", err)
		}
	}

	if err := e.Push(); err != nil {
		slog.Debug("record call: push", "err", err)
	}
	return nil
}

// RollupEfficiency recomputes trailing-window efficiency rates, stores
// them on the progression record, and pushes best-effort.
func (e *Engine) RollupEfficiency() error {
	start := time.Now().AddDate(0, 0, -(efficiencyWindowDays - 1)).Format("2006-01-02")
	days, err := e.store.MetricsSince(start)
	if err != nil {
		return fmt.Errorf("rollup: %w", err)
	}

	em := progression.Rollup(days)
	local, err := e.store.GetProgression()
	if err != nil {
		return fmt.Errorf("rollup: %w", err)
	}
	local.Efficiency = &em
	if err := e.store.PutProgression(local); err != nil {
		return fmt.Errorf("rollup: %w", err)
	}

	if err := e.Push(); err != nil {
		slog.Debug("rollup: push", "err", err)
	}
	return nil
}
