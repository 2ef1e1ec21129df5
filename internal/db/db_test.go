package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripemerchant/repsync/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	database, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Join(dir, "repsync.db")); os.IsNotExist(err) {
		t.Error("database file not created")
	}
	if database.BaseDir() != dir {
		t.Errorf("BaseDir = %s, want %s", database.BaseDir(), dir)
	}
}

func TestGetProgressionCreatesSingleton(t *testing.T) {
	database := openTestDB(t)

	p, err := database.GetProgression()
	if err != nil {
		t.Fatalf("GetProgression failed: %v", err)
	}
	if p.TotalXP != 0 {
		t.Errorf("fresh TotalXP = %d, want 0", p.TotalXP)
	}
	if p.Level != 1 {
		t.Errorf("fresh Level = %d, want 1", p.Level)
	}
	if p.Rank != "E-1" {
		t.Errorf("fresh Rank = %s, want E-1", p.Rank)
	}

	// Second read returns the same singleton, not a second default.
	p.TotalXP = 700
	if err := database.PutProgression(p); err != nil {
		t.Fatalf("PutProgression failed: %v", err)
	}
	again, err := database.GetProgression()
	if err != nil {
		t.Fatalf("GetProgression failed: %v", err)
	}
	if again.TotalXP != 700 {
		t.Errorf("TotalXP after put = %d, want 700", again.TotalXP)
	}
}

func TestProgressionRoundTrip(t *testing.T) {
	database := openTestDB(t)

	p, err := database.GetProgression()
	if err != nil {
		t.Fatalf("GetProgression failed: %v", err)
	}
	p.Name = "Jane"
	p.TotalXP = 1600
	p.Level = 17
	p.Rank = "E-3"
	p.CompletedModules = []string{"module_0", "module_2"}
	p.DefeatedBosses = []string{"gatekeeper"}
	p.BossAttempts = map[string]int{"gatekeeper": 2}
	p.Efficiency = &models.EfficiencyMetrics{CallToApptRate: 0.25}
	if err := database.PutProgression(p); err != nil {
		t.Fatalf("PutProgression failed: %v", err)
	}

	got, err := database.GetProgression()
	if err != nil {
		t.Fatalf("GetProgression failed: %v", err)
	}
	if got.Name != "Jane" || got.TotalXP != 1600 || got.Rank != "E-3" {
		t.Errorf("scalars = %s/%d/%s", got.Name, got.TotalXP, got.Rank)
	}
	if len(got.CompletedModules) != 2 {
		t.Errorf("CompletedModules = %v", got.CompletedModules)
	}
	if got.BossAttempts["gatekeeper"] != 2 {
		t.Errorf("BossAttempts = %v", got.BossAttempts)
	}
	if got.Efficiency == nil || got.Efficiency.CallToApptRate != 0.25 {
		t.Errorf("Efficiency = %+v", got.Efficiency)
	}
}

func TestIncrementMetric(t *testing.T) {
	database := openTestDB(t)

	if err := database.IncrementMetric("2026-08-30", "dials", 1); err != nil {
		t.Fatalf("IncrementMetric failed: %v", err)
	}
	if err := database.IncrementMetric("2026-08-30", "dials", 2); err != nil {
		t.Fatalf("IncrementMetric failed: %v", err)
	}
	if err := database.IncrementMetric("2026-08-31", "dials", 5); err != nil {
		t.Fatalf("IncrementMetric failed: %v", err)
	}
	if err := database.IncrementMetric("2026-08-30", "connects", 1); err != nil {
		t.Fatalf("IncrementMetric failed: %v", err)
	}

	day, err := database.GetDailyMetrics("2026-08-30")
	if err != nil {
		t.Fatalf("GetDailyMetrics failed: %v", err)
	}
	if day.Dials != 3 {
		t.Errorf("Dials = %d, want 3", day.Dials)
	}
	if day.Connects != 1 {
		t.Errorf("Connects = %d, want 1", day.Connects)
	}

	// Counts stay isolated per day.
	other, err := database.GetDailyMetrics("2026-08-31")
	if err != nil {
		t.Fatalf("GetDailyMetrics failed: %v", err)
	}
	if other.Dials != 5 || other.Connects != 0 {
		t.Errorf("2026-08-31 = %+v", other)
	}
}

func TestIncrementMetricRejectsUnknownColumn(t *testing.T) {
	database := openTestDB(t)

	if err := database.IncrementMetric("2026-08-31", "dials; DROP TABLE progression", 1); err == nil {
		t.Error("unknown metric column accepted")
	}
	if err := database.IncrementMetric("2026-08-31", "bogus", 1); err == nil {
		t.Error("unknown metric column accepted")
	}
}

func TestMetricsSince(t *testing.T) {
	database := openTestDB(t)

	for _, d := range []string{"2026-08-25", "2026-08-28", "2026-08-31"} {
		if err := database.IncrementMetric(d, "dials", 10); err != nil {
			t.Fatalf("IncrementMetric failed: %v", err)
		}
	}

	days, err := database.MetricsSince("2026-08-28")
	if err != nil {
		t.Fatalf("MetricsSince failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("len = %d, want 2", len(days))
	}
	if days[0].Date != "2026-08-28" || days[1].Date != "2026-08-31" {
		t.Errorf("dates = %s, %s", days[0].Date, days[1].Date)
	}
}

func TestQueueLifecycle(t *testing.T) {
	database := openTestDB(t)

	entry, err := database.Enqueue(models.OpUpdateProgression, map[string]int{"totalXp": 500})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if entry.IdempotencyKey == "" {
		t.Error("idempotency key not assigned")
	}
	if entry.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", entry.Attempts)
	}

	second, err := database.Enqueue(models.OpUpdateProgression, map[string]int{"totalXp": 600})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if second.IdempotencyKey == entry.IdempotencyKey {
		t.Error("idempotency keys not unique")
	}

	depth, err := database.QueueDepth()
	if err != nil {
		t.Fatalf("QueueDepth failed: %v", err)
	}
	if depth != 2 {
		t.Errorf("QueueDepth = %d, want 2", depth)
	}

	entries, err := database.ListQueue()
	if err != nil {
		t.Fatalf("ListQueue failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != entry.ID {
		t.Errorf("ListQueue order wrong: %+v", entries)
	}
	if entries[0].LastAttempt != nil {
		t.Error("fresh entry has a last attempt stamp")
	}

	if err := database.BumpQueueAttempt(entry.ID); err != nil {
		t.Fatalf("BumpQueueAttempt failed: %v", err)
	}
	entries, _ = database.ListQueue()
	if entries[0].Attempts != 1 {
		t.Errorf("Attempts after bump = %d, want 1", entries[0].Attempts)
	}
	if entries[0].LastAttempt == nil {
		t.Error("last attempt not stamped after bump")
	}

	if err := database.DeleteQueueEntry(entry.ID); err != nil {
		t.Fatalf("DeleteQueueEntry failed: %v", err)
	}
	depth, _ = database.QueueDepth()
	if depth != 1 {
		t.Errorf("QueueDepth after delete = %d, want 1", depth)
	}
}

func TestXPEvents(t *testing.T) {
	database := openTestDB(t)

	if err := database.AppendXPEvent("module_module_3", 50); err != nil {
		t.Fatalf("AppendXPEvent failed: %v", err)
	}
	if err := database.AppendXPEvent("battle_gatekeeper_win", 300); err != nil {
		t.Fatalf("AppendXPEvent failed: %v", err)
	}

	events, err := database.RecentXPEvents(10)
	if err != nil {
		t.Fatalf("RecentXPEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].EventType != "battle_gatekeeper_win" || events[0].XPAmount != 300 {
		t.Errorf("events[0] = %+v", events[0])
	}
}

func TestReopenPreservesData(t *testing.T) {
	dir := t.TempDir()

	database, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p, _ := database.GetProgression()
	p.TotalXP = 4242
	if err := database.PutProgression(p); err != nil {
		t.Fatalf("PutProgression failed: %v", err)
	}
	database.Close()

	database, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer database.Close()
	got, err := database.GetProgression()
	if err != nil {
		t.Fatalf("GetProgression failed: %v", err)
	}
	if got.TotalXP != 4242 {
		t.Errorf("TotalXP after reopen = %d, want 4242", got.TotalXP)
	}
}
