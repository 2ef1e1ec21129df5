package progression

import (
	"testing"
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

func TestMergeScalarsOverwrite(t *testing.T) {
	local := &models.Progression{
		TotalXP:     300,
		Level:       4,
		Rank:        "E-1",
		ClosedDeals: 2,
		StreakDays:  9,
	}
	remote := &RemoteSnapshot{
		Name:        "Jane",
		TotalXP:     800,
		Level:       9,
		Rank:        "E-2",
		ClosedDeals: 1,
		StreakDays:  0,
	}

	Merge(local, remote)

	if local.TotalXP != 800 || local.Level != 9 {
		t.Errorf("XP/level = %d/%d, want 800/9", local.TotalXP, local.Level)
	}
	if local.Rank != "E-2" {
		t.Errorf("Rank = %s, want E-2", local.Rank)
	}
	if local.Name != "Jane" {
		t.Errorf("Name = %s, want Jane", local.Name)
	}
	// Remote wins even when the remote value is lower.
	if local.ClosedDeals != 1 || local.StreakDays != 0 {
		t.Errorf("deals/streak = %d/%d, want 1/0", local.ClosedDeals, local.StreakDays)
	}
}

func TestMergeEmptyRemoteRankAndNameKeepLocal(t *testing.T) {
	local := &models.Progression{Name: "Sam", Rank: "E-3"}
	Merge(local, &RemoteSnapshot{})

	if local.Name != "Sam" {
		t.Errorf("Name = %s, want Sam", local.Name)
	}
	if local.Rank != "E-3" {
		t.Errorf("Rank = %s, want E-3", local.Rank)
	}
}

func TestMergeSetFieldsUnion(t *testing.T) {
	local := &models.Progression{
		CompletedModules: []string{"module_0", "module_1"},
		DefeatedBosses:   []string{"gatekeeper"},
		Badges:           []string{"first_call"},
	}
	remote := &RemoteSnapshot{
		CompletedModules: []string{"module_1", "module_2"},
		PassedExams:      []string{"tcpa"},
	}

	Merge(local, remote)

	wantModules := []string{"module_0", "module_1", "module_2"}
	if len(local.CompletedModules) != len(wantModules) {
		t.Fatalf("CompletedModules = %v, want %v", local.CompletedModules, wantModules)
	}
	for i, m := range wantModules {
		if local.CompletedModules[i] != m {
			t.Errorf("CompletedModules = %v, want %v", local.CompletedModules, wantModules)
			break
		}
	}

	// Local-only achievements the remote has not seen survive a pull.
	if len(local.DefeatedBosses) != 1 || local.DefeatedBosses[0] != "gatekeeper" {
		t.Errorf("DefeatedBosses = %v, want [gatekeeper]", local.DefeatedBosses)
	}
	if len(local.Badges) != 1 {
		t.Errorf("Badges = %v, want [first_call]", local.Badges)
	}
	if len(local.PassedExams) != 1 || local.PassedExams[0] != "tcpa" {
		t.Errorf("PassedExams = %v, want [tcpa]", local.PassedExams)
	}
}

func TestMergePreservesLocalOnlyFields(t *testing.T) {
	em := &models.EfficiencyMetrics{CallToApptRate: 0.2}
	local := &models.Progression{
		Efficiency:   em,
		BossAttempts: map[string]int{"gatekeeper": 3},
		MenteeCount:  2,
		ActiveTitle:  "closer",
	}

	Merge(local, &RemoteSnapshot{TotalXP: 100})

	if local.Efficiency != em {
		t.Error("Efficiency metrics replaced on merge")
	}
	if local.BossAttempts["gatekeeper"] != 3 {
		t.Error("BossAttempts lost on merge")
	}
	if local.MenteeCount != 2 || local.ActiveTitle != "closer" {
		t.Error("mentee count or active title lost on merge")
	}
}

func TestMergeStampsActivity(t *testing.T) {
	local := &models.Progression{}
	before := time.Now().Add(-time.Second)
	Merge(local, &RemoteSnapshot{})
	if local.LastActivity.Before(before) {
		t.Errorf("LastActivity = %v, want recent", local.LastActivity)
	}
}
