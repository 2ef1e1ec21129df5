package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points REPSYNC_HOME at a temp dir and clears the override envs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("REPSYNC_HOME", dir)
	t.Setenv("REPSYNC_CRM_URL", "")
	t.Setenv("REPSYNC_API_KEY", "")
	t.Setenv("REPSYNC_WORKSPACE_MEMBER", "")
	t.Setenv("REPSYNC_OFFLINE", "")
	t.Setenv("REPSYNC_AUTO_SYNC", "")
	t.Setenv("REPSYNC_SYNC_INTERVAL", "")
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	if got := CRMURL(); got != "http://localhost:3001" {
		t.Errorf("CRMURL = %s", got)
	}
	if APIKey() != "" {
		t.Error("APIKey not empty by default")
	}
	if IsConfigured() {
		t.Error("IsConfigured true with no key")
	}
	if Offline() {
		t.Error("Offline true by default")
	}
	if !AutoSyncEnabled() {
		t.Error("AutoSync disabled by default")
	}
	if got := SyncInterval(); got != 5*time.Minute {
		t.Errorf("SyncInterval = %s, want 5m", got)
	}
}

func TestConfigFileValues(t *testing.T) {
	isolate(t)

	off := true
	noAuto := false
	err := Save(&Settings{
		CRMURL:       "https://crm.example.com/",
		APIKey:       "file-key",
		Offline:      &off,
		AutoSync:     &noAuto,
		SyncInterval: "90s",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Trailing slash is normalized away.
	if got := CRMURL(); got != "https://crm.example.com" {
		t.Errorf("CRMURL = %s", got)
	}
	if got := APIKey(); got != "file-key" {
		t.Errorf("APIKey = %s", got)
	}
	if !IsConfigured() {
		t.Error("IsConfigured false with saved key")
	}
	if !Offline() {
		t.Error("Offline = false, want file value true")
	}
	if AutoSyncEnabled() {
		t.Error("AutoSync = true, want file value false")
	}
	if got := SyncInterval(); got != 90*time.Second {
		t.Errorf("SyncInterval = %s, want 90s", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := Save(&Settings{CRMURL: "https://file.example.com", APIKey: "file-key"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("REPSYNC_CRM_URL", "https://env.example.com")
	t.Setenv("REPSYNC_API_KEY", "env-key")
	t.Setenv("REPSYNC_OFFLINE", "true")
	t.Setenv("REPSYNC_SYNC_INTERVAL", "30s")

	if got := CRMURL(); got != "https://env.example.com" {
		t.Errorf("CRMURL = %s, want env value", got)
	}
	if got := APIKey(); got != "env-key" {
		t.Errorf("APIKey = %s, want env value", got)
	}
	if !Offline() {
		t.Error("Offline = false, want env true")
	}
	if got := SyncInterval(); got != 30*time.Second {
		t.Errorf("SyncInterval = %s, want 30s", got)
	}
}

func TestParseBoolEnvValues(t *testing.T) {
	isolate(t)

	for _, v := range []string{"1", "true", "TRUE"} {
		t.Setenv("REPSYNC_OFFLINE", v)
		if !Offline() {
			t.Errorf("Offline with %q = false", v)
		}
	}
	for _, v := range []string{"0", "false"} {
		t.Setenv("REPSYNC_AUTO_SYNC", v)
		if AutoSyncEnabled() {
			t.Errorf("AutoSync with %q = true", v)
		}
	}
	// Garbage falls through to the default.
	t.Setenv("REPSYNC_OFFLINE", "maybe")
	if Offline() {
		t.Error("Offline with garbage env = true")
	}
}

func TestSetWorkspaceMemberIDPersists(t *testing.T) {
	isolate(t)

	if err := Save(&Settings{APIKey: "k"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SetWorkspaceMemberID("member-7"); err != nil {
		t.Fatalf("SetWorkspaceMemberID failed: %v", err)
	}

	if got := WorkspaceMemberID(); got != "member-7" {
		t.Errorf("WorkspaceMemberID = %s", got)
	}
	// Existing fields survive the partial update.
	if got := APIKey(); got != "k" {
		t.Errorf("APIKey = %s, clobbered by member update", got)
	}
}

func TestSaveRestrictsPermissions(t *testing.T) {
	dir := isolate(t)

	if err := Save(&Settings{APIKey: "secret"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms = %o, want 600", perm)
	}
}
