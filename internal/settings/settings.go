// Package settings manages the per-user repsync configuration: CRM
// endpoint, API credentials, workspace member identity, and sync knobs.
// Values resolve env var > config.json > hard-coded default.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Settings is the flat config object stored at $REPSYNC_HOME/config.json.
type Settings struct {
	CRMURL            string `json:"crm_url,omitempty"`
	APIKey            string `json:"api_key,omitempty"`
	WorkspaceMemberID string `json:"workspace_member_id,omitempty"`
	Offline           *bool  `json:"offline,omitempty"`       // nil = default false
	AutoSync          *bool  `json:"auto_sync,omitempty"`     // nil = default true
	SyncInterval      string `json:"sync_interval,omitempty"` // duration string, default "5m"
}

const (
	defaultCRMURL       = "http://localhost:3001"
	defaultSyncInterval = 5 * time.Minute
)

// Dir returns the repsync home directory, creating it if necessary.
// Priority: REPSYNC_HOME env > ~/.repsync.
func Dir() (string, error) {
	if v := os.Getenv("REPSYNC_HOME"); v != "" {
		if err := os.MkdirAll(v, 0755); err != nil {
			return "", fmt.Errorf("create repsync dir: %w", err)
		}
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".repsync")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create repsync dir: %w", err)
	}
	return dir, nil
}

// Load reads config.json, returning zero-value settings when absent.
func Load() (*Settings, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes config.json with restrictive permissions (it holds the API key).
func Save(s *Settings) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

// CRMURL returns the Twenty CRM base URL.
// Priority: REPSYNC_CRM_URL env > config.json > default.
func CRMURL() string {
	if v := os.Getenv("REPSYNC_CRM_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	s, err := Load()
	if err == nil && s.CRMURL != "" {
		return strings.TrimRight(s.CRMURL, "/")
	}
	return defaultCRMURL
}

// APIKey returns the CRM API key, or "" when not configured.
// Priority: REPSYNC_API_KEY env > config.json.
func APIKey() string {
	if v := os.Getenv("REPSYNC_API_KEY"); v != "" {
		return v
	}
	s, err := Load()
	if err == nil {
		return s.APIKey
	}
	return ""
}

// IsConfigured reports whether an API key is available. The CLI degrades
// to "not connected" output when it is not.
func IsConfigured() bool {
	return APIKey() != ""
}

// WorkspaceMemberID returns the stored CRM workspace member identity.
// Priority: REPSYNC_WORKSPACE_MEMBER env > config.json.
func WorkspaceMemberID() string {
	if v := os.Getenv("REPSYNC_WORKSPACE_MEMBER"); v != "" {
		return v
	}
	s, err := Load()
	if err == nil {
		return s.WorkspaceMemberID
	}
	return ""
}

// SetWorkspaceMemberID persists the workspace member identity.
func SetWorkspaceMemberID(id string) error {
	s, err := Load()
	if err != nil {
		return err
	}
	s.WorkspaceMemberID = id
	return Save(s)
}

// Offline reports whether the device is in offline mode. Pushes enqueue
// instead of touching the network while offline.
// Priority: REPSYNC_OFFLINE env > config.json > false.
func Offline() bool {
	if v := parseBoolEnv("REPSYNC_OFFLINE"); v != nil {
		return *v
	}
	s, err := Load()
	if err == nil && s.Offline != nil {
		return *s.Offline
	}
	return false
}

// AutoSyncEnabled reports whether mutating commands trigger a best-effort
// post-mutation push.
// Priority: REPSYNC_AUTO_SYNC env > config.json > true.
func AutoSyncEnabled() bool {
	if v := parseBoolEnv("REPSYNC_AUTO_SYNC"); v != nil {
		return *v
	}
	s, err := Load()
	if err == nil && s.AutoSync != nil {
		return *s.AutoSync
	}
	return true
}

// SyncInterval returns the periodic sync interval for the daemon.
// Priority: REPSYNC_SYNC_INTERVAL env > config.json > 5m.
func SyncInterval() time.Duration {
	if v := os.Getenv("REPSYNC_SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	s, err := Load()
	if err == nil && s.SyncInterval != "" {
		if d, err := time.ParseDuration(s.SyncInterval); err == nil {
			return d
		}
	}
	return defaultSyncInterval
}

// parseBoolEnv returns nil if env not set, pointer to bool if set.
func parseBoolEnv(envKey string) *bool {
	v := strings.ToLower(os.Getenv(envKey))
	switch v {
	case "1", "true":
		b := true
		return &b
	case "0", "false":
		b := false
		return &b
	}
	return nil
}
