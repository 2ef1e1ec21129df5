package sync

import (
	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/twenty"
)

// Remote is the CRM surface the engine depends on. *twenty.Client
// satisfies it; tests substitute a fake.
type Remote interface {
	GetRepProgression(workspaceMemberID string) (*twenty.RepProgression, error)
	CreateRepProgression(p *twenty.RepProgression) (*twenty.RepProgression, error)
	UpdateRepProgression(id string, p *twenty.RepProgression) (*twenty.RepProgression, error)
	GetWorkspaceMembers() ([]twenty.WorkspaceMember, error)
	CurrentWorkspaceMember(id string) (*twenty.WorkspaceMember, error)
	CreateNote(title, body, personID string) (*twenty.Note, error)
}

// FullResult reports the outcome of a full bidirectional sync.
type FullResult struct {
	Success   bool                 `json:"success"`
	Direction models.SyncDirection `json:"direction"`
	Changes   int                  `json:"changes"` // absolute XP delta between sides
}

// FlushResult summarises one pass over the outbox.
type FlushResult struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	Dropped   int `json:"dropped"` // abandoned after exhausting attempts
}
