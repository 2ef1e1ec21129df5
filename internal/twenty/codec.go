package twenty

import (
	"encoding/json"

	"github.com/ripemerchant/repsync/internal/models"
	"github.com/ripemerchant/repsync/internal/progression"
)

// The remote RepProgression schema stores arrays and objects as JSON
// text inside string columns. This file is the single encode/decode
// boundary for that representation; nothing else in the repo should
// marshal progression fields for the wire.

// EncodeStrings renders a string set for a remote string column.
func EncodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeStrings parses a remote string column into a string set.
// Malformed or empty columns decode to an empty set.
func DecodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// EncodeEfficiency renders efficiency metrics for the remote column.
func EncodeEfficiency(em *models.EfficiencyMetrics) string {
	if em == nil {
		return ""
	}
	data, err := json.Marshal(em)
	if err != nil {
		return ""
	}
	return string(data)
}

// FromLocal converts the local progression record into the remote wire
// representation for a given workspace member.
func FromLocal(p *models.Progression, workspaceMemberID, displayName string) *RepProgression {
	name := displayName
	if name == "" {
		name = p.Name
	}
	return &RepProgression{
		Name:              name,
		WorkspaceMemberID: workspaceMemberID,
		TotalXP:           p.TotalXP,
		CurrentLevel:      p.Level,
		CurrentRank:       progression.RankCode(p.TotalXP),
		ClosedDeals:       p.ClosedDeals,
		StreakDays:        p.StreakDays,
		Badges:            EncodeStrings(p.Badges),
		CompletedModules:  EncodeStrings(p.CompletedModules),
		DefeatedBosses:    EncodeStrings(p.DefeatedBosses),
		PassedExams:       EncodeStrings(p.PassedExams),
		EfficiencyMetrics: EncodeEfficiency(p.Efficiency),
	}
}

// ToSnapshot decodes a remote record into a merge-ready snapshot.
func ToSnapshot(r *RepProgression) *progression.RemoteSnapshot {
	return &progression.RemoteSnapshot{
		Name:             r.Name,
		TotalXP:          r.TotalXP,
		Level:            r.CurrentLevel,
		Rank:             r.CurrentRank,
		ClosedDeals:      r.ClosedDeals,
		StreakDays:       r.StreakDays,
		Badges:           DecodeStrings(r.Badges),
		DefeatedBosses:   DecodeStrings(r.DefeatedBosses),
		PassedExams:      DecodeStrings(r.PassedExams),
		CompletedModules: DecodeStrings(r.CompletedModules),
	}
}
