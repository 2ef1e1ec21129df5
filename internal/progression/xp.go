// Package progression holds the gamification rules: XP awards, level
// and rank derivation, the pull-merge policy, and the efficiency
// metrics roll-up.
package progression

import (
	"sort"

	"github.com/ripemerchant/repsync/internal/models"
)

// BattleOutcome is the result of a boss battle.
type BattleOutcome string

const (
	OutcomeWin     BattleOutcome = "win"
	OutcomeLose    BattleOutcome = "lose"
	OutcomeAbandon BattleOutcome = "abandon"
)

// ModuleXP maps training module IDs to their completion awards.
var ModuleXP = map[string]int{
	"module_0": 50,  // Product Foundations
	"module_1": 50,  // Opener Mastery
	"module_2": 50,  // Timing Optimization
	"module_3": 50,  // Cadence Excellence
	"module_4": 75,  // Objection Exploration
	"module_5": 100, // TCPA Compliance
	"module_6": 300, // Full Framework Certification
}

// rankThreshold pairs a minimum XP total with its enlisted rank code.
type rankThreshold struct {
	XP   int
	Code string
	Name string
}

// rankThresholds in ascending XP order. The highest threshold at or
// below the rep's total wins.
var rankThresholds = []rankThreshold{
	{0, "E-1", "sdr_1"},
	{500, "E-2", "sdr_2"},
	{1500, "E-3", "sdr_3"},
	{3000, "E-4", "operative"},
	{5000, "E-5", "senior"},
	{8000, "E-6", "team_lead"},
	{12000, "E-7", "manager"},
}

// Level derives the level from total XP: one level per 100 XP.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/100 + 1
}

// RankCode returns the enlisted rank code (E-1 through E-7) for an XP total.
func RankCode(xp int) string {
	code := rankThresholds[0].Code
	for _, t := range rankThresholds {
		if xp >= t.XP {
			code = t.Code
		}
	}
	return code
}

// RankName returns the internal rank name (sdr_1 through manager) for an XP total.
func RankName(xp int) string {
	name := rankThresholds[0].Name
	for _, t := range rankThresholds {
		if xp >= t.XP {
			name = t.Name
		}
	}
	return name
}

// NextRankXP returns the XP threshold of the next rank, or -1 at the
// top rank.
func NextRankXP(xp int) int {
	for _, t := range rankThresholds {
		if xp < t.XP {
			return t.XP
		}
	}
	return -1
}

// ModuleAward returns the XP for completing a module, defaulting to 50
// for modules without an explicit award.
func ModuleAward(moduleID string) int {
	if xp, ok := ModuleXP[moduleID]; ok {
		return xp
	}
	return 50
}

// BattleAward computes boss-battle XP from the outcome and boss level.
func BattleAward(outcome BattleOutcome, level int, allObjectionsCleared bool) int {
	if level < 1 {
		level = 1
	}
	switch outcome {
	case OutcomeWin:
		if allObjectionsCleared {
			return 150 * level
		}
		return 100 * level
	case OutcomeLose:
		return 30 * level
	case OutcomeAbandon:
		return 10
	}
	return 0
}

// Apply adds xp to the progression and recomputes the derived level and
// rank fields.
func Apply(p *models.Progression, xp int) {
	p.TotalXP += xp
	p.Level = Level(p.TotalXP)
	p.Rank = RankCode(p.TotalXP)
}

// UnionStrings merges two string sets order-insensitively, returning a
// sorted slice with no duplicates. No element from either side is lost.
func UnionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		seen[s] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
