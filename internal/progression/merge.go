package progression

import (
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

// RemoteSnapshot is a decoded remote progression record, independent of
// the CRM wire encoding.
type RemoteSnapshot struct {
	Name             string
	TotalXP          int
	Level            int
	Rank             string
	ClosedDeals      int
	StreakDays       int
	Badges           []string
	DefeatedBosses   []string
	PassedExams      []string
	CompletedModules []string
}

// Merge folds a remote snapshot into the local record under the fixed
// field policy: remote scalars overwrite local unconditionally,
// set-valued fields are unioned so locally-recorded achievements the
// remote has not seen survive a pull, and fields with no remote
// equivalent (efficiency metrics, boss attempts, titles, mentee count)
// are preserved from local. The local record is modified in place.
func Merge(local *models.Progression, remote *RemoteSnapshot) {
	local.TotalXP = remote.TotalXP
	local.Level = remote.Level
	local.ClosedDeals = remote.ClosedDeals
	local.StreakDays = remote.StreakDays

	if remote.Rank != "" {
		local.Rank = remote.Rank
	}
	if remote.Name != "" {
		local.Name = remote.Name
	}

	local.Badges = UnionStrings(local.Badges, remote.Badges)
	local.DefeatedBosses = UnionStrings(local.DefeatedBosses, remote.DefeatedBosses)
	local.PassedExams = UnionStrings(local.PassedExams, remote.PassedExams)
	local.CompletedModules = UnionStrings(local.CompletedModules, remote.CompletedModules)

	local.LastActivity = time.Now().UTC()
}
