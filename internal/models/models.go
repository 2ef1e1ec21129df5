package models

import (
	"encoding/json"
	"time"
)

// Disposition is the outcome code a rep assigns to a completed call.
type Disposition string

const (
	DispositionContact       Disposition = "CONTACT"
	DispositionCallback      Disposition = "CALLBACK"
	DispositionVoicemail     Disposition = "VOICEMAIL"
	DispositionNoAnswer      Disposition = "NO_ANSWER"
	DispositionNotInterested Disposition = "NOT_INTERESTED"
	DispositionWrongNumber   Disposition = "WRONG_NUMBER"
	DispositionBusy          Disposition = "BUSY"
	DispositionDNC           Disposition = "DNC"
)

// SyncDirection reports which way a full sync moved data.
type SyncDirection string

const (
	DirectionFromTwenty SyncDirection = "from_twenty"
	DirectionToTwenty   SyncDirection = "to_twenty"
	DirectionNone       SyncDirection = "none"
)

// QueueOperation identifies a replayable outbox operation.
type QueueOperation string

const (
	OpUpdateProgression QueueOperation = "updateProgression"
)

// EfficiencyMetrics holds trailing-window rate statistics derived from
// daily metric aggregates.
type EfficiencyMetrics struct {
	Sub30sDropRate    float64   `json:"sub30sDropRate"`
	CallToApptRate    float64   `json:"callToApptRate"`
	TwoPlusMinRate    float64   `json:"twoPlusMinRate"`
	ShowRate          float64   `json:"showRate"`
	SMSEnrollmentRate float64   `json:"smsEnrollmentRate"`
	LastCalculated    time.Time `json:"lastCalculated"`
}

// Progression is the gamification state tracked per rep. Exactly one row
// exists locally, keyed "current".
type Progression struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Rank             string             `json:"rank"` // E-1 through E-7
	TotalXP          int                `json:"totalXp"`
	Level            int                `json:"currentLevel"`
	ClosedDeals      int                `json:"closedDeals"`
	StreakDays       int                `json:"streakDays"`
	MenteeCount      int                `json:"menteeCount,omitempty"`
	ActiveTitle      string             `json:"activeTitle,omitempty"`
	Badges           []string           `json:"badges"`
	DefeatedBosses   []string           `json:"defeatedBosses"`
	PassedExams      []string           `json:"passedExams"`
	Titles           []string           `json:"titles"`
	CompletedModules []string           `json:"completedModules"`
	BossAttempts     map[string]int     `json:"bossAttempts"`
	Efficiency       *EfficiencyMetrics `json:"efficiencyMetrics,omitempty"`
	LastActivity     time.Time          `json:"lastActivityDate"`
}

// DailyMetrics aggregates one calendar day of rep activity, keyed by
// ISO date string (YYYY-MM-DD).
type DailyMetrics struct {
	Date           string `json:"date"`
	Dials          int    `json:"dials"`
	Connects       int    `json:"connects"`
	CallsUnder30s  int    `json:"callsUnder30s"`
	CallsOver2Min  int    `json:"callsOver2Min"`
	Appointments   int    `json:"appointments"`
	Shows          int    `json:"shows"`
	Deals          int    `json:"deals"`
	SMSEnrollments int    `json:"smsEnrollments"`
}

// QueueEntry is a pending push operation awaiting delivery to the CRM.
type QueueEntry struct {
	ID             int64           `json:"id"`
	Operation      QueueOperation  `json:"operation"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Payload        json.RawMessage `json:"payload"`
	CreatedAt      time.Time       `json:"createdAt"`
	Attempts       int             `json:"attempts"`
	LastAttempt    *time.Time      `json:"lastAttempt,omitempty"`
}

// XPEvent is a single locally-recorded experience award.
type XPEvent struct {
	ID        int64     `json:"id"`
	EventType string    `json:"eventType"`
	XPAmount  int       `json:"xpAmount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CallRecord is a call-log entry decoded from a CRM note title.
type CallRecord struct {
	ID              string      `json:"id,omitempty"`
	Disposition     Disposition `json:"disposition"`
	DurationSeconds int         `json:"durationSeconds"`
	LeadName        string      `json:"leadName"`
	LeadID          string      `json:"leadId,omitempty"`
	XPAwarded       int         `json:"xpAwarded,omitempty"`
	CreatedAt       time.Time   `json:"createdAt,omitempty"`
	RawTitle        string      `json:"rawTitle,omitempty"`
}

// WasSubThirty reports whether the call dropped before 30 seconds.
func (c CallRecord) WasSubThirty() bool {
	return c.DurationSeconds < 30
}

// WasTwoPlusMin reports whether the call ran two minutes or longer.
func (c CallRecord) WasTwoPlusMin() bool {
	return c.DurationSeconds >= 120
}

// LeaderboardEntry is one row of the CRM-wide rep leaderboard.
type LeaderboardEntry struct {
	Name              string `json:"name"`
	WorkspaceMemberID string `json:"workspaceMemberId"`
	TotalXP           int    `json:"totalXp"`
	Level             int    `json:"currentLevel"`
	Rank              string `json:"currentRank"`
}
