package twenty

// RepProgression mirrors Twenty's repProgressions custom object. The
// remote schema has no native array type in this model, so set-valued
// fields travel as JSON-encoded strings; see codec.go.
type RepProgression struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	WorkspaceMemberID string `json:"workspaceMemberId"`
	TotalXP           int    `json:"totalXp"`
	CurrentLevel      int    `json:"currentLevel"`
	CurrentRank       string `json:"currentRank"`
	ClosedDeals       int    `json:"closedDeals"`
	StreakDays        int    `json:"streakDays"`
	Badges            string `json:"badges,omitempty"`            // JSON array
	CompletedModules  string `json:"completedModules,omitempty"`  // JSON array
	Certifications    string `json:"certifications,omitempty"`    // JSON array
	DefeatedBosses    string `json:"defeatedBosses,omitempty"`    // JSON array
	PassedExams       string `json:"passedExams,omitempty"`       // JSON array
	EfficiencyMetrics string `json:"efficiencyMetrics,omitempty"` // JSON object
	LastActivityDate  string `json:"lastActivityDate,omitempty"`
}

// MemberName is Twenty's structured person name.
type MemberName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// WorkspaceMember is a user identity within the CRM workspace, the join
// key between local progression and remote records.
type WorkspaceMember struct {
	ID   string     `json:"id"`
	Name MemberName `json:"name"`
}

// DisplayName renders "First Last", trimming absent parts.
func (m WorkspaceMember) DisplayName() string {
	switch {
	case m.Name.FirstName == "":
		return m.Name.LastName
	case m.Name.LastName == "":
		return m.Name.FirstName
	}
	return m.Name.FirstName + " " + m.Name.LastName
}

// Note is a CRM note. Call logs are notes whose title carries the
// call-log micro-format.
type Note struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	PersonID  string `json:"personId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
