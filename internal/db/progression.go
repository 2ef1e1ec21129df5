package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

// progressionID is the fixed key of the singleton progression row.
const progressionID = "current"

// GetProgression returns the singleton progression record, creating it
// with defaults if absent. Set-valued columns are decoded from their
// JSON text representation; missing or malformed columns fall back to
// empty sets rather than failing the read.
func (db *DB) GetProgression() (*models.Progression, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, rank, total_xp, current_level, closed_deals, streak_days,
		       mentee_count, COALESCE(active_title, ''), badges, defeated_bosses,
		       passed_exams, titles, completed_modules, boss_attempts,
		       efficiency_metrics, last_activity
		FROM progression WHERE id = ?
	`, progressionID)

	p, err := scanProgression(row)
	if err == sql.ErrNoRows {
		p = defaultProgression()
		if putErr := db.PutProgression(p); putErr != nil {
			return nil, fmt.Errorf("create progression: %w", putErr)
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progression: %w", err)
	}
	return p, nil
}

// PutProgression overwrites the singleton progression record wholesale.
func (db *DB) PutProgression(p *models.Progression) error {
	p.ID = progressionID

	badges := encodeJSON(p.Badges, "[]")
	bosses := encodeJSON(p.DefeatedBosses, "[]")
	exams := encodeJSON(p.PassedExams, "[]")
	titles := encodeJSON(p.Titles, "[]")
	modules := encodeJSON(p.CompletedModules, "[]")
	attempts := encodeJSON(p.BossAttempts, "{}")

	var efficiency any
	if p.Efficiency != nil {
		efficiency = encodeJSON(p.Efficiency, "null")
	}

	lastActivity := p.LastActivity
	if lastActivity.IsZero() {
		lastActivity = time.Now().UTC()
	}

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO progression (
			id, name, rank, total_xp, current_level, closed_deals, streak_days,
			mentee_count, active_title, badges, defeated_bosses, passed_exams,
			titles, completed_modules, boss_attempts, efficiency_metrics, last_activity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Rank, p.TotalXP, p.Level, p.ClosedDeals, p.StreakDays,
		p.MenteeCount, p.ActiveTitle, badges, bosses, exams, titles, modules,
		attempts, efficiency, lastActivity.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put progression: %w", err)
	}
	return nil
}

func defaultProgression() *models.Progression {
	return &models.Progression{
		ID:               progressionID,
		Name:             "Rep",
		Rank:             "E-1",
		TotalXP:          0,
		Level:            1,
		Badges:           []string{},
		DefeatedBosses:   []string{},
		PassedExams:      []string{},
		Titles:           []string{},
		CompletedModules: []string{},
		BossAttempts:     map[string]int{},
		LastActivity:     time.Now().UTC(),
	}
}

func scanProgression(row *sql.Row) (*models.Progression, error) {
	var p models.Progression
	var badges, bosses, exams, titles, modules, attempts string
	var efficiency sql.NullString
	var lastActivity string

	err := row.Scan(&p.ID, &p.Name, &p.Rank, &p.TotalXP, &p.Level, &p.ClosedDeals,
		&p.StreakDays, &p.MenteeCount, &p.ActiveTitle, &badges, &bosses, &exams,
		&titles, &modules, &attempts, &efficiency, &lastActivity)
	if err != nil {
		return nil, err
	}

	p.Badges = decodeStrings(badges)
	p.DefeatedBosses = decodeStrings(bosses)
	p.PassedExams = decodeStrings(exams)
	p.Titles = decodeStrings(titles)
	p.CompletedModules = decodeStrings(modules)

	p.BossAttempts = map[string]int{}
	if attempts != "" {
		if err := json.Unmarshal([]byte(attempts), &p.BossAttempts); err != nil {
			slog.Debug("decode boss attempts", "err", err)
		}
	}

	if efficiency.Valid && efficiency.String != "" && efficiency.String != "null" {
		var em models.EfficiencyMetrics
		if err := json.Unmarshal([]byte(efficiency.String), &em); err != nil {
			slog.Debug("decode efficiency metrics", "err", err)
		} else {
			p.Efficiency = &em
		}
	}

	if t, err := time.Parse(time.RFC3339, lastActivity); err == nil {
		p.LastActivity = t
	}

	return &p, nil
}

// decodeStrings parses a JSON string array column, tolerating bad data.
func decodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Debug("decode string array column", "err", err)
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// encodeJSON marshals v, falling back to the given literal on error.
func encodeJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encode json column", "err", err)
		return fallback
	}
	return string(data)
}
