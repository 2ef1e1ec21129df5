package db

import (
	"fmt"
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

// AppendXPEvent records a single experience award in the local activity log.
func (db *DB) AppendXPEvent(eventType string, amount int) error {
	_, err := db.conn.Exec(`
		INSERT INTO xp_events (event_type, xp_amount, created_at) VALUES (?, ?, ?)
	`, eventType, amount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}
	return nil
}

// RecentXPEvents returns the newest events first, up to limit.
func (db *DB) RecentXPEvents(limit int) ([]models.XPEvent, error) {
	rows, err := db.conn.Query(`
		SELECT id, event_type, xp_amount, created_at
		FROM xp_events ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	defer rows.Close()

	var out []models.XPEvent
	for rows.Next() {
		var e models.XPEvent
		var created string
		if err := rows.Scan(&e.ID, &e.EventType, &e.XPAmount, &created); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
