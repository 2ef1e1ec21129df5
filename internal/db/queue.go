package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ripemerchant/repsync/internal/models"
)

// Enqueue appends a pending push operation to the outbox with a fresh
// idempotency key and zero attempts. Returns the stored entry.
func (db *DB) Enqueue(op models.QueueOperation, payload any) (*models.QueueEntry, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal queue payload: %w", err)
	}

	key := uuid.NewString()
	now := time.Now().UTC()
	res, err := db.conn.Exec(`
		INSERT INTO sync_queue (operation, idempotency_key, payload, created_at, attempts)
		VALUES (?, ?, ?, ?, 0)
	`, string(op), key, string(data), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("enqueue id: %w", err)
	}
	return &models.QueueEntry{
		ID:             id,
		Operation:      op,
		IdempotencyKey: key,
		Payload:        data,
		CreatedAt:      now,
	}, nil
}

// ListQueue returns all pending entries, oldest first.
func (db *DB) ListQueue() ([]models.QueueEntry, error) {
	rows, err := db.conn.Query(`
		SELECT id, operation, idempotency_key, payload, created_at, attempts, last_attempt
		FROM sync_queue ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	var out []models.QueueEntry
	for rows.Next() {
		var e models.QueueEntry
		var op, payload, created string
		var last sql.NullString
		if err := rows.Scan(&e.ID, &op, &e.IdempotencyKey, &payload, &created, &e.Attempts, &last); err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		e.Operation = models.QueueOperation(op)
		e.Payload = json.RawMessage(payload)
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		if last.Valid {
			if t, err := time.Parse(time.RFC3339, last.String); err == nil {
				e.LastAttempt = &t
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// QueueDepth returns the number of pending outbox entries.
func (db *DB) QueueDepth() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM sync_queue`).Scan(&n)
	return n, err
}

// DeleteQueueEntry removes a delivered (or abandoned) entry.
func (db *DB) DeleteQueueEntry(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM sync_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete queue entry %d: %w", id, err)
	}
	return nil
}

// BumpQueueAttempt increments the attempt counter and stamps the last
// attempt time after a failed replay.
func (db *DB) BumpQueueAttempt(id int64) error {
	_, err := db.conn.Exec(`
		UPDATE sync_queue SET attempts = attempts + 1, last_attempt = ? WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("bump queue attempt %d: %w", id, err)
	}
	return nil
}
