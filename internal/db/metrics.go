package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

// metricColumns whitelists incrementable daily metric columns. Increment
// queries are built with fmt.Sprintf, so the column name must come from
// this set.
var metricColumns = map[string]bool{
	"dials":           true,
	"connects":        true,
	"calls_under_30s": true,
	"calls_over_2min": true,
	"appointments":    true,
	"shows":           true,
	"deals":           true,
	"sms_enrollments": true,
}

// Today returns the current date as an ISO date string.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// GetDailyMetrics returns the aggregate for the given date, creating a
// zeroed row on first access.
func (db *DB) GetDailyMetrics(date string) (*models.DailyMetrics, error) {
	m, err := db.scanDay(date)
	if err == sql.ErrNoRows {
		if _, err := db.conn.Exec(`INSERT INTO daily_metrics (date) VALUES (?)`, date); err != nil {
			return nil, fmt.Errorf("create daily metrics %s: %w", date, err)
		}
		return db.scanDay(date)
	}
	if err != nil {
		return nil, fmt.Errorf("get daily metrics %s: %w", date, err)
	}
	return m, nil
}

// IncrementMetric adds delta to a single counter on the given date's
// aggregate, creating the row if needed. The column must be one of the
// known metric columns.
func (db *DB) IncrementMetric(date, column string, delta int) error {
	if !metricColumns[column] {
		return fmt.Errorf("unknown metric column: %q", column)
	}
	if _, err := db.GetDailyMetrics(date); err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE daily_metrics SET %s = %s + ? WHERE date = ?`, column, column)
	if _, err := db.conn.Exec(query, delta, date); err != nil {
		return fmt.Errorf("increment %s for %s: %w", column, date, err)
	}
	return nil
}

// MetricsSince returns all daily aggregates on or after startDate,
// oldest first.
func (db *DB) MetricsSince(startDate string) ([]models.DailyMetrics, error) {
	rows, err := db.conn.Query(`
		SELECT date, dials, connects, calls_under_30s, calls_over_2min,
		       appointments, shows, deals, sms_enrollments
		FROM daily_metrics WHERE date >= ? ORDER BY date ASC
	`, startDate)
	if err != nil {
		return nil, fmt.Errorf("query metrics since %s: %w", startDate, err)
	}
	defer rows.Close()

	var out []models.DailyMetrics
	for rows.Next() {
		var m models.DailyMetrics
		if err := rows.Scan(&m.Date, &m.Dials, &m.Connects, &m.CallsUnder30s,
			&m.CallsOver2Min, &m.Appointments, &m.Shows, &m.Deals, &m.SMSEnrollments); err != nil {
			return nil, fmt.Errorf("scan daily metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (db *DB) scanDay(date string) (*models.DailyMetrics, error) {
	var m models.DailyMetrics
	err := db.conn.QueryRow(`
		SELECT date, dials, connects, calls_under_30s, calls_over_2min,
		       appointments, shows, deals, sms_enrollments
		FROM daily_metrics WHERE date = ?
	`, date).Scan(&m.Date, &m.Dials, &m.Connects, &m.CallsUnder30s,
		&m.CallsOver2Min, &m.Appointments, &m.Shows, &m.Deals, &m.SMSEnrollments)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
