// Package calllog owns the call-log note title format used to store
// call records as CRM notes:
//
//	Call - DISPOSITION | M:SS | LeadName
//
// The lead name segment is optional. Titles that do not carry the
// "Call -" prefix or have fewer than two fields are not call logs and
// parse to nil rather than erroring, so mixed note lists can be
// filtered by parsing.
package calllog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ripemerchant/repsync/internal/models"
)

const (
	titlePrefix    = "Call - "
	fieldSeparator = " | "
)

// FormatTitle renders a call record into the note title format.
func FormatTitle(disposition models.Disposition, durationSeconds int, leadName string) string {
	title := titlePrefix + string(disposition) + fieldSeparator + FormatDuration(durationSeconds)
	if leadName != "" {
		title += fieldSeparator + leadName
	}
	return title
}

// FormatDuration renders seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ParseTitle decodes a note title into a call record. Returns nil for
// titles that do not conform to the format.
func ParseTitle(title string) *models.CallRecord {
	if !strings.HasPrefix(title, "Call -") {
		return nil
	}

	rest := strings.TrimPrefix(title, titlePrefix)
	parts := strings.Split(rest, fieldSeparator)
	if len(parts) < 2 {
		return nil
	}

	disposition := strings.TrimSpace(parts[0])
	if disposition == "" {
		disposition = "UNKNOWN"
	}

	rec := &models.CallRecord{
		Disposition:     models.Disposition(disposition),
		DurationSeconds: parseDuration(strings.TrimSpace(parts[1])),
		RawTitle:        title,
	}
	if len(parts) > 2 {
		rec.LeadName = strings.TrimSpace(parts[2])
	}
	return rec
}

// parseDuration decodes M:SS, tolerating missing or non-numeric pieces.
func parseDuration(s string) int {
	minutes, seconds := 0, 0
	if i := strings.Index(s, ":"); i >= 0 {
		minutes, _ = strconv.Atoi(s[:i])
		seconds, _ = strconv.Atoi(s[i+1:])
	} else {
		seconds, _ = strconv.Atoi(s)
	}
	return minutes*60 + seconds
}
