package calllog

import (
	"testing"

	"github.com/ripemerchant/repsync/internal/models"
)

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		name        string
		disposition models.Disposition
		seconds     int
		lead        string
		want        string
	}{
		{"contact with lead", models.DispositionContact, 135, "Jane Doe", "Call - CONTACT | 2:15 | Jane Doe"},
		{"voicemail short", models.DispositionVoicemail, 22, "Bob", "Call - VOICEMAIL | 0:22 | Bob"},
		{"no lead name", models.DispositionNoAnswer, 5, "", "Call - NO_ANSWER | 0:05"},
		{"zero duration", models.DispositionBusy, 0, "Ann Lee", "Call - BUSY | 0:00 | Ann Lee"},
		{"exact minute", models.DispositionCallback, 60, "C", "Call - CALLBACK | 1:00 | C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTitle(tt.disposition, tt.seconds, tt.lead)
			if got != tt.want {
				t.Errorf("FormatTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	rec := ParseTitle("Call - CONTACTED | 2:15 | Jane Doe")
	if rec == nil {
		t.Fatal("ParseTitle returned nil for valid call title")
	}
	if rec.Disposition != "CONTACTED" {
		t.Errorf("Disposition = %q, want CONTACTED", rec.Disposition)
	}
	if rec.DurationSeconds != 135 {
		t.Errorf("DurationSeconds = %d, want 135", rec.DurationSeconds)
	}
	if rec.LeadName != "Jane Doe" {
		t.Errorf("LeadName = %q, want Jane Doe", rec.LeadName)
	}
}

func TestParseTitleNonCallNotes(t *testing.T) {
	titles := []string{
		"Meeting notes",
		"",
		"Follow up with legal",
		"Called about renewal", // no "Call - " prefix
	}
	for _, title := range titles {
		if rec := ParseTitle(title); rec != nil {
			t.Errorf("ParseTitle(%q) = %+v, want nil", title, rec)
		}
	}
}

func TestParseTitlePartialFields(t *testing.T) {
	// Two fields is enough: disposition and duration, no lead.
	rec := ParseTitle("Call - VOICEMAIL | 0:45")
	if rec == nil {
		t.Fatal("ParseTitle returned nil for two-field title")
	}
	if rec.DurationSeconds != 45 {
		t.Errorf("DurationSeconds = %d, want 45", rec.DurationSeconds)
	}
	if rec.LeadName != "" {
		t.Errorf("LeadName = %q, want empty", rec.LeadName)
	}

	// Prefix alone is not a call log.
	if rec := ParseTitle("Call - CONTACT"); rec != nil {
		t.Errorf("single-field title parsed to %+v, want nil", rec)
	}
}

func TestParseTitleBadDuration(t *testing.T) {
	rec := ParseTitle("Call - CONTACT | junk | Jane")
	if rec == nil {
		t.Fatal("ParseTitle returned nil, want record with zero duration")
	}
	if rec.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %d, want 0 for unparseable duration", rec.DurationSeconds)
	}
}

func TestFormatTitleRoundTrip(t *testing.T) {
	got := ParseTitle(FormatTitle(models.DispositionDNC, 754, "Sam Park"))
	if got == nil {
		t.Fatal("round trip parse returned nil")
	}
	if got.Disposition != models.DispositionDNC || got.DurationSeconds != 754 || got.LeadName != "Sam Park" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{135, "2:15"},
		{3661, "61:01"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
