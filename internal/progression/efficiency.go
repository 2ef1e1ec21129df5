package progression

import (
	"time"

	"github.com/ripemerchant/repsync/internal/models"
)

// MinDialsForMetrics is the grace-period floor: reps under this many
// dials in the window are still ramping and are not scored.
const MinDialsForMetrics = 200

// Rollup computes trailing-window efficiency rates from daily metric
// aggregates. Rates with a zero denominator report as zero.
func Rollup(days []models.DailyMetrics) models.EfficiencyMetrics {
	var totals models.DailyMetrics
	for _, d := range days {
		totals.Dials += d.Dials
		totals.Connects += d.Connects
		totals.CallsUnder30s += d.CallsUnder30s
		totals.CallsOver2Min += d.CallsOver2Min
		totals.Appointments += d.Appointments
		totals.Shows += d.Shows
		totals.Deals += d.Deals
		totals.SMSEnrollments += d.SMSEnrollments
	}

	em := models.EfficiencyMetrics{LastCalculated: time.Now().UTC()}
	if totals.Connects > 0 {
		em.Sub30sDropRate = float64(totals.CallsUnder30s) / float64(totals.Connects)
		em.CallToApptRate = float64(totals.Appointments) / float64(totals.Connects)
		em.TwoPlusMinRate = float64(totals.CallsOver2Min) / float64(totals.Connects)
		em.SMSEnrollmentRate = float64(totals.SMSEnrollments) / float64(totals.Connects)
	}
	if totals.Appointments > 0 {
		em.ShowRate = float64(totals.Shows) / float64(totals.Appointments)
	}
	return em
}

// IsRamping reports whether the window's dial volume is still below the
// scoring floor.
func IsRamping(days []models.DailyMetrics) bool {
	dials := 0
	for _, d := range days {
		dials += d.Dials
	}
	return dials < MinDialsForMetrics
}
