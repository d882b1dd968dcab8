package analytics

import (
	"math"
	"time"

	"site-health/internal/series"
	"site-health/internal/stats"
)

// DiagnosticNoProgress is returned instead of a date when recent progress is flat or negative.
const DiagnosticNoProgress = "cannot predict — insufficient progress"

const (
	minForecastWeeks  = 3
	progressWindow    = 4
	maxForecastDays   = 100 * 365
	isoDateLayout     = "2006-01-02"
	fullProgressPct   = 100.0
	daysPerWeek       = 7.0
	nanosecondsPerDay = float64(24 * time.Hour)
)

// PredictCompletion extrapolates a completion date from the mean week-over-week gain in
// actual progress across the trailing four weeks. It reports false when fewer than three
// schedule weeks exist. Otherwise the string is an ISO date or DiagnosticNoProgress.
func PredictCompletion(c *series.Context) (string, bool) {
	sched := c.Schedule()
	if sched.Len() < minForecastWeeks {
		return "", false
	}

	progress := sched.Values(func(r series.ScheduleRecord) float64 {
		return r.ActualProgressPct
	})
	deltas := stats.Diffs(stats.Trailing(progress, progressWindow))
	if len(deltas) == 0 {
		return DiagnosticNoProgress, true
	}
	rate := stats.Mean(deltas)
	if rate <= 0 {
		return DiagnosticNoProgress, true
	}

	last, _ := sched.Latest()
	remaining := fullProgressPct - last.ActualProgressPct
	days := math.Min(remaining/rate*daysPerWeek, maxForecastDays)

	whole := math.Floor(days)
	predicted := last.Date.AddDate(0, 0, int(whole)).Add(time.Duration((days - whole) * nanosecondsPerDay))
	return predicted.Format(isoDateLayout), true
}
