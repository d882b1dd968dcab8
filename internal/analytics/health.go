package analytics

import (
	"math"

	"site-health/internal/series"
	"site-health/internal/stats"
)

const (
	// NeutralHealthScore is reported when there is no schedule history to score.
	NeutralHealthScore = 50.0

	subScoreWeight = 0.25

	// A 90-day incident-free streak earns a full streak score.
	incidentFreeHorizonDays = 90.0
	// Each recordable incident per 200k hours costs 25 points.
	trirPenaltyPerPoint = 25.0
)

// HealthBreakdown holds each weighted contribution to the composite score.
// Every contribution is in [0, 25] and Total is rounded to one decimal.
type HealthBreakdown struct {
	Schedule float64 `json:"schedule"`
	Cost     float64 `json:"cost"`
	Safety   float64 `json:"safety"`
	Quality  float64 `json:"quality"`
	Total    float64 `json:"total"`
}

// HealthScore returns the composite 0-100 project health score.
func HealthScore(c *series.Context) float64 {
	return ScoreHealth(c).Total
}

// ScoreHealth combines the latest schedule, cost, safety and quality signals with equal weight.
// An empty schedule yields the neutral score. A missing cost, safety or quality week scores
// its component at the neutral level rather than failing the whole score.
func ScoreHealth(c *series.Context) HealthBreakdown {
	sched, ok := c.Schedule().Latest()
	if !ok {
		return HealthBreakdown{Total: NeutralHealthScore}
	}

	scheduleScore := subScore(sched.SPI * 100)

	costScore := NeutralHealthScore
	if cost, ok := c.Cost().Latest(); ok {
		costScore = subScore(cost.CPI * 100)
	}

	safetyScore := NeutralHealthScore
	if s, ok := c.Safety().Latest(); ok {
		safetyScore = SafetySubScore(s)
	}

	qualityScore := NeutralHealthScore
	if q, ok := c.Quality().Latest(); ok {
		qualityScore = subScore(q.InspectionPassRatePct)
	}

	b := HealthBreakdown{
		Schedule: scheduleScore * subScoreWeight,
		Cost:     costScore * subScoreWeight,
		Safety:   safetyScore * subScoreWeight,
		Quality:  qualityScore * subScoreWeight,
	}
	b.Total = stats.Round(b.Schedule+b.Cost+b.Safety+b.Quality, 1)
	return b
}

// SafetySubScore averages the incident-free streak score and the TRIR score, each in [0,100].
func SafetySubScore(s series.SafetyRecord) float64 {
	streak := subScore(float64(s.DaysSinceLastIncident) / incidentFreeHorizonDays * 100)
	rate := subScore(math.Max(0, 100-s.TRIR*trirPenaltyPerPoint))
	return (streak + rate) / 2
}

func subScore(v float64) float64 {
	return stats.Clamp(v, 0, 100)
}
