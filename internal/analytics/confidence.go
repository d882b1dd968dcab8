package analytics

import (
	"site-health/internal/series"
	"site-health/internal/stats"
)

// Cost-forecast confidence labels.
const (
	ConfidenceInsufficientData = "insufficient data"
	ConfidenceHigh             = "high confidence"
	ConfidenceMedium           = "medium confidence"
	ConfidenceLow              = "low confidence"
)

const (
	cpiVolatilityWindow   = 5
	highConfidenceLimit   = 0.05
	mediumConfidenceLimit = 0.10
)

// EstimateConfidence rates the cost forecast by the spread of CPI over the last five weeks.
func EstimateConfidence(c *series.Context) string {
	cost := c.Cost()
	if cost.Len() < cpiVolatilityWindow {
		return ConfidenceInsufficientData
	}
	cpis := cost.Values(func(r series.CostRecord) float64 { return r.CPI })
	return ConfidenceForStdDev(stats.TrailingStdDev(cpis, cpiVolatilityWindow))
}

// ConfidenceForStdDev maps a CPI standard deviation to a label. Both limits are exclusive.
func ConfidenceForStdDev(sd float64) string {
	switch {
	case sd < highConfidenceLimit:
		return ConfidenceHigh
	case sd < mediumConfidenceLimit:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
