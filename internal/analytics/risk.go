package analytics

import (
	"site-health/internal/series"
	"site-health/internal/stats"
)

// Risk trend messages, in evaluation order.
const (
	RiskInsufficientData   = "insufficient data for trend analysis"
	RiskSPIDeclining       = "schedule performance index trending downward"
	RiskCPIDeclining       = "cost performance index trending downward"
	RiskNearMisses         = "higher than average near-miss incidents"
	RiskLowPassRate        = "inspection pass rate below 80%"
	RiskHighRework         = "high rework costs detected"
	RiskLaborEfficiency    = "labor efficiency declining"
	RiskNoSignificantTrend = "no significant risk trends detected"
)

const (
	minTrendWeeks = 3

	indexTrendWindow      = 3
	indexTrendFloor       = 0.95
	nearMissWindow        = 4
	nearMissCeiling       = 3.0
	passRateWindow        = 3
	passRateFloor         = 80.0
	reworkWindow          = 3
	reworkCeiling         = 10000.0
	laborEfficiencyFactor = 1.2
)

type riskRule struct {
	message string
	fires   func(c *series.Context) bool
}

// riskRules run in this order; the output preserves it.
var riskRules = []riskRule{
	{RiskSPIDeclining, func(c *series.Context) bool {
		return decliningIndex(stats.Trailing(c.Schedule().Values(func(r series.ScheduleRecord) float64 { return r.SPI }), indexTrendWindow))
	}},
	{RiskCPIDeclining, func(c *series.Context) bool {
		return decliningIndex(stats.Trailing(c.Cost().Values(func(r series.CostRecord) float64 { return r.CPI }), indexTrendWindow))
	}},
	{RiskNearMisses, func(c *series.Context) bool {
		safety := c.Safety()
		counts := safety.Values(func(r series.SafetyRecord) float64 { return float64(r.NearMissCount) })
		return !safety.IsEmpty() && stats.TrailingMean(counts, nearMissWindow) > nearMissCeiling
	}},
	{RiskLowPassRate, func(c *series.Context) bool {
		quality := c.Quality()
		rates := quality.Values(func(r series.QualityRecord) float64 { return r.InspectionPassRatePct })
		return !quality.IsEmpty() && stats.TrailingMean(rates, passRateWindow) < passRateFloor
	}},
	{RiskHighRework, func(c *series.Context) bool {
		costs := c.Quality().Values(func(r series.QualityRecord) float64 { return r.ReworkCost })
		return stats.TrailingMean(costs, reworkWindow) > reworkCeiling
	}},
	{RiskLaborEfficiency, func(c *series.Context) bool {
		hpu := c.Productivity().Values(func(r series.ProductivityRecord) float64 { return r.LaborHoursPerUnit })
		if len(hpu) < 2 {
			return false
		}
		return hpu[len(hpu)-1] > stats.Mean(hpu)*laborEfficiencyFactor
	}},
}

// DetectRiskTrends evaluates the threshold rules over trailing windows and returns the
// messages of every rule that fired. The result is never empty.
func DetectRiskTrends(c *series.Context) []string {
	if c.Schedule().Len() < minTrendWeeks {
		return []string{RiskInsufficientData}
	}

	var risks []string
	for _, rule := range riskRules {
		if rule.fires(c) {
			risks = append(risks, rule.message)
		}
	}
	if len(risks) == 0 {
		return []string{RiskNoSignificantTrend}
	}
	return risks
}

// decliningIndex reports whether a performance-index window is both below the floor on
// average and lower at its end than at its start.
func decliningIndex(window []float64) bool {
	if len(window) == 0 {
		return false
	}
	return stats.Mean(window) < indexTrendFloor && window[len(window)-1] < window[0]
}
