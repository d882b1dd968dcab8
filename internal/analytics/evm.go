package analytics

import (
	"site-health/internal/series"
	"site-health/internal/stats"
)

// EVMMetrics holds the earned-value figures for the latest reporting week.
// Currency values are rounded to cents, indices to three decimals.
type EVMMetrics struct {
	PlannedValue     float64 `json:"planned_value"`
	EarnedValue      float64 `json:"earned_value"`
	ActualCost       float64 `json:"actual_cost"`
	CostVariance     float64 `json:"cost_variance"`
	ScheduleVariance float64 `json:"schedule_variance"`
	SPI              float64 `json:"spi"`
	CPI              float64 `json:"cpi"`
	TCPI             Figure  `json:"tcpi"`
	EAC              float64 `json:"eac"`
	ETC              float64 `json:"etc"`
	VAC              float64 `json:"vac"`
}

// ComputeEVM derives earned-value metrics from the latest schedule and cost weeks.
// It reports false when either series is empty.
func ComputeEVM(c *series.Context, budget float64) (EVMMetrics, bool) {
	sched, ok := c.Schedule().Latest()
	if !ok {
		return EVMMetrics{}, false
	}
	cost, ok := c.Cost().Latest()
	if !ok {
		return EVMMetrics{}, false
	}

	pv := sched.PlannedValue
	ev := sched.EarnedValue
	ac := cost.CumulativeSpent

	spi := series.PerformanceIndex(ev, pv)
	cpi := series.PerformanceIndex(ev, ac)

	// TCPI is undefined once the budget is exhausted.
	tcpi := Figure{}
	if ac < budget {
		tcpi = Num(stats.Round((budget-ev)/(budget-ac), 3))
	}

	eac := budget
	if cpi > 0 {
		eac = ac + (budget-ev)/cpi
	}
	etc := eac - ac
	vac := budget - eac

	return EVMMetrics{
		PlannedValue:     stats.Round(pv, 2),
		EarnedValue:      stats.Round(ev, 2),
		ActualCost:       stats.Round(ac, 2),
		CostVariance:     stats.Round(ev-ac, 2),
		ScheduleVariance: stats.Round(ev-pv, 2),
		SPI:              stats.Round(spi, 3),
		CPI:              stats.Round(cpi, 3),
		TCPI:             tcpi,
		EAC:              stats.Round(eac, 2),
		ETC:              stats.Round(etc, 2),
		VAC:              stats.Round(vac, 2),
	}, true
}
