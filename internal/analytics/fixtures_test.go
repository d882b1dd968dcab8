package analytics

import (
	"time"

	"site-health/internal/series"
)

// week is a flattened fixture row covering all five series for one week.
type week struct {
	actualPct float64
	pv, ev    float64
	spi       float64
	ac, cpi   float64
	hpu       float64
	util      float64
	waste     float64
	nearMiss  int
	daysSince int
	trir      float64
	passRate  float64
	rework    float64
	punchList int
}

func weekDate(i int) time.Time {
	return time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
}

// steadyWeeks returns n uneventful weeks: on plan, on budget, safe and clean.
func steadyWeeks(n int) []week {
	weeks := make([]week, n)
	for i := range weeks {
		progress := float64(i+1) * 2
		weeks[i] = week{
			actualPct: progress,
			pv:        progress * 50000,
			ev:        progress * 50000,
			spi:       1.0,
			ac:        progress * 50000,
			cpi:       1.0,
			hpu:       40,
			util:      80,
			waste:     5,
			nearMiss:  1,
			daysSince: 90 + 7*i,
			trir:      0,
			passRate:  100,
			rework:    1000,
			punchList: 10,
		}
	}
	return weeks
}

func contextFrom(weeks []week) *series.Context {
	var (
		schedule     []series.ScheduleRecord
		cost         []series.CostRecord
		productivity []series.ProductivityRecord
		safety       []series.SafetyRecord
		quality      []series.QualityRecord
	)
	for i, w := range weeks {
		d := weekDate(i)
		schedule = append(schedule, series.ScheduleRecord{
			Week: i + 1, Date: d,
			PlannedProgressPct: w.actualPct, ActualProgressPct: w.actualPct,
			PlannedValue: w.pv, EarnedValue: w.ev, SPI: w.spi,
		})
		cost = append(cost, series.CostRecord{
			Week: i + 1, Date: d,
			CumulativeSpent: w.ac, CumulativeBudget: w.pv, CPI: w.cpi,
			CostVariance: w.pv - w.ac,
		})
		productivity = append(productivity, series.ProductivityRecord{
			Week: i + 1, Date: d,
			LaborHours: 2000, WorkUnits: 2000 / w.hpu, LaborHoursPerUnit: w.hpu,
			EquipmentUtilizationPct: w.util, MaterialWastePct: w.waste,
		})
		safety = append(safety, series.SafetyRecord{
			Week: i + 1, Date: d,
			NearMissCount: w.nearMiss, DaysSinceLastIncident: w.daysSince, TRIR: w.trir,
		})
		quality = append(quality, series.QualityRecord{
			Week: i + 1, Date: d,
			InspectionsConducted: 10, InspectionsPassed: int(w.passRate / 10),
			InspectionPassRatePct: w.passRate, PunchListItems: w.punchList, ReworkCost: w.rework,
		})
	}
	return series.NewContext(schedule, cost, productivity, safety, quality)
}

func emptyContext() *series.Context {
	return series.NewContext(nil, nil, nil, nil, nil)
}
