package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"site-health/internal/dataset"
	"site-health/internal/series"
	"site-health/internal/stats"
)

// Scenario names accepted by Generate.
const (
	ScenarioBaseline   = "baseline"
	ScenarioDistressed = "distressed"
	ScenarioHealthy    = "healthy"
)

// referenceBudget is the project size the weekly spend parameters are calibrated for.
const referenceBudget = 5000000.0

type GeneratorConfig struct {
	Scenario string
	Start    time.Time // project start
	End      time.Time // planned completion
	AsOf     time.Time // last reported week
	Budget   float64
	Seed     int64
}

// profile holds the sampling parameters of one scenario.
type profile struct {
	progressMean, progressSD float64 // actual/planned progress factor
	overrunMean, overrunSD   float64 // weekly actual/budget factor
	unitsMean, unitsSD       float64
	utilMean, utilSD         float64
	wasteMean, wasteSD       float64
	incidentP                float64
	nearMissLambda           float64
	inspectionLambda         float64
	passP                    float64
	punchLambda              float64
	reworkMean, reworkSD     float64
}

var profiles = map[string]profile{
	ScenarioBaseline: {
		progressMean: 0.95, progressSD: 0.1,
		overrunMean: 1.05, overrunSD: 0.15,
		unitsMean: 50, unitsSD: 10,
		utilMean: 75, utilSD: 15,
		wasteMean: 8, wasteSD: 3,
		incidentP: 0.05, nearMissLambda: 2,
		inspectionLambda: 8, passP: 0.85,
		punchLambda: 15,
		reworkMean:  8000, reworkSD: 3000,
	},
	ScenarioDistressed: {
		progressMean: 0.85, progressSD: 0.08,
		overrunMean: 1.2, overrunSD: 0.15,
		unitsMean: 40, unitsSD: 8,
		utilMean: 60, utilSD: 15,
		wasteMean: 11, wasteSD: 3,
		incidentP: 0.12, nearMissLambda: 4.5,
		inspectionLambda: 8, passP: 0.7,
		punchLambda: 25,
		reworkMean:  14000, reworkSD: 4000,
	},
	ScenarioHealthy: {
		progressMean: 1.0, progressSD: 0.04,
		overrunMean: 0.98, overrunSD: 0.05,
		unitsMean: 55, unitsSD: 6,
		utilMean: 85, utilSD: 6,
		wasteMean: 4, wasteSD: 1,
		incidentP: 0.01, nearMissLambda: 1,
		inspectionLambda: 8, passP: 0.95,
		punchLambda: 8,
		reworkMean:  3000, reworkSD: 1000,
	},
}

// Scenarios lists the known scenario names.
func Scenarios() []string {
	return []string{ScenarioBaseline, ScenarioDistressed, ScenarioHealthy}
}

// DefaultConfig mirrors the reference project: a $5M build running
// 2024-01-15 to 2024-12-20, reported up to 2024-10-20.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Scenario: ScenarioBaseline,
		Start:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		AsOf:     time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC),
		Budget:   referenceBudget,
		Seed:     42,
	}
}

// Weeks returns the week-ending Sundays from start through end inclusive.
func Weeks(start, end time.Time) []time.Time {
	first := start.AddDate(0, 0, (7-int(start.Weekday()))%7)
	var weeks []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, 7) {
		weeks = append(weeks, d)
	}
	return weeks
}

// Generate fabricates aligned weekly records. The same config always yields the same bundle.
func Generate(cfg GeneratorConfig) (dataset.Bundle, error) {
	p, ok := profiles[cfg.Scenario]
	if !ok {
		return dataset.Bundle{}, fmt.Errorf("unknown scenario %q (want baseline, distressed or healthy)", cfg.Scenario)
	}
	if cfg.Budget <= 0 {
		return dataset.Bundle{}, fmt.Errorf("budget must be positive, got %v", cfg.Budget)
	}
	if !cfg.End.After(cfg.Start) {
		return dataset.Bundle{}, fmt.Errorf("end %s is not after start %s", cfg.End.Format(time.DateOnly), cfg.Start.Format(time.DateOnly))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	planWeeks := len(Weeks(cfg.Start, cfg.End))
	if planWeeks == 0 {
		planWeeks = 1
	}
	durationDays := cfg.End.Sub(cfg.Start).Hours() / 24
	weeklyBudgetMean := 150000 * cfg.Budget / referenceBudget
	weeklyBudgetSD := 20000 * cfg.Budget / referenceBudget

	var (
		b                 dataset.Bundle
		actualProgress    float64
		cumulativeBudget  float64
		cumulativeSpent   float64
		daysSinceIncident int
	)

	for i, date := range Weeks(cfg.Start, cfg.AsOf) {
		week := i + 1

		// Schedule
		planned := math.Min(float64(week)*100/float64(planWeeks), 100)
		sampled := stats.Clamp(planned*normal(rng, p.progressMean, p.progressSD), 0, 100)
		actualProgress = math.Max(actualProgress, sampled)

		pv := planned * cfg.Budget / 100
		ev := actualProgress * cfg.Budget / 100
		b.Schedule = append(b.Schedule, series.ScheduleRecord{
			Week:               week,
			Date:               date,
			PlannedProgressPct: stats.Round(planned, 2),
			ActualProgressPct:  stats.Round(actualProgress, 2),
			PlannedValue:       stats.Round(pv, 2),
			EarnedValue:        stats.Round(ev, 2),
			SPI:                stats.Round(series.PerformanceIndex(ev, pv), 3),
			DaysVariance:       stats.Round((actualProgress-planned)*durationDays/100, 1),
		})

		// Cost
		weeklyBudget := math.Max(0, normal(rng, weeklyBudgetMean, weeklyBudgetSD))
		weeklyActual := math.Max(0, weeklyBudget*normal(rng, p.overrunMean, p.overrunSD))
		cumulativeBudget += weeklyBudget
		cumulativeSpent += weeklyActual

		cpi := series.PerformanceIndex(ev, cumulativeSpent)
		forecast := cfg.Budget
		if cpi > 0 {
			forecast = cfg.Budget / cpi
		}
		b.Cost = append(b.Cost, series.CostRecord{
			Week:             week,
			Date:             date,
			WeeklyBudget:     stats.Round(weeklyBudget, 2),
			WeeklyActual:     stats.Round(weeklyActual, 2),
			CumulativeBudget: stats.Round(cumulativeBudget, 2),
			CumulativeSpent:  stats.Round(cumulativeSpent, 2),
			CPI:              stats.Round(cpi, 3),
			ForecastedCost:   stats.Round(forecast, 2),
			CostVariance:     stats.Round(cumulativeBudget-cumulativeSpent, 2),
		})

		// Productivity
		hours := math.Round(math.Max(0, normal(rng, 2000, 300)))
		units := stats.Round(math.Max(0, normal(rng, p.unitsMean, p.unitsSD)), 1)
		hpu := 40.0
		if units > 0 {
			hpu = hours / units
		}
		b.Productivity = append(b.Productivity, series.ProductivityRecord{
			Week:                    week,
			Date:                    date,
			LaborHours:              hours,
			WorkUnits:               units,
			LaborHoursPerUnit:       stats.Round(hpu, 2),
			EquipmentUtilizationPct: stats.Round(stats.Clamp(normal(rng, p.utilMean, p.utilSD), 0, 100), 1),
			MaterialWastePct:        stats.Round(math.Max(0, normal(rng, p.wasteMean, p.wasteSD)), 2),
		})

		// Safety
		incident := rng.Float64() < p.incidentP
		switch {
		case incident:
			daysSinceIncident = 0
		case i == 0:
			daysSinceIncident = 45
		default:
			daysSinceIncident += int(date.Sub(b.Safety[i-1].Date).Hours() / 24)
		}
		b.Safety = append(b.Safety, series.SafetyRecord{
			Week:                  week,
			Date:                  date,
			IncidentOccurred:      incident,
			NearMissCount:         poisson(rng, p.nearMissLambda),
			DaysSinceLastIncident: daysSinceIncident,
		})

		// Quality
		conducted := poisson(rng, p.inspectionLambda)
		passed := binomial(rng, conducted, p.passP)
		passRate := 0.0
		if conducted > 0 {
			passRate = float64(passed) / float64(conducted) * 100
		}
		b.Quality = append(b.Quality, series.QualityRecord{
			Week:                  week,
			Date:                  date,
			InspectionsConducted:  conducted,
			InspectionsPassed:     passed,
			InspectionPassRatePct: stats.Round(passRate, 1),
			PunchListItems:        poisson(rng, p.punchLambda),
			ReworkCost:            stats.Round(math.Max(0, normal(rng, p.reworkMean, p.reworkSD)), 2),
		})
	}

	for i, rate := range series.CumulativeTRIR(b.Safety, b.Productivity) {
		b.Safety[i].TRIR = stats.Round(rate, 2)
	}

	return b, nil
}

func normal(rng *rand.Rand, mean, sd float64) float64 {
	return mean + sd*rng.NormFloat64()
}

// poisson uses Knuth's multiplication method, fine for the small rates sampled here.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	for prod := rng.Float64(); prod > limit; prod *= rng.Float64() {
		k++
	}
	return k
}

func binomial(rng *rand.Rand, n int, p float64) int {
	k := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			k++
		}
	}
	return k
}
