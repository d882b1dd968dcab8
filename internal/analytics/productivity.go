package analytics

import (
	"fmt"

	"site-health/internal/series"
	"site-health/internal/stats"
)

// Benchmark compares the latest week against the all-time average.
type Benchmark struct {
	Current   float64 `json:"current"`
	Average   float64 `json:"average"`
	VsAverage string  `json:"vs_average"` // signed percentage, e.g. "+12.4%"
}

// ProductivityBenchmarks holds the three tracked productivity measures.
type ProductivityBenchmarks struct {
	LaborHoursPerUnit       Benchmark `json:"labor_hours_per_unit"`
	EquipmentUtilizationPct Benchmark `json:"equipment_utilization_pct"`
	MaterialWastePct        Benchmark `json:"material_waste_pct"`
}

// BenchmarkProductivity compares the latest productivity week with its full history.
// It reports false when there are no productivity records.
func BenchmarkProductivity(c *series.Context) (ProductivityBenchmarks, bool) {
	prod := c.Productivity()
	if prod.IsEmpty() {
		return ProductivityBenchmarks{}, false
	}

	return ProductivityBenchmarks{
		LaborHoursPerUnit: benchmark(prod.Values(func(r series.ProductivityRecord) float64 {
			return r.LaborHoursPerUnit
		}), 2),
		EquipmentUtilizationPct: benchmark(prod.Values(func(r series.ProductivityRecord) float64 {
			return r.EquipmentUtilizationPct
		}), 1),
		MaterialWastePct: benchmark(prod.Values(func(r series.ProductivityRecord) float64 {
			return r.MaterialWastePct
		}), 1),
	}, true
}

func benchmark(values []float64, places int) Benchmark {
	current := values[len(values)-1]
	avg := stats.Mean(values)
	return Benchmark{
		Current:   stats.Round(current, places),
		Average:   stats.Round(avg, places),
		VsAverage: FormatDeviation(current, avg),
	}
}

// FormatDeviation renders (current-avg)/avg as a signed one-decimal percentage.
// A zero average has no defined deviation.
func FormatDeviation(current, avg float64) string {
	if avg == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%+.1f%%", (current-avg)/avg*100)
}
