package visuals

import (
	"fmt"
	"math"
	"strings"

	"site-health/internal/series"
)

// ProgressChart creates a Mermaid xychart-beta comparing planned and actual completion.
func ProgressChart(c *series.Context) string {
	sched := c.Schedule()
	if sched.IsEmpty() {
		return ""
	}

	var labels, planned, actual []string
	for _, r := range sched.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
		planned = append(planned, fmt.Sprintf("%.1f", r.PlannedProgressPct))
		actual = append(actual, fmt.Sprintf("%.1f", r.ActualProgressPct))
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Planned vs Actual Progress\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Complete (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(planned, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(actual, ", ")))
	return sb.String()
}

// PerformanceIndexChart plots SPI and CPI against the 1.0 break-even line.
func PerformanceIndexChart(c *series.Context) string {
	spi := c.Schedule().Values(func(r series.ScheduleRecord) float64 { return r.SPI })
	cpi := c.Cost().Values(func(r series.CostRecord) float64 { return r.CPI })
	n := max(len(spi), len(cpi))
	if n == 0 {
		return ""
	}

	lo, hi := 1.0, 1.0
	for _, v := range append(append([]float64{}, spi...), cpi...) {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo = math.Max(0, math.Floor(lo*10)/10-0.1)
	hi = math.Ceil(hi*10)/10 + 0.1

	var labels, baseline []string
	for i := 0; i < n; i++ {
		labels = append(labels, fmt.Sprintf("%d", i+1))
		baseline = append(baseline, "1.00")
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Performance Indices (SPI / CPI)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Index\" %.1f --> %.1f\n", lo, hi))
	if len(spi) > 0 {
		sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(spi, "%.2f")))
	}
	if len(cpi) > 0 {
		sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(cpi, "%.2f")))
	}
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(baseline, ", ")))
	return sb.String()
}

// CostChart compares cumulative budget and spend, in thousands.
func CostChart(c *series.Context) string {
	cost := c.Cost()
	if cost.IsEmpty() {
		return ""
	}

	var labels, budget, spent []string
	maxVal := 0.0
	for _, r := range cost.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
		budget = append(budget, fmt.Sprintf("%.0f", r.CumulativeBudget/1000))
		spent = append(spent, fmt.Sprintf("%.0f", r.CumulativeSpent/1000))
		maxVal = math.Max(maxVal, math.Max(r.CumulativeBudget, r.CumulativeSpent)/1000)
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Cumulative Budget vs Spend\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Cost (thousands)\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.1)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(budget, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(spent, ", ")))
	return sb.String()
}

// NearMissChart creates a bar chart of weekly near-miss counts.
func NearMissChart(c *series.Context) string {
	safety := c.Safety()
	if safety.IsEmpty() {
		return ""
	}

	var labels, values []string
	maxVal := 0
	for _, r := range safety.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
		values = append(values, fmt.Sprintf("%d", r.NearMissCount))
		maxVal = max(maxVal, r.NearMissCount)
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Near Misses per Week\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Near misses\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// LaborEfficiencyChart plots labor hours per unit of work.
func LaborEfficiencyChart(c *series.Context) string {
	prod := c.Productivity()
	if prod.IsEmpty() {
		return ""
	}

	var labels []string
	maxVal := 0.0
	for _, r := range prod.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
		maxVal = math.Max(maxVal, r.LaborHoursPerUnit)
	}
	hpu := prod.Values(func(r series.ProductivityRecord) float64 { return r.LaborHoursPerUnit })

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Labor Hours per Unit of Work\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Hours per unit\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(hpu, "%.2f")))
	return sb.String()
}

// ResourceChart plots equipment utilization and material waste, both as percentages.
func ResourceChart(c *series.Context) string {
	prod := c.Productivity()
	if prod.IsEmpty() {
		return ""
	}

	var labels []string
	for _, r := range prod.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
	}
	util := prod.Values(func(r series.ProductivityRecord) float64 { return r.EquipmentUtilizationPct })
	waste := prod.Values(func(r series.ProductivityRecord) float64 { return r.MaterialWastePct })

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Equipment Utilization and Material Waste (%)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Percent\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(util, "%.1f")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(waste, "%.1f")))
	return sb.String()
}

// PassRateChart plots the weekly inspection pass rate.
func PassRateChart(c *series.Context) string {
	quality := c.Quality()
	if quality.IsEmpty() {
		return ""
	}

	var labels []string
	for _, r := range quality.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
	}
	rates := quality.Values(func(r series.QualityRecord) float64 { return r.InspectionPassRatePct })

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Inspection Pass Rate (%)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Pass rate (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", joinFloats(rates, "%.1f")))
	return sb.String()
}

// ReworkChart creates a bar chart of weekly rework cost, in thousands.
func ReworkChart(c *series.Context) string {
	quality := c.Quality()
	if quality.IsEmpty() {
		return ""
	}

	var labels, values []string
	maxVal := 0.0
	for _, r := range quality.Records() {
		labels = append(labels, fmt.Sprintf("%d", r.Week))
		values = append(values, fmt.Sprintf("%.1f", r.ReworkCost/1000))
		maxVal = math.Max(maxVal, r.ReworkCost/1000)
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Weekly Rework Cost\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Week\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Cost (thousands)\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

func joinFloats(values []float64, format string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf(format, v)
	}
	return strings.Join(parts, ", ")
}
