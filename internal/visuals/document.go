// Package visuals lays out an analytics report as a document of tables, lists and
// Mermaid charts, and renders that document as Markdown or a standalone HTML page.
package visuals

import (
	"fmt"
	"time"

	"site-health/internal/analytics"
	"site-health/internal/series"
)

// Meta identifies the project a document describes. Zero dates are left out.
type Meta struct {
	ProjectName string
	Currency    string
	StartDate   time.Time
	PlannedEnd  time.Time
}

// Table is a header row plus body rows of preformatted cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Section is one titled block of a document. Any combination of parts may be set.
type Section struct {
	Heading string
	Table   *Table
	Items   []string
	Chart   string
}

// Document is a rendering-neutral report layout.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// BuildDocument lays out the report. Charts are drawn from the same context the report came from.
func BuildDocument(report analytics.Report, c *series.Context, meta Meta) Document {
	name := meta.ProjectName
	if name == "" {
		name = "Construction Project"
	}

	doc := Document{
		Title:    name + ": Project Health Report",
		Subtitle: asOf(c, meta.StartDate),
	}

	doc.Sections = append(doc.Sections, summarySection(report.ExecutiveSummary, meta.PlannedEnd))
	doc.Sections = append(doc.Sections, Section{Heading: "Primary Risks", Items: report.ExecutiveSummary.PrimaryRisks})
	doc.Sections = append(doc.Sections, healthSection(report.HealthBreakdown))

	if report.EarnedValue != nil {
		doc.Sections = append(doc.Sections, earnedValueSection(*report.EarnedValue, meta.Currency))
	}
	if report.ProductivityBenchmarks != nil {
		doc.Sections = append(doc.Sections, productivitySection(*report.ProductivityBenchmarks))
	}
	if len(report.KPIs) > 0 {
		doc.Sections = append(doc.Sections, kpiSection(report.KPIs))
	}

	charts := []struct {
		heading string
		body    string
	}{
		{"Schedule Progress", ProgressChart(c)},
		{"Performance Indices", PerformanceIndexChart(c)},
		{"Cost Tracking", CostChart(c)},
		{"Labor Efficiency", LaborEfficiencyChart(c)},
		{"Equipment and Materials", ResourceChart(c)},
		{"Safety", NearMissChart(c)},
		{"Inspection Quality", PassRateChart(c)},
		{"Rework", ReworkChart(c)},
	}
	for _, ch := range charts {
		if ch.body != "" {
			doc.Sections = append(doc.Sections, Section{Heading: ch.heading, Chart: ch.body})
		}
	}

	doc.Sections = append(doc.Sections, Section{Heading: "Risk Analysis", Items: report.RiskAnalysis})
	return doc
}

func asOf(c *series.Context, start time.Time) string {
	latest, ok := c.Schedule().Latest()
	if !ok {
		return "No weekly data available"
	}
	subtitle := fmt.Sprintf("As of %s (week %d)", latest.Date.Format(time.DateOnly), latest.Week)
	if !start.IsZero() {
		subtitle += ", started " + start.Format(time.DateOnly)
	}
	return subtitle
}

func summarySection(s analytics.ExecutiveSummary, plannedEnd time.Time) Section {
	// No forecast is attempted on a short history.
	completion := analytics.NotAvailable
	if s.PredictedCompletion != nil {
		completion = *s.PredictedCompletion
	}

	rows := [][]string{
		{"Overall Health Score", s.OverallHealthScore},
		{"Project Status", s.ProjectStatus},
		{"Predicted Completion", completion},
	}
	if !plannedEnd.IsZero() {
		rows = append(rows, []string{"Planned Completion", plannedEnd.Format(time.DateOnly)})
	}
	rows = append(rows,
		[]string{"Cost Forecast Confidence", s.CostForecastConfidence},
		[]string{"Current SPI", s.CurrentSPI.String()},
		[]string{"Current CPI", s.CurrentCPI.String()},
		[]string{"Estimated Final Cost", s.EstimatedFinalCost},
	)

	return Section{
		Heading: "Executive Summary",
		Table:   &Table{Headers: []string{"Metric", "Value"}, Rows: rows},
	}
}

func healthSection(h analytics.HealthBreakdown) Section {
	row := func(name string, v float64) []string {
		return []string{name, fmt.Sprintf("%.1f", v)}
	}
	return Section{
		Heading: "Health Breakdown",
		Table: &Table{
			Headers: []string{"Component", "Score"},
			Rows: [][]string{
				row("Schedule", h.Schedule),
				row("Cost", h.Cost),
				row("Safety", h.Safety),
				row("Quality", h.Quality),
				row("Total", h.Total),
			},
		},
	}
}

func earnedValueSection(m analytics.EVMMetrics, currency string) Section {
	money := func(v float64) string { return analytics.FormatCurrency(v, currency) }
	return Section{
		Heading: "Earned Value",
		Table: &Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Planned Value (PV)", money(m.PlannedValue)},
				{"Earned Value (EV)", money(m.EarnedValue)},
				{"Actual Cost (AC)", money(m.ActualCost)},
				{"Cost Variance (CV)", money(m.CostVariance)},
				{"Schedule Variance (SV)", money(m.ScheduleVariance)},
				{"SPI", fmt.Sprintf("%.3f", m.SPI)},
				{"CPI", fmt.Sprintf("%.3f", m.CPI)},
				{"TCPI", m.TCPI.String()},
				{"Estimate at Completion (EAC)", money(m.EAC)},
				{"Estimate to Complete (ETC)", money(m.ETC)},
				{"Variance at Completion (VAC)", money(m.VAC)},
			},
		},
	}
}

func productivitySection(p analytics.ProductivityBenchmarks) Section {
	row := func(name string, b analytics.Benchmark, format string) []string {
		return []string{name, fmt.Sprintf(format, b.Current), fmt.Sprintf(format, b.Average), b.VsAverage}
	}
	return Section{
		Heading: "Productivity Benchmarks",
		Table: &Table{
			Headers: []string{"Metric", "Current", "Average", "vs Average"},
			Rows: [][]string{
				row("Labor Hours per Unit", p.LaborHoursPerUnit, "%.2f"),
				row("Equipment Utilization (%)", p.EquipmentUtilizationPct, "%.1f"),
				row("Material Waste (%)", p.MaterialWastePct, "%.1f"),
			},
		},
	}
}

func kpiSection(kpis []analytics.KPI) Section {
	t := &Table{Headers: []string{"KPI", "Value", "Status"}}
	for _, k := range kpis {
		t.Rows = append(t.Rows, []string{k.Name, k.Display, string(k.Status)})
	}
	return Section{Heading: "KPI Status", Table: t}
}
