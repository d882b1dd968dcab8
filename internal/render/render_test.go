package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"site-health/internal/analytics"
	"site-health/internal/series"
	"site-health/internal/visuals"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleContext() *series.Context {
	var (
		schedule []series.ScheduleRecord
		cost     []series.CostRecord
	)
	for i := 0; i < 4; i++ {
		week := i + 1
		d := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
		pv := float64(week) * 100000
		schedule = append(schedule, series.ScheduleRecord{
			Week: week, Date: d, PlannedProgressPct: float64(week) * 2, ActualProgressPct: float64(week) * 2,
			PlannedValue: pv, EarnedValue: pv, SPI: 1,
		})
		cost = append(cost, series.CostRecord{Week: week, Date: d, CumulativeSpent: pv, CPI: 1})
	}
	return series.NewContext(schedule, cost, nil, nil, nil)
}

func sampleReport(t *testing.T, c *series.Context) analytics.Report {
	t.Helper()
	opts := analytics.Options{TotalBudget: 5000000, Currency: "USD", Thresholds: analytics.DefaultThresholds()}
	r, err := analytics.BuildReport(context.Background(), c, opts)
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "TEXT", "markdown", "html"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestReport_JSON(t *testing.T) {
	c := sampleContext()
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, FormatJSON, sampleReport(t, c), c, visuals.Meta{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "executive_summary")
	assert.Contains(t, decoded, "earned_value_metrics")
	assert.NotContains(t, decoded, "productivity_benchmarks", "absent productivity data is omitted")

	summary := decoded["executive_summary"].(map[string]any)
	assert.Equal(t, "$5,000,000", summary["estimated_final_cost"])
	assert.Equal(t, 1.0, summary["current_cpi"])
}

func TestReport_Text(t *testing.T) {
	c := sampleContext()
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, FormatText, sampleReport(t, c), c, visuals.Meta{ProjectName: "Depot"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Depot: Project Health Report\n"))
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Estimated Final Cost")
	assert.Contains(t, out, "$5,000,000")
	assert.Contains(t, out, "Risk Analysis")
	assert.NotContains(t, out, "xychart-beta", "charts are not rendered as text")
}

func TestReport_MarkdownAndHTML(t *testing.T) {
	c := sampleContext()
	report := sampleReport(t, c)

	var md bytes.Buffer
	require.NoError(t, Report(&md, FormatMarkdown, report, c, visuals.Meta{ProjectName: "Depot"}))
	assert.Contains(t, md.String(), "# Depot: Project Health Report")
	assert.Contains(t, md.String(), "```mermaid")

	var page bytes.Buffer
	require.NoError(t, Report(&page, FormatHTML, report, c, visuals.Meta{ProjectName: "Depot"}))
	assert.Contains(t, page.String(), "<!DOCTYPE html>")
}

func TestReport_UnknownFormat(t *testing.T) {
	c := sampleContext()
	err := Report(&bytes.Buffer{}, Format("pdf"), sampleReport(t, c), c, visuals.Meta{})
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	assert.NotEqual(t, "danger", Status("danger"), "status labels are colored")
	assert.Contains(t, Status("danger"), "danger")
	assert.Equal(t, "Cost Variance", Status("Cost Variance"))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, visuals.Table{
		Headers: []string{"KPI", "Value", "Status"},
		Rows:    [][]string{{"TRIR", "1.25", "good"}, {"Punch List Items", "31", "warning"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "TRIR")
	assert.Contains(t, out, "Punch List Items")
	assert.Contains(t, out, "warning")
}
