package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"site-health/internal/dataset"
	"site-health/internal/logging"
	"site-health/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundle(weeks int) dataset.Bundle {
	var b dataset.Bundle
	for i := 0; i < weeks; i++ {
		week := i + 1
		d := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
		progress := float64(week) * 3
		b.Schedule = append(b.Schedule, series.ScheduleRecord{
			Week: week, Date: d, PlannedProgressPct: progress, ActualProgressPct: progress * 0.9,
			PlannedValue: progress * 50000, EarnedValue: progress * 45000, SPI: 0.9,
		})
		b.Cost = append(b.Cost, series.CostRecord{
			Week: week, Date: d, CumulativeSpent: progress * 50000, CPI: 0.9,
		})
		b.Productivity = append(b.Productivity, series.ProductivityRecord{
			Week: week, Date: d, LaborHours: 2000, WorkUnits: 50, LaborHoursPerUnit: 40,
			EquipmentUtilizationPct: 70, MaterialWastePct: 8,
		})
		b.Safety = append(b.Safety, series.SafetyRecord{Week: week, Date: d, NearMissCount: 2, DaysSinceLastIncident: 10 + 7*i})
		b.Quality = append(b.Quality, series.QualityRecord{
			Week: week, Date: d, InspectionsConducted: 8, InspectionsPassed: 6, InspectionPassRatePct: 75, PunchListItems: 18,
		})
	}
	return b
}

// execute runs the root command with fresh flag state and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOGS_FOLDER", t.TempDir())

	dataDir, reportFormat, reportOut, reportOpen = "", "text", "", false
	summaryJSON, kpiJSON = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.Save(dir, dataset.FormatCSV, bundle(5)))

	out, err := execute(t, "validate", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "csv dataset in "+dir+" is valid (5 weeks)")
}

func TestValidateCommand_Problems(t *testing.T) {
	dir := t.TempDir()
	b := bundle(4)
	b.Quality[1].InspectionsPassed = 12
	require.NoError(t, dataset.Save(dir, dataset.FormatJSON, b))

	out, err := execute(t, "validate", "--data", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problems")
	assert.Contains(t, out, "quality week 2: 12 inspections passed out of 8 conducted")
}

func TestReportCommand_JSONToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.Save(dir, dataset.FormatParquet, bundle(6)))
	outFile := filepath.Join(t.TempDir(), "report.json")

	stdout, err := execute(t, "report", "--data", dir, "--format", "json", "--out", outFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Contains(t, report, "executive_summary")
	assert.Contains(t, report, "kpi_status")
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "report", "--data", t.TempDir(), "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSummaryAndKPICommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.Save(dir, dataset.FormatCSV, bundle(6)))

	out, err := execute(t, "summary", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Primary Risks")
	assert.NotContains(t, out, "Earned Value")

	out, err = execute(t, "kpi", "--data", dir, "--json")
	require.NoError(t, err)
	var kpis []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &kpis))
	assert.Len(t, kpis, 10)
}

func TestSummaryCommand_ProjectDatesAndLogFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.Save(dir, dataset.FormatCSV, bundle(6)))
	t.Setenv("PROJECT_END_DATE", "2024-11-29")

	out, err := execute(t, "summary", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Planned Completion")
	assert.Contains(t, out, "2024-11-29")

	_, err = os.Stat(filepath.Join(os.Getenv("LOGS_FOLDER"), logging.FileName))
	assert.NoError(t, err, "expected the log file in the configured LOGS_FOLDER")
}

func TestLoadProject_MissingDataset(t *testing.T) {
	_, err := execute(t, "summary", "--data", filepath.Join(t.TempDir(), "nothing-here"))
	assert.Error(t, err)
}
