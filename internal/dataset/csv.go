package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"site-health/internal/series"
)

const csvDateLayout = "2006-01-02"

// Layouts accepted for the Date column, most common first.
var csvDateLayouts = []string{csvDateLayout, "2006-01-02 15:04:05", time.RFC3339}

// column binds one CSV header to a record field.
type column[T any] struct {
	header string
	format func(r *T) string
	parse  func(r *T, raw string) error
}

func dateColumn[T any](field func(r *T) *time.Time) column[T] {
	return column[T]{
		header: "Date",
		format: func(r *T) string { return field(r).Format(csvDateLayout) },
		parse: func(r *T, raw string) error {
			for _, layout := range csvDateLayouts {
				if d, err := time.Parse(layout, raw); err == nil {
					*field(r) = d
					return nil
				}
			}
			return fmt.Errorf("invalid date %q", raw)
		},
	}
}

func intColumn[T any](header string, field func(r *T) *int) column[T] {
	return column[T]{
		header: header,
		format: func(r *T) string { return strconv.Itoa(*field(r)) },
		parse: func(r *T, raw string) error {
			// pandas writes integer columns with missing values as floats ("12.0").
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f != float64(int(f)) {
				return fmt.Errorf("invalid integer %q", raw)
			}
			*field(r) = int(f)
			return nil
		},
	}
}

func floatColumn[T any](header string, field func(r *T) *float64) column[T] {
	return column[T]{
		header: header,
		format: func(r *T) string { return strconv.FormatFloat(*field(r), 'f', -1, 64) },
		parse: func(r *T, raw string) error {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", raw)
			}
			*field(r) = f
			return nil
		},
	}
}

func boolColumn[T any](header string, field func(r *T) *bool) column[T] {
	return column[T]{
		header: header,
		format: func(r *T) string {
			if *field(r) {
				return "True"
			}
			return "False"
		},
		parse: func(r *T, raw string) error {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", raw)
			}
			*field(r) = b
			return nil
		},
	}
}

var scheduleColumns = []column[series.ScheduleRecord]{
	dateColumn(func(r *series.ScheduleRecord) *time.Time { return &r.Date }),
	intColumn("Week", func(r *series.ScheduleRecord) *int { return &r.Week }),
	floatColumn("Planned_Progress_Pct", func(r *series.ScheduleRecord) *float64 { return &r.PlannedProgressPct }),
	floatColumn("Actual_Progress_Pct", func(r *series.ScheduleRecord) *float64 { return &r.ActualProgressPct }),
	floatColumn("Planned_Value", func(r *series.ScheduleRecord) *float64 { return &r.PlannedValue }),
	floatColumn("Earned_Value", func(r *series.ScheduleRecord) *float64 { return &r.EarnedValue }),
	floatColumn("SPI", func(r *series.ScheduleRecord) *float64 { return &r.SPI }),
	floatColumn("Days_Variance", func(r *series.ScheduleRecord) *float64 { return &r.DaysVariance }),
}

var costColumns = []column[series.CostRecord]{
	dateColumn(func(r *series.CostRecord) *time.Time { return &r.Date }),
	intColumn("Week", func(r *series.CostRecord) *int { return &r.Week }),
	floatColumn("Weekly_Budget", func(r *series.CostRecord) *float64 { return &r.WeeklyBudget }),
	floatColumn("Weekly_Actual", func(r *series.CostRecord) *float64 { return &r.WeeklyActual }),
	floatColumn("Cumulative_Budget", func(r *series.CostRecord) *float64 { return &r.CumulativeBudget }),
	floatColumn("Cumulative_Spent", func(r *series.CostRecord) *float64 { return &r.CumulativeSpent }),
	floatColumn("CPI", func(r *series.CostRecord) *float64 { return &r.CPI }),
	floatColumn("Forecasted_Cost", func(r *series.CostRecord) *float64 { return &r.ForecastedCost }),
	floatColumn("Cost_Variance", func(r *series.CostRecord) *float64 { return &r.CostVariance }),
}

var productivityColumns = []column[series.ProductivityRecord]{
	dateColumn(func(r *series.ProductivityRecord) *time.Time { return &r.Date }),
	intColumn("Week", func(r *series.ProductivityRecord) *int { return &r.Week }),
	floatColumn("Labor_Hours", func(r *series.ProductivityRecord) *float64 { return &r.LaborHours }),
	floatColumn("Work_Units", func(r *series.ProductivityRecord) *float64 { return &r.WorkUnits }),
	floatColumn("Labor_Hours_Per_Unit", func(r *series.ProductivityRecord) *float64 { return &r.LaborHoursPerUnit }),
	floatColumn("Equipment_Utilization_Pct", func(r *series.ProductivityRecord) *float64 { return &r.EquipmentUtilizationPct }),
	floatColumn("Material_Waste_Pct", func(r *series.ProductivityRecord) *float64 { return &r.MaterialWastePct }),
}

var safetyColumns = []column[series.SafetyRecord]{
	dateColumn(func(r *series.SafetyRecord) *time.Time { return &r.Date }),
	intColumn("Week", func(r *series.SafetyRecord) *int { return &r.Week }),
	boolColumn("Incident_Occurred", func(r *series.SafetyRecord) *bool { return &r.IncidentOccurred }),
	intColumn("Near_Miss_Count", func(r *series.SafetyRecord) *int { return &r.NearMissCount }),
	intColumn("Days_Since_Last_Incident", func(r *series.SafetyRecord) *int { return &r.DaysSinceLastIncident }),
	floatColumn("TRIR", func(r *series.SafetyRecord) *float64 { return &r.TRIR }),
}

var qualityColumns = []column[series.QualityRecord]{
	dateColumn(func(r *series.QualityRecord) *time.Time { return &r.Date }),
	intColumn("Week", func(r *series.QualityRecord) *int { return &r.Week }),
	intColumn("Inspections_Conducted", func(r *series.QualityRecord) *int { return &r.InspectionsConducted }),
	intColumn("Inspections_Passed", func(r *series.QualityRecord) *int { return &r.InspectionsPassed }),
	floatColumn("Inspection_Pass_Rate_Pct", func(r *series.QualityRecord) *float64 { return &r.InspectionPassRatePct }),
	intColumn("Punch_List_Items", func(r *series.QualityRecord) *int { return &r.PunchListItems }),
	floatColumn("Rework_Cost", func(r *series.QualityRecord) *float64 { return &r.ReworkCost }),
}

// decodeCSV reads records by header name. Column order is free, unknown columns are
// ignored and every bound column must be present.
func decodeCSV[T any](r io.Reader, cols []column[T]) ([]T, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}

	positions := make([]int, len(cols))
	for i, col := range cols {
		pos, ok := index[col.header]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col.header)
		}
		positions[i] = pos
	}

	var records []T
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var rec T
		for i, col := range cols {
			raw := strings.TrimSpace(row[positions[i]])
			if err := col.parse(&rec, raw); err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, col.header, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeCSV[T any](w io.Writer, cols []column[T], records []T) error {
	writer := csv.NewWriter(w)

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.header
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for i := range records {
		for j, col := range cols {
			row[j] = col.format(&records[i])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func readCSVFile[T any](dir, name string, cols []column[T]) ([]T, error) {
	path := filepath.Join(dir, FileName(name, FormatCSV))
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSeries, name)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := decodeCSV(file, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func writeCSVFile[T any](dir, name string, cols []column[T], records []T) error {
	path := filepath.Join(dir, FileName(name, FormatCSV))
	return writeAtomic(path, func(w io.Writer) error {
		if err := encodeCSV(w, cols, records); err != nil {
			return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

// ReadCSVDir reads the five <series>_data.csv files from dir.
func ReadCSVDir(dir string) (Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Schedule, err = readCSVFile(dir, Schedule, scheduleColumns); err != nil {
		return Bundle{}, err
	}
	if b.Cost, err = readCSVFile(dir, Cost, costColumns); err != nil {
		return Bundle{}, err
	}
	if b.Productivity, err = readCSVFile(dir, Productivity, productivityColumns); err != nil {
		return Bundle{}, err
	}
	if b.Safety, err = readCSVFile(dir, Safety, safetyColumns); err != nil {
		return Bundle{}, err
	}
	if b.Quality, err = readCSVFile(dir, Quality, qualityColumns); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// WriteCSVDir writes the five series as <series>_data.csv files with their spreadsheet-style headers.
func WriteCSVDir(dir string, b Bundle) error {
	if err := writeCSVFile(dir, Schedule, scheduleColumns, b.Schedule); err != nil {
		return err
	}
	if err := writeCSVFile(dir, Cost, costColumns, b.Cost); err != nil {
		return err
	}
	if err := writeCSVFile(dir, Productivity, productivityColumns, b.Productivity); err != nil {
		return err
	}
	if err := writeCSVFile(dir, Safety, safetyColumns, b.Safety); err != nil {
		return err
	}
	return writeCSVFile(dir, Quality, qualityColumns, b.Quality)
}
