// Package dataset loads and saves the five weekly record series a project
// analysis runs on. Three on-disk layouts are supported:
//
//   - a directory of CSV files (schedule_data.csv, cost_data.csv, ...)
//   - a single JSON bundle (project.json), checked against a JSON Schema
//   - a directory of Parquet files (schedule_data.parquet, ...)
//
// Every loader validates the record invariants before handing a series.Context
// to the analytics.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"site-health/internal/series"

	"github.com/rs/zerolog/log"
)

// Format identifies an on-disk dataset layout.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// BundleFile is the file name of the JSON layout.
const BundleFile = "project.json"

// Series names, in the order they are read and written.
const (
	Schedule     = "schedule"
	Cost         = "cost"
	Productivity = "productivity"
	Safety       = "safety"
	Quality      = "quality"
)

var seriesNames = []string{Schedule, Cost, Productivity, Safety, Quality}

// ErrNoDataset is returned when a directory holds none of the supported layouts.
var ErrNoDataset = errors.New("no dataset found")

// Bundle is the in-memory form of a dataset.
type Bundle struct {
	Schedule     []series.ScheduleRecord     `json:"schedule"`
	Cost         []series.CostRecord         `json:"cost"`
	Productivity []series.ProductivityRecord `json:"productivity"`
	Safety       []series.SafetyRecord       `json:"safety"`
	Quality      []series.QualityRecord      `json:"quality"`
}

// Context wraps the bundle in an immutable analysis context.
func (b Bundle) Context() *series.Context {
	return series.NewContext(b.Schedule, b.Cost, b.Productivity, b.Safety, b.Quality)
}

// FromContext copies a context back into a bundle.
func FromContext(c *series.Context) Bundle {
	return Bundle{
		Schedule:     c.Schedule().Records(),
		Cost:         c.Cost().Records(),
		Productivity: c.Productivity().Records(),
		Safety:       c.Safety().Records(),
		Quality:      c.Quality().Records(),
	}
}

// FileName returns the file a series is stored in for a per-series layout.
func FileName(name string, f Format) string {
	return name + "_data." + string(f)
}

// ParseFormat accepts "csv", "json" or "parquet".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON, FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("unknown dataset format %q (want csv, json or parquet)", s)
}

// Detect reports which layout dir contains. A JSON bundle wins over Parquet,
// and Parquet over CSV.
func Detect(dir string) (Format, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("dataset directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("dataset path %q is not a directory", dir)
	}

	if exists(filepath.Join(dir, BundleFile)) {
		return FormatJSON, nil
	}
	for _, f := range []Format{FormatParquet, FormatCSV} {
		if exists(filepath.Join(dir, FileName(Schedule, f))) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoDataset, dir)
}

// Load detects the layout in dir, reads it and validates the result.
func Load(dir string) (*series.Context, error) {
	format, err := Detect(dir)
	if err != nil {
		return nil, err
	}
	return LoadFormat(dir, format)
}

// LoadFormat reads dir as the given layout and validates the result.
func LoadFormat(dir string, format Format) (*series.Context, error) {
	var (
		b   Bundle
		err error
	)
	switch format {
	case FormatCSV:
		b, err = ReadCSVDir(dir)
	case FormatJSON:
		b, err = ReadJSONFile(filepath.Join(dir, BundleFile))
	case FormatParquet:
		b, err = ReadParquetDir(dir)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(b); err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", dir).
		Str("format", string(format)).
		Int("weeks", len(b.Schedule)).
		Msg("Loaded project dataset")

	return b.Context(), nil
}

// Save writes b to dir in the given layout, replacing any existing files atomically.
func Save(dir string, format Format, b Bundle) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	switch format {
	case FormatCSV:
		return WriteCSVDir(dir, b)
	case FormatJSON:
		return WriteJSONFile(filepath.Join(dir, BundleFile), b)
	case FormatParquet:
		return WriteParquetDir(dir, b)
	}
	return fmt.Errorf("unknown dataset format %q", format)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
