package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"site-health/internal/series"

	"github.com/parquet-go/parquet-go"
)

func readParquetFile[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, FileName(name, FormatParquet))
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSeries, name)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if n == 0 {
		return nil, nil
	}
	return rows[:n], nil
}

func writeParquetFile[T any](dir, name string, rows []T) error {
	path := filepath.Join(dir, FileName(name, FormatParquet))
	return writeAtomic(path, func(w io.Writer) error {
		writer := parquet.NewGenericWriter[T](w)
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("failed to finalize %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

// ReadParquetDir reads the five <series>_data.parquet files from dir.
func ReadParquetDir(dir string) (Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Schedule, err = readParquetFile[series.ScheduleRecord](dir, Schedule); err != nil {
		return Bundle{}, err
	}
	if b.Cost, err = readParquetFile[series.CostRecord](dir, Cost); err != nil {
		return Bundle{}, err
	}
	if b.Productivity, err = readParquetFile[series.ProductivityRecord](dir, Productivity); err != nil {
		return Bundle{}, err
	}
	if b.Safety, err = readParquetFile[series.SafetyRecord](dir, Safety); err != nil {
		return Bundle{}, err
	}
	if b.Quality, err = readParquetFile[series.QualityRecord](dir, Quality); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// WriteParquetDir writes the five series as snappy-compressed Parquet files.
func WriteParquetDir(dir string, b Bundle) error {
	if err := writeParquetFile(dir, Schedule, b.Schedule); err != nil {
		return err
	}
	if err := writeParquetFile(dir, Cost, b.Cost); err != nil {
		return err
	}
	if err := writeParquetFile(dir, Productivity, b.Productivity); err != nil {
		return err
	}
	if err := writeParquetFile(dir, Safety, b.Safety); err != nil {
		return err
	}
	return writeParquetFile(dir, Quality, b.Quality)
}
