package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrMissingSeries is returned when a per-series layout lacks one of its files.
var ErrMissingSeries = errors.New("missing series")

// ValidationError lists every record invariant a dataset violates.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset failed validation (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type checker struct {
	problems []string
}

func (c *checker) addf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *checker) nonNegative(name string, week int, field string, v float64) {
	if math.IsNaN(v) || v < 0 {
		c.addf("%s week %d: %s must be >= 0, got %v", name, week, field, v)
	}
}

func (c *checker) percentage(name string, week int, field string, v float64) {
	if math.IsNaN(v) || v < 0 || v > 100 {
		c.addf("%s week %d: %s must be within [0,100], got %v", name, week, field, v)
	}
}

// axis is the week/date key shared by every record type.
type axis struct {
	week int
	date time.Time
}

// ordered checks that weeks and dates both strictly increase.
func (c *checker) ordered(name string, keys []axis) {
	for i := 1; i < len(keys); i++ {
		if keys[i].week <= keys[i-1].week {
			c.addf("%s: week %d follows week %d", name, keys[i].week, keys[i-1].week)
		}
		if !keys[i].date.After(keys[i-1].date) {
			c.addf("%s week %d: date %s is not after %s", name, keys[i].week,
				keys[i].date.Format(csvDateLayout), keys[i-1].date.Format(csvDateLayout))
		}
	}
}

// aligned checks that a non-empty series uses the same week axis as the reference.
func (c *checker) aligned(name string, keys []axis, refName string, ref []axis) {
	if len(keys) == 0 || len(ref) == 0 {
		return
	}
	if len(keys) != len(ref) {
		c.addf("%s has %d weeks but %s has %d", name, len(keys), refName, len(ref))
		return
	}
	for i := range keys {
		if keys[i].week != ref[i].week || !keys[i].date.Equal(ref[i].date) {
			c.addf("%s row %d (week %d, %s) does not line up with %s (week %d, %s)", name, i+1,
				keys[i].week, keys[i].date.Format(csvDateLayout), refName,
				ref[i].week, ref[i].date.Format(csvDateLayout))
			return
		}
	}
}

// Validate checks the record invariants: aligned week axes with strictly increasing
// dates, non-negative amounts, bounded percentages, passed <= conducted inspections and
// an incident counter that resets to 0 on incidents and otherwise grows.
// Empty series are allowed; the analytics treat them as missing.
func Validate(b Bundle) error {
	var c checker

	keys := map[string][]axis{}
	for _, r := range b.Schedule {
		keys[Schedule] = append(keys[Schedule], axis{r.Week, r.Date})
		c.percentage(Schedule, r.Week, "planned_progress_pct", r.PlannedProgressPct)
		c.percentage(Schedule, r.Week, "actual_progress_pct", r.ActualProgressPct)
		c.nonNegative(Schedule, r.Week, "planned_value", r.PlannedValue)
		c.nonNegative(Schedule, r.Week, "earned_value", r.EarnedValue)
		c.nonNegative(Schedule, r.Week, "spi", r.SPI)
	}
	for _, r := range b.Cost {
		keys[Cost] = append(keys[Cost], axis{r.Week, r.Date})
		c.nonNegative(Cost, r.Week, "cumulative_spent", r.CumulativeSpent)
		c.nonNegative(Cost, r.Week, "cpi", r.CPI)
	}
	for _, r := range b.Productivity {
		keys[Productivity] = append(keys[Productivity], axis{r.Week, r.Date})
		c.nonNegative(Productivity, r.Week, "labor_hours", r.LaborHours)
		c.nonNegative(Productivity, r.Week, "work_units", r.WorkUnits)
		c.nonNegative(Productivity, r.Week, "labor_hours_per_unit", r.LaborHoursPerUnit)
		c.percentage(Productivity, r.Week, "equipment_utilization_pct", r.EquipmentUtilizationPct)
		c.nonNegative(Productivity, r.Week, "material_waste_pct", r.MaterialWastePct)
	}
	for i, r := range b.Safety {
		keys[Safety] = append(keys[Safety], axis{r.Week, r.Date})
		c.nonNegative(Safety, r.Week, "near_miss_count", float64(r.NearMissCount))
		c.nonNegative(Safety, r.Week, "days_since_last_incident", float64(r.DaysSinceLastIncident))
		c.nonNegative(Safety, r.Week, "trir", r.TRIR)
		switch {
		case r.IncidentOccurred && r.DaysSinceLastIncident != 0:
			c.addf("%s week %d: days_since_last_incident must be 0 in an incident week, got %d", Safety, r.Week, r.DaysSinceLastIncident)
		case !r.IncidentOccurred && i > 0 && r.DaysSinceLastIncident <= b.Safety[i-1].DaysSinceLastIncident:
			c.addf("%s week %d: days_since_last_incident did not increase without an incident (%d -> %d)",
				Safety, r.Week, b.Safety[i-1].DaysSinceLastIncident, r.DaysSinceLastIncident)
		}
	}
	for _, r := range b.Quality {
		keys[Quality] = append(keys[Quality], axis{r.Week, r.Date})
		c.nonNegative(Quality, r.Week, "inspections_conducted", float64(r.InspectionsConducted))
		c.nonNegative(Quality, r.Week, "inspections_passed", float64(r.InspectionsPassed))
		c.percentage(Quality, r.Week, "inspection_pass_rate_pct", r.InspectionPassRatePct)
		c.nonNegative(Quality, r.Week, "punch_list_items", float64(r.PunchListItems))
		c.nonNegative(Quality, r.Week, "rework_cost", r.ReworkCost)
		if r.InspectionsPassed > r.InspectionsConducted {
			c.addf("%s week %d: %d inspections passed out of %d conducted", Quality, r.Week, r.InspectionsPassed, r.InspectionsConducted)
		}
	}

	// The first non-empty series is the reference axis.
	refName := ""
	for _, name := range seriesNames {
		if len(keys[name]) > 0 {
			refName = name
			break
		}
	}
	for _, name := range seriesNames {
		c.ordered(name, keys[name])
		if refName != "" && name != refName {
			c.aligned(name, keys[name], refName, keys[refName])
		}
	}

	if len(c.problems) > 0 {
		return &ValidationError{Problems: c.problems}
	}
	return nil
}
