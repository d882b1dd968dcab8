package series

import "time"

// ScheduleRecord is one week of schedule performance.
type ScheduleRecord struct {
	Week               int       `json:"week" parquet:"week,snappy"`
	Date               time.Time `json:"date" parquet:"date,snappy"`
	PlannedProgressPct float64   `json:"planned_progress_pct" parquet:"planned_progress_pct,snappy"`
	ActualProgressPct  float64   `json:"actual_progress_pct" parquet:"actual_progress_pct,snappy"`
	PlannedValue       float64   `json:"planned_value" parquet:"planned_value,snappy"`
	EarnedValue        float64   `json:"earned_value" parquet:"earned_value,snappy"`
	SPI                float64   `json:"spi" parquet:"spi,snappy"`
	DaysVariance       float64   `json:"days_variance" parquet:"days_variance,snappy"`
}

// CostRecord is one week of budget and spend.
type CostRecord struct {
	Week             int       `json:"week" parquet:"week,snappy"`
	Date             time.Time `json:"date" parquet:"date,snappy"`
	WeeklyBudget     float64   `json:"weekly_budget" parquet:"weekly_budget,snappy"`
	WeeklyActual     float64   `json:"weekly_actual" parquet:"weekly_actual,snappy"`
	CumulativeBudget float64   `json:"cumulative_budget" parquet:"cumulative_budget,snappy"`
	CumulativeSpent  float64   `json:"cumulative_spent" parquet:"cumulative_spent,snappy"`
	CPI              float64   `json:"cpi" parquet:"cpi,snappy"`
	ForecastedCost   float64   `json:"forecasted_cost" parquet:"forecasted_cost,snappy"`
	CostVariance     float64   `json:"cost_variance" parquet:"cost_variance,snappy"`
}

// ProductivityRecord is one week of labor, equipment and material figures.
type ProductivityRecord struct {
	Week                    int       `json:"week" parquet:"week,snappy"`
	Date                    time.Time `json:"date" parquet:"date,snappy"`
	LaborHours              float64   `json:"labor_hours" parquet:"labor_hours,snappy"`
	WorkUnits               float64   `json:"work_units" parquet:"work_units,snappy"`
	LaborHoursPerUnit       float64   `json:"labor_hours_per_unit" parquet:"labor_hours_per_unit,snappy"`
	EquipmentUtilizationPct float64   `json:"equipment_utilization_pct" parquet:"equipment_utilization_pct,snappy"`
	MaterialWastePct        float64   `json:"material_waste_pct" parquet:"material_waste_pct,snappy"`
}

// SafetyRecord is one week of safety observations.
// DaysSinceLastIncident resets to 0 in the week an incident occurs.
type SafetyRecord struct {
	Week                  int       `json:"week" parquet:"week,snappy"`
	Date                  time.Time `json:"date" parquet:"date,snappy"`
	IncidentOccurred      bool      `json:"incident_occurred" parquet:"incident_occurred,snappy"`
	NearMissCount         int       `json:"near_miss_count" parquet:"near_miss_count,snappy"`
	DaysSinceLastIncident int       `json:"days_since_last_incident" parquet:"days_since_last_incident,snappy"`
	TRIR                  float64   `json:"trir" parquet:"trir,snappy"`
}

// QualityRecord is one week of inspection and rework figures.
type QualityRecord struct {
	Week                  int       `json:"week" parquet:"week,snappy"`
	Date                  time.Time `json:"date" parquet:"date,snappy"`
	InspectionsConducted  int       `json:"inspections_conducted" parquet:"inspections_conducted,snappy"`
	InspectionsPassed     int       `json:"inspections_passed" parquet:"inspections_passed,snappy"`
	InspectionPassRatePct float64   `json:"inspection_pass_rate_pct" parquet:"inspection_pass_rate_pct,snappy"`
	PunchListItems        int       `json:"punch_list_items" parquet:"punch_list_items,snappy"`
	ReworkCost            float64   `json:"rework_cost" parquet:"rework_cost,snappy"`
}

// trirHoursBase is 100 full-time workers for one year.
const trirHoursBase = 200000.0

// TRIR returns the recordable-incident rate per 200,000 work-hours, or 0 when no hours were worked.
func TRIR(incidents int, hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return float64(incidents) * trirHoursBase / hours
}

// PerformanceIndex divides earned value by a base (planned value or actual cost),
// defaulting to 1.0 when the base is zero.
func PerformanceIndex(earned, base float64) float64 {
	if base <= 0 {
		return 1.0
	}
	return earned / base
}
