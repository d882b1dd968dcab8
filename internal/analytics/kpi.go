package analytics

import (
	"fmt"

	"site-health/internal/series"
)

// KPIStatus is the traffic-light state of a KPI card.
type KPIStatus string

const (
	KPIGood    KPIStatus = "good"
	KPIWarning KPIStatus = "warning"
	KPIDanger  KPIStatus = "danger"
)

// Thresholds configures the KPI cards. Zero values are not meaningful; start from DefaultThresholds.
type Thresholds struct {
	SPIWarning                 float64 `json:"spi_warning"`
	CPIWarning                 float64 `json:"cpi_warning"`
	DaysVarianceWarning        float64 `json:"days_variance_warning"`
	DaysSinceIncidentGood      int     `json:"days_since_incident_good"`
	DaysSinceIncidentWarning   int     `json:"days_since_incident_warning"`
	TRIRGood                   float64 `json:"trir_good"`
	TRIRWarning                float64 `json:"trir_warning"`
	PassRateGood               float64 `json:"inspection_pass_rate_good"`
	PassRateWarning            float64 `json:"inspection_pass_rate_warning"`
	PunchListThreshold         int     `json:"punch_list_threshold"`
	EquipmentUtilizationTarget float64 `json:"equipment_utilization_target"`
	MaterialWasteTarget        float64 `json:"material_waste_target"`
}

// DefaultThresholds returns the stock calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SPIWarning:                 0.95,
		CPIWarning:                 0.95,
		DaysVarianceWarning:        -10,
		DaysSinceIncidentGood:      30,
		DaysSinceIncidentWarning:   14,
		TRIRGood:                   2.0,
		TRIRWarning:                3.0,
		PassRateGood:               85,
		PassRateWarning:            75,
		PunchListThreshold:         20,
		EquipmentUtilizationTarget: 80,
		MaterialWasteTarget:        5,
	}
}

// KPI is one status card for the latest reporting week.
type KPI struct {
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Display string    `json:"display"`
	Status  KPIStatus `json:"status"`
}

// EvaluateKPIs grades the latest week of each series against the thresholds.
// Cards for empty series are omitted.
func EvaluateKPIs(c *series.Context, th Thresholds, currency string) []KPI {
	var kpis []KPI

	if s, ok := c.Schedule().Latest(); ok {
		kpis = append(kpis,
			KPI{"Schedule Performance Index", s.SPI, fmt.Sprintf("%.3f", s.SPI), higherIsBetter(s.SPI, 1.0, th.SPIWarning)},
			KPI{"Days Ahead/Behind", s.DaysVariance, fmt.Sprintf("%+.1f", s.DaysVariance), higherIsBetter(s.DaysVariance, 0, th.DaysVarianceWarning)},
		)
	}

	if cost, ok := c.Cost().Latest(); ok {
		kpis = append(kpis,
			KPI{"Cost Performance Index", cost.CPI, fmt.Sprintf("%.3f", cost.CPI), higherIsBetter(cost.CPI, 1.0, th.CPIWarning)},
			KPI{"Cost Variance", cost.CostVariance, FormatCurrency(cost.CostVariance, currency), passFail(cost.CostVariance >= 0, KPIDanger)},
		)
	}

	if s, ok := c.Safety().Latest(); ok {
		days := float64(s.DaysSinceLastIncident)
		streak := KPIDanger
		switch {
		case s.DaysSinceLastIncident > th.DaysSinceIncidentGood:
			streak = KPIGood
		case s.DaysSinceLastIncident > th.DaysSinceIncidentWarning:
			streak = KPIWarning
		}
		kpis = append(kpis,
			KPI{"Days Since Last Incident", days, fmt.Sprintf("%d", s.DaysSinceLastIncident), streak},
			KPI{"TRIR", s.TRIR, fmt.Sprintf("%.2f", s.TRIR), lowerIsBetter(s.TRIR, th.TRIRGood, th.TRIRWarning)},
		)
	}

	if q, ok := c.Quality().Latest(); ok {
		kpis = append(kpis,
			KPI{"Inspection Pass Rate", q.InspectionPassRatePct, fmt.Sprintf("%.1f%%", q.InspectionPassRatePct), higherIsBetter(q.InspectionPassRatePct, th.PassRateGood, th.PassRateWarning)},
			KPI{"Punch List Items", float64(q.PunchListItems), fmt.Sprintf("%d", q.PunchListItems), passFail(q.PunchListItems <= th.PunchListThreshold, KPIWarning)},
		)
	}

	if p, ok := c.Productivity().Latest(); ok {
		kpis = append(kpis,
			KPI{"Equipment Utilization", p.EquipmentUtilizationPct, fmt.Sprintf("%.1f%%", p.EquipmentUtilizationPct), passFail(p.EquipmentUtilizationPct >= th.EquipmentUtilizationTarget, KPIWarning)},
			KPI{"Material Waste", p.MaterialWastePct, fmt.Sprintf("%.1f%%", p.MaterialWastePct), passFail(p.MaterialWastePct <= th.MaterialWasteTarget, KPIWarning)},
		)
	}

	return kpis
}

func higherIsBetter(v, good, warning float64) KPIStatus {
	switch {
	case v >= good:
		return KPIGood
	case v >= warning:
		return KPIWarning
	default:
		return KPIDanger
	}
}

func lowerIsBetter(v, good, warning float64) KPIStatus {
	switch {
	case v <= good:
		return KPIGood
	case v <= warning:
		return KPIWarning
	default:
		return KPIDanger
	}
}

func passFail(ok bool, otherwise KPIStatus) KPIStatus {
	if ok {
		return KPIGood
	}
	return otherwise
}
