package analytics

import "testing"

func kpiByName(kpis []KPI) map[string]KPI {
	out := make(map[string]KPI, len(kpis))
	for _, k := range kpis {
		out[k.Name] = k
	}
	return out
}

func TestEvaluateKPIs_Empty(t *testing.T) {
	if kpis := EvaluateKPIs(emptyContext(), DefaultThresholds(), "USD"); len(kpis) != 0 {
		t.Errorf("Expected no KPI cards for an empty context, got %d", len(kpis))
	}
}

func TestEvaluateKPIs_Statuses(t *testing.T) {
	weeks := steadyWeeks(2)
	last := &weeks[1]
	last.spi = 0.97
	last.cpi = 0.80
	last.daysSince = 20
	last.trir = 3.5
	last.passRate = 90
	last.punchList = 25
	last.util = 85
	last.waste = 8

	kpis := kpiByName(EvaluateKPIs(contextFrom(weeks), DefaultThresholds(), "USD"))

	expected := map[string]KPIStatus{
		"Schedule Performance Index": KPIWarning,
		"Cost Performance Index":     KPIDanger,
		"Days Since Last Incident":   KPIWarning,
		"TRIR":                       KPIDanger,
		"Inspection Pass Rate":       KPIGood,
		"Punch List Items":           KPIWarning,
		"Equipment Utilization":      KPIGood,
		"Material Waste":             KPIWarning,
	}
	for name, status := range expected {
		k, ok := kpis[name]
		if !ok {
			t.Errorf("Missing KPI card %q", name)
			continue
		}
		if k.Status != status {
			t.Errorf("%s: status = %s, want %s", name, k.Status, status)
		}
	}

	if got := kpis["Days Since Last Incident"].Display; got != "20" {
		t.Errorf("Expected display \"20\", got %q", got)
	}
	if got := kpis["Inspection Pass Rate"].Display; got != "90.0%" {
		t.Errorf("Expected display \"90.0%%\", got %q", got)
	}
}

func TestEvaluateKPIs_IncidentStreakBoundaries(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		days     int
		expected KPIStatus
	}{
		{31, KPIGood},
		{30, KPIWarning},
		{15, KPIWarning},
		{14, KPIDanger},
		{0, KPIDanger},
	}
	for _, tt := range tests {
		weeks := steadyWeeks(1)
		weeks[0].daysSince = tt.days
		kpis := kpiByName(EvaluateKPIs(contextFrom(weeks), th, "USD"))
		if got := kpis["Days Since Last Incident"].Status; got != tt.expected {
			t.Errorf("days=%d: status = %s, want %s", tt.days, got, tt.expected)
		}
	}
}
