package analytics

import "testing"

func TestBenchmarkProductivity_Empty(t *testing.T) {
	if _, ok := BenchmarkProductivity(emptyContext()); ok {
		t.Error("Expected no benchmark without productivity records")
	}
}

func TestBenchmarkProductivity(t *testing.T) {
	weeks := steadyWeeks(3)
	weeks[0].hpu, weeks[1].hpu, weeks[2].hpu = 40, 50, 60
	weeks[0].util, weeks[1].util, weeks[2].util = 80, 80, 50
	weeks[0].waste, weeks[1].waste, weeks[2].waste = 5, 5, 5

	b, ok := BenchmarkProductivity(contextFrom(weeks))
	if !ok {
		t.Fatal("Expected a benchmark")
	}

	tests := []struct {
		name     string
		got      Benchmark
		expected Benchmark
	}{
		{"LaborHoursPerUnit", b.LaborHoursPerUnit, Benchmark{Current: 60, Average: 50, VsAverage: "+20.0%"}},
		{"EquipmentUtilization", b.EquipmentUtilizationPct, Benchmark{Current: 50, Average: 70, VsAverage: "-28.6%"}},
		{"MaterialWaste", b.MaterialWastePct, Benchmark{Current: 5, Average: 5, VsAverage: "+0.0%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %+v, want %+v", tt.got, tt.expected)
			}
		})
	}
}

func TestFormatDeviation(t *testing.T) {
	tests := []struct {
		current, avg float64
		expected     string
	}{
		{110, 100, "+10.0%"},
		{90, 100, "-10.0%"},
		{100, 100, "+0.0%"},
		{5, 0, NotAvailable},
	}
	for _, tt := range tests {
		if got := FormatDeviation(tt.current, tt.avg); got != tt.expected {
			t.Errorf("FormatDeviation(%v, %v) = %q, want %q", tt.current, tt.avg, got, tt.expected)
		}
	}
}
