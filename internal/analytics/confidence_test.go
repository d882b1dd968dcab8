package analytics

import "testing"

func cpiWeeks(cpis ...float64) []week {
	weeks := steadyWeeks(len(cpis))
	for i, c := range cpis {
		weeks[i].cpi = c
	}
	return weeks
}

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		name     string
		cpis     []float64
		expected string
	}{
		{"TooFewWeeks", []float64{1, 1, 1, 1}, ConfidenceInsufficientData},
		{"Stable", []float64{0.9, 0.9, 0.9, 0.9, 0.9}, ConfidenceHigh},
		{"Moderate", []float64{0.85, 0.95, 1.0, 0.9, 0.85}, ConfidenceMedium},
		{"Volatile", []float64{0.7, 1.0, 0.8, 1.1, 0.9}, ConfidenceLow},
		{"OnlyTrailingFive", []float64{0.2, 1.8, 0.9, 0.9, 0.9, 0.9, 0.9}, ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateConfidence(contextFrom(cpiWeeks(tt.cpis...))); got != tt.expected {
				t.Errorf("EstimateConfidence() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConfidenceForStdDev_Boundaries(t *testing.T) {
	tests := []struct {
		sd       float64
		expected string
	}{
		{0, ConfidenceHigh},
		{0.0499, ConfidenceHigh},
		{0.05, ConfidenceMedium},
		{0.0999, ConfidenceMedium},
		{0.10, ConfidenceLow},
		{0.5, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ConfidenceForStdDev(tt.sd); got != tt.expected {
			t.Errorf("ConfidenceForStdDev(%v) = %q, want %q", tt.sd, got, tt.expected)
		}
	}
}
