package analytics

import "testing"

func progressContext(progress ...float64) []week {
	weeks := steadyWeeks(len(progress))
	for i, p := range progress {
		weeks[i].actualPct = p
	}
	return weeks
}

func TestPredictCompletion_TooFewWeeks(t *testing.T) {
	if _, ok := PredictCompletion(contextFrom(progressContext(10, 20))); ok {
		t.Error("Expected no forecast with fewer than 3 weeks")
	}
	if _, ok := PredictCompletion(emptyContext()); ok {
		t.Error("Expected no forecast for an empty context")
	}
}

func TestPredictCompletion_NoProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress []float64
	}{
		{"Flat", []float64{40, 40, 40, 40}},
		{"Regressing", []float64{40, 38, 36, 35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PredictCompletion(contextFrom(progressContext(tt.progress...)))
			if !ok {
				t.Fatal("Expected a diagnostic, got no result")
			}
			if got != DiagnosticNoProgress {
				t.Errorf("Expected %q, got %q", DiagnosticNoProgress, got)
			}
		})
	}
}

func TestPredictCompletion_SteadyRate(t *testing.T) {
	// 10 points a week, 60 remaining: six weeks after 2024-02-11.
	got, ok := PredictCompletion(contextFrom(progressContext(10, 20, 30, 40)))
	if !ok {
		t.Fatal("Expected a forecast")
	}
	if got != "2024-03-24" {
		t.Errorf("Expected 2024-03-24, got %s", got)
	}
}

func TestPredictCompletion_FractionalWeeks(t *testing.T) {
	// 30 points a week, 40 remaining: 9 and 1/3 days after 2024-02-04.
	got, _ := PredictCompletion(contextFrom(progressContext(0, 30, 60)))
	if got != "2024-02-13" {
		t.Errorf("Expected 2024-02-13, got %s", got)
	}
}

func TestPredictCompletion_UsesTrailingWindow(t *testing.T) {
	// The early 50-point jump falls outside the trailing four weeks.
	got, _ := PredictCompletion(contextFrom(progressContext(0, 50, 51, 52, 53)))
	want := weekDate(4).AddDate(0, 0, 47*7).Format("2006-01-02")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestPredictCompletion_AlreadyComplete(t *testing.T) {
	got, _ := PredictCompletion(contextFrom(progressContext(90, 95, 100)))
	if want := weekDate(2).Format("2006-01-02"); got != want {
		t.Errorf("Expected completion on the last record date %s, got %s", want, got)
	}
}
