package series

import (
	"math"
	"testing"
	"time"
)

func weekDate(i int) time.Time {
	return time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
}

func TestSeries_LatestOnEmpty(t *testing.T) {
	var s Series[ScheduleRecord]

	if _, ok := s.Latest(); ok {
		t.Error("Expected Latest to report false on an empty series")
	}
	if !s.IsEmpty() {
		t.Error("Expected zero-value series to be empty")
	}
	if len(s.Values(func(r ScheduleRecord) float64 { return r.SPI })) != 0 {
		t.Error("Expected no values from an empty series")
	}
}

func TestSeries_LatestAndValues(t *testing.T) {
	var records []ScheduleRecord
	for i := 0; i < 6; i++ {
		records = append(records, ScheduleRecord{Week: i + 1, Date: weekDate(i), SPI: float64(i)})
	}
	s := Of(records)

	if s.Len() != 6 {
		t.Fatalf("Expected 6 records, got %d", s.Len())
	}
	if last, _ := s.Latest(); last.Week != 6 {
		t.Errorf("Expected latest week 6, got %d", last.Week)
	}

	spis := s.Values(func(r ScheduleRecord) float64 { return r.SPI })
	if spis[0] != 0 || spis[5] != 5 {
		t.Errorf("Unexpected projected values: %v", spis)
	}
}

func TestNewContext_CopiesInput(t *testing.T) {
	schedule := []ScheduleRecord{{Week: 1, Date: weekDate(0), SPI: 0.9}}
	ctx := NewContext(schedule, nil, nil, nil, nil)

	schedule[0].SPI = 5.0

	latest, ok := ctx.Schedule().Latest()
	if !ok {
		t.Fatal("Expected schedule record in context")
	}
	if latest.SPI != 0.9 {
		t.Errorf("Context must not observe caller mutation, got SPI %v", latest.SPI)
	}

	out := ctx.Schedule().Records()
	out[0].SPI = 7.0
	if again, _ := ctx.Schedule().Latest(); again.SPI != 0.9 {
		t.Errorf("Records() must return a copy, got SPI %v", again.SPI)
	}

	if ctx.Weeks() != 1 {
		t.Errorf("Expected 1 week, got %d", ctx.Weeks())
	}
	if !ctx.Cost().IsEmpty() {
		t.Error("Expected empty cost series")
	}
}

func TestPerformanceIndex(t *testing.T) {
	if got := PerformanceIndex(95, 100); got != 0.95 {
		t.Errorf("Expected 0.95, got %v", got)
	}
	if got := PerformanceIndex(95, 0); got != 1.0 {
		t.Errorf("Expected zero base to default to 1.0, got %v", got)
	}
}

func TestCumulativeTRIR(t *testing.T) {
	safety := []SafetyRecord{
		{Week: 1, IncidentOccurred: false},
		{Week: 2, IncidentOccurred: true},
		{Week: 3, IncidentOccurred: false},
	}
	productivity := []ProductivityRecord{
		{Week: 1, LaborHours: 2000},
		{Week: 2, LaborHours: 2000},
		{Week: 3, LaborHours: 1000},
	}

	rates := CumulativeTRIR(safety, productivity)
	want := []float64{0, 50, 40}
	for i := range want {
		if math.Abs(rates[i]-want[i]) > 1e-9 {
			t.Errorf("week %d TRIR = %v, want %v", i+1, rates[i], want[i])
		}
	}

	if TRIR(3, 0) != 0 {
		t.Error("Expected zero hours to yield a zero rate")
	}
}
