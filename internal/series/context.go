package series

import "slices"

// Series is an ordered, read-only sequence of weekly records.
// The zero value is an empty series.
type Series[T any] struct {
	items []T
}

// Of copies records into a new Series.
func Of[T any](records []T) Series[T] {
	return Series[T]{items: slices.Clone(records)}
}

// Len returns the number of weeks in the series.
func (s Series[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the series holds no records.
func (s Series[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Latest returns the most recent record, or false when the series is empty.
func (s Series[T]) Latest() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Values projects every record through fn into a fresh slice.
func (s Series[T]) Values(fn func(T) float64) []float64 {
	out := make([]float64, len(s.items))
	for i, r := range s.items {
		out[i] = fn(r)
	}
	return out
}

// Records returns a copy of the underlying records.
func (s Series[T]) Records() []T {
	return slices.Clone(s.items)
}

// Context bundles the five aligned weekly series for one analysis pass.
// It is built once and never mutated afterwards.
type Context struct {
	schedule     Series[ScheduleRecord]
	cost         Series[CostRecord]
	productivity Series[ProductivityRecord]
	safety       Series[SafetyRecord]
	quality      Series[QualityRecord]
}

// NewContext copies the supplied records into an immutable Context.
func NewContext(schedule []ScheduleRecord, cost []CostRecord, productivity []ProductivityRecord, safety []SafetyRecord, quality []QualityRecord) *Context {
	return &Context{
		schedule:     Of(schedule),
		cost:         Of(cost),
		productivity: Of(productivity),
		safety:       Of(safety),
		quality:      Of(quality),
	}
}

func (c *Context) Schedule() Series[ScheduleRecord]         { return c.schedule }
func (c *Context) Cost() Series[CostRecord]                 { return c.cost }
func (c *Context) Productivity() Series[ProductivityRecord] { return c.productivity }
func (c *Context) Safety() Series[SafetyRecord]             { return c.safety }
func (c *Context) Quality() Series[QualityRecord]           { return c.quality }

// Weeks returns the length of the longest series. Aligned input has equal lengths.
func (c *Context) Weeks() int {
	return max(c.schedule.Len(), c.cost.Len(), c.productivity.Len(), c.safety.Len(), c.quality.Len())
}

// CumulativeTRIR recomputes the project-to-date incident rate for every safety week,
// pairing it with labor hours from the productivity week at the same index.
func CumulativeTRIR(safety []SafetyRecord, productivity []ProductivityRecord) []float64 {
	rates := make([]float64, len(safety))
	incidents := 0
	hours := 0.0
	for i, s := range safety {
		if s.IncidentOccurred {
			incidents++
		}
		if i < len(productivity) {
			hours += productivity[i].LaborHours
		}
		rates[i] = TRIR(incidents, hours)
	}
	return rates
}
