package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"site-health/internal/series"

	"github.com/google/jsonschema-go/jsonschema"
)

// BundleSchema describes project.json. Record fields are required; extra fields are allowed.
func BundleSchema() *jsonschema.Schema {
	date := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", MinLength: ptr(10)} }
	week := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer", Minimum: ptr(1.0)} }
	count := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer", Minimum: ptr(0.0)} }
	amount := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "number", Minimum: ptr(0.0)} }
	signed := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} }
	pct := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "number", Minimum: ptr(0.0), Maximum: ptr(100.0)}
	}

	return &jsonschema.Schema{
		Type:        "object",
		Title:       "Construction project dataset",
		Description: "Aligned weekly schedule, cost, productivity, safety and quality records.",
		Required:    slices.Clone(seriesNames),
		Properties: map[string]*jsonschema.Schema{
			Schedule: records(map[string]*jsonschema.Schema{
				"week":                 week(),
				"date":                 date(),
				"planned_progress_pct": pct(),
				"actual_progress_pct":  pct(),
				"planned_value":        amount(),
				"earned_value":         amount(),
				"spi":                  amount(),
				"days_variance":        signed(),
			}),
			Cost: records(map[string]*jsonschema.Schema{
				"week":              week(),
				"date":              date(),
				"weekly_budget":     signed(),
				"weekly_actual":     signed(),
				"cumulative_budget": signed(),
				"cumulative_spent":  amount(),
				"cpi":               amount(),
				"forecasted_cost":   signed(),
				"cost_variance":     signed(),
			}),
			Productivity: records(map[string]*jsonschema.Schema{
				"week":                      week(),
				"date":                      date(),
				"labor_hours":               amount(),
				"work_units":                amount(),
				"labor_hours_per_unit":      amount(),
				"equipment_utilization_pct": pct(),
				"material_waste_pct":        amount(),
			}),
			Safety: records(map[string]*jsonschema.Schema{
				"week":                     week(),
				"date":                     date(),
				"incident_occurred":        {Type: "boolean"},
				"near_miss_count":          count(),
				"days_since_last_incident": count(),
				"trir":                     amount(),
			}),
			Quality: records(map[string]*jsonschema.Schema{
				"week":                     week(),
				"date":                     date(),
				"inspections_conducted":    count(),
				"inspections_passed":       count(),
				"inspection_pass_rate_pct": pct(),
				"punch_list_items":         count(),
				"rework_cost":              amount(),
			}),
		},
	}
}

func records(props map[string]*jsonschema.Schema) *jsonschema.Schema {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	slices.Sort(required)

	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

func ptr[T any](v T) *T { return &v }

var resolvedBundleSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	return BundleSchema().Resolve(nil)
})

// DecodeJSON checks data against BundleSchema and decodes it.
func DecodeJSON(data []byte) (Bundle, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return Bundle{}, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}

	resolved, err := resolvedBundleSchema()
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to resolve dataset schema: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return Bundle{}, fmt.Errorf("dataset JSON does not match schema: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("failed to decode dataset JSON: %w", err)
	}
	return b, nil
}

// ReadJSONFile reads a project.json bundle.
func ReadJSONFile(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeJSON(data)
}

// WriteJSONFile writes b as an indented JSON bundle.
func WriteJSONFile(path string, b Bundle) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(withEmptySlices(b)); err != nil {
			return fmt.Errorf("failed to encode dataset JSON: %w", err)
		}
		return nil
	})
}

// withEmptySlices replaces nil series so they encode as [] rather than null.
func withEmptySlices(b Bundle) Bundle {
	if b.Schedule == nil {
		b.Schedule = []series.ScheduleRecord{}
	}
	if b.Cost == nil {
		b.Cost = []series.CostRecord{}
	}
	if b.Productivity == nil {
		b.Productivity = []series.ProductivityRecord{}
	}
	if b.Safety == nil {
		b.Safety = []series.SafetyRecord{}
	}
	if b.Quality == nil {
		b.Quality = []series.QualityRecord{}
	}
	return b
}
