// Package analytics turns aligned weekly construction records into earned-value
// metrics, a composite health score, forecasts, risk trends and an executive summary.
//
// Every function here is a pure read of a series.Context: no I/O, no logging,
// no randomness. Short or empty input takes an explicit insufficient-data branch
// instead of returning an error.
package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is how missing figures are rendered.
const NotAvailable = "N/A"

// Options carries the project-level configuration the calculations depend on.
type Options struct {
	// TotalBudget is the budget at completion (BAC) used by the EVM forecasts.
	TotalBudget float64
	// Currency is an ISO code used when formatting money ("USD" when empty).
	Currency string
	// Thresholds drive the KPI status cards.
	Thresholds Thresholds
}

// Figure is a number that may be undefined. It marshals to "N/A" when absent.
type Figure struct {
	Value float64
	Valid bool
}

// Num wraps a defined value.
func Num(v float64) Figure {
	return Figure{Value: v, Valid: true}
}

func (f Figure) String() string {
	if !f.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(f.Value)
}

func (f *Figure) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == strconv.Quote(NotAvailable) {
		*f = Figure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Num(v)
	return nil
}

// FormatCurrency renders v rounded to whole units with thousands separators, e.g. "$5,123,400".
func FormatCurrency(v float64, currency string) string {
	rounded := math.Round(v)
	neg := rounded < 0
	digits := strconv.FormatFloat(math.Abs(rounded), 'f', 0, 64)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(currencySymbol(currency))
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func currencySymbol(code string) string {
	switch strings.ToUpper(code) {
	case "", "USD", "CAD", "AUD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return strings.ToUpper(code) + " "
	}
}
