package analytics

import (
	"context"
	"fmt"

	"site-health/internal/series"

	"golang.org/x/sync/errgroup"
)

// Project status buckets for the health score.
const (
	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusFair      = "fair"
	StatusPoor      = "poor"
)

const maxPrimaryRisks = 3

// ExecutiveSummary is the aggregated view handed to rendering and export.
type ExecutiveSummary struct {
	OverallHealthScore     string   `json:"overall_health_score"`
	ProjectStatus          string   `json:"project_status"`
	PredictedCompletion    *string  `json:"predicted_completion"`
	CostForecastConfidence string   `json:"cost_forecast_confidence"`
	PrimaryRisks           []string `json:"primary_risks"`
	CurrentCPI             Figure   `json:"current_cpi"`
	CurrentSPI             Figure   `json:"current_spi"`
	EstimatedFinalCost     string   `json:"estimated_final_cost"`
}

// Report is the executive summary plus the unaggregated detail behind it.
type Report struct {
	ExecutiveSummary       ExecutiveSummary        `json:"executive_summary"`
	EarnedValue            *EVMMetrics             `json:"earned_value_metrics,omitempty"`
	ProductivityBenchmarks *ProductivityBenchmarks `json:"productivity_benchmarks,omitempty"`
	RiskAnalysis           []string                `json:"risk_analysis"`
	HealthBreakdown        HealthBreakdown         `json:"health_breakdown"`
	KPIs                   []KPI                   `json:"kpi_status,omitempty"`
}

// StatusForScore buckets a health score; each lower bound is inclusive.
func StatusForScore(score float64) string {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 60:
		return StatusFair
	default:
		return StatusPoor
	}
}

// findings collects the independent computations a report is built from.
type findings struct {
	health       HealthBreakdown
	completion   *string
	confidence   string
	risks        []string
	evm          *EVMMetrics
	productivity *ProductivityBenchmarks
	kpis         []KPI
}

// Assemble computes the executive summary sequentially.
func Assemble(c *series.Context, opts Options) ExecutiveSummary {
	var f findings
	f.health = ScoreHealth(c)
	f.completion = completion(c)
	f.confidence = EstimateConfidence(c)
	f.risks = DetectRiskTrends(c)
	f.evm = earnedValue(c, opts.TotalBudget)
	return summarize(f, opts)
}

// BuildReport computes every analysis concurrently and assembles the full report.
// The result is identical to a sequential evaluation; only ctx cancellation produces an error.
func BuildReport(ctx context.Context, c *series.Context, opts Options) (Report, error) {
	var f findings
	g, gctx := errgroup.WithContext(ctx)

	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { f.health = ScoreHealth(c) })
	run(func() { f.completion = completion(c) })
	run(func() { f.confidence = EstimateConfidence(c) })
	run(func() { f.risks = DetectRiskTrends(c) })
	run(func() { f.evm = earnedValue(c, opts.TotalBudget) })
	run(func() {
		if p, ok := BenchmarkProductivity(c); ok {
			f.productivity = &p
		}
	})
	run(func() { f.kpis = EvaluateKPIs(c, opts.Thresholds, opts.Currency) })

	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	return Report{
		ExecutiveSummary:       summarize(f, opts),
		EarnedValue:            f.evm,
		ProductivityBenchmarks: f.productivity,
		RiskAnalysis:           f.risks,
		HealthBreakdown:        f.health,
		KPIs:                   f.kpis,
	}, nil
}

func summarize(f findings, opts Options) ExecutiveSummary {
	score := f.health.Total

	primary := f.risks
	if len(primary) > maxPrimaryRisks {
		primary = primary[:maxPrimaryRisks]
	}

	s := ExecutiveSummary{
		OverallHealthScore:     fmt.Sprintf("%.1f/100", score),
		ProjectStatus:          StatusForScore(score),
		PredictedCompletion:    f.completion,
		CostForecastConfidence: f.confidence,
		PrimaryRisks:           append([]string(nil), primary...),
		EstimatedFinalCost:     NotAvailable,
	}
	if f.evm != nil {
		s.CurrentCPI = Num(f.evm.CPI)
		s.CurrentSPI = Num(f.evm.SPI)
		if f.evm.EAC != 0 {
			s.EstimatedFinalCost = FormatCurrency(f.evm.EAC, opts.Currency)
		}
	}
	return s
}

func completion(c *series.Context) *string {
	if v, ok := PredictCompletion(c); ok {
		return &v
	}
	return nil
}

func earnedValue(c *series.Context, budget float64) *EVMMetrics {
	if m, ok := ComputeEVM(c, budget); ok {
		return &m
	}
	return nil
}
