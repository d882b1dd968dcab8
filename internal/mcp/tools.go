package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"site-health/internal/analytics"
	"site-health/internal/series"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// DatasetArgs is the input shared by every tool.
type DatasetArgs struct {
	DataPath string `json:"data_path,omitempty" jsonschema:"Optional dataset directory (CSV, project.json or Parquet). Defaults to the server's configured DATA_PATH."`
}

// result is what a tool computes plus the hints returned with it.
type result struct {
	data     any
	guidance []string
}

type toolFunc func(ctx context.Context, c *series.Context) (result, error)

var errNoEarnedValue = errors.New("earned value needs at least one schedule and one cost week")

func (s *Server) registerTools(srv *mcp.Server) {
	s.addTool(srv, "get_executive_summary",
		"Get the executive summary for the construction project: composite health score (0-100) and status, predicted completion date, cost forecast confidence, top three risks, current CPI/SPI and estimated final cost. Start here.",
		func(_ context.Context, c *series.Context) (result, error) {
			return result{
				data: analytics.Assemble(c, s.cfg.Options()),
				guidance: []string{
					"Use 'get_analytics_report' for the earned-value detail, productivity benchmarks and every detected risk.",
				},
			}, nil
		})

	s.addTool(srv, "get_analytics_report",
		"Get the full analytics report: executive summary, earned-value metrics, productivity benchmarks, all risk trends, the health score breakdown and KPI status cards.",
		func(ctx context.Context, c *series.Context) (result, error) {
			report, err := analytics.BuildReport(ctx, c, s.cfg.Options())
			if err != nil {
				return result{}, err
			}
			return result{data: report}, nil
		})

	s.addTool(srv, "get_earned_value",
		"Get earned-value management metrics for the latest week: PV, EV, AC, CV, SV, SPI, CPI, TCPI, EAC, ETC and VAC, using the configured project budget.",
		func(_ context.Context, c *series.Context) (result, error) {
			m, ok := analytics.ComputeEVM(c, s.cfg.Project.TotalBudget)
			if !ok {
				return result{}, errNoEarnedValue
			}
			guidance := []string{"SPI and CPI below 1.0 mean behind schedule and over budget respectively."}
			if !m.TCPI.Valid {
				guidance = append(guidance, "TCPI is N/A because actual cost has reached the total budget.")
			}
			return result{data: m, guidance: guidance}, nil
		})

	s.addTool(srv, "get_risk_trends",
		"Get the qualitative risk trends detected over recent weeks (schedule/cost index decline, near misses, inspection pass rate, rework cost, labor efficiency).",
		func(_ context.Context, c *series.Context) (result, error) {
			return result{data: map[string]any{"risks": analytics.DetectRiskTrends(c)}}, nil
		})

	s.addTool(srv, "get_productivity_benchmarks",
		"Compare the latest week's labor hours per unit, equipment utilization and material waste against the project-to-date averages.",
		func(_ context.Context, c *series.Context) (result, error) {
			p, ok := analytics.BenchmarkProductivity(c)
			if !ok {
				return result{}, errors.New("no productivity records")
			}
			return result{data: p}, nil
		})

	s.addTool(srv, "get_kpi_status",
		"Get the traffic-light KPI cards (good/warning/danger) for the latest week, graded against the configured thresholds.",
		func(_ context.Context, c *series.Context) (result, error) {
			kpis := analytics.EvaluateKPIs(c, s.cfg.Thresholds, s.cfg.Project.Currency)
			if kpis == nil {
				kpis = []analytics.KPI{}
			}
			return result{data: map[string]any{"kpis": kpis, "thresholds": s.cfg.Thresholds}}, nil
		})
}

func (s *Server) addTool(srv *mcp.Server, name, description string, fn toolFunc) {
	tool := &mcp.Tool{Name: name, Description: description}
	mcp.AddTool(srv, tool, func(ctx context.Context, _ *mcp.CallToolRequest, args DatasetArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		c, dir, err := s.loadContext(args.DataPath)
		if err != nil {
			return nil, nil, err
		}

		res, err := fn(ctx, c)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool failed")
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}

		env := WrapResponse(res.data, s.responseContext(c, dir), res.guidance)
		out, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode %s result: %w", name, err)
		}

		log.Debug().Str("tool", name).Str("path", dir).Dur("took", time.Since(start)).Msg("Tool call completed")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(out)}},
		}, nil, nil
	})
}

func (s *Server) responseContext(c *series.Context, dir string) ResponseContext {
	rc := ResponseContext{
		Project:  s.cfg.Project.Name,
		DataPath: dir,
		Weeks:    c.Weeks(),
	}
	if latest, ok := c.Schedule().Latest(); ok {
		rc.AsOf = latest.Date.Format(time.DateOnly)
	}
	return rc
}
