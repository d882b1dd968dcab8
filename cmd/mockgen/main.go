package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"site-health/cmd/mockgen/engine"
	"site-health/internal/dataset"
)

func main() {
	def := engine.DefaultConfig()

	scenario := flag.String("scenario", def.Scenario, "Scenario to generate: baseline, distressed, healthy")
	outDir := flag.String("out", "./data", "Output directory for the generated dataset")
	format := flag.String("format", string(dataset.FormatCSV), "Output format: csv, json, parquet")
	seed := flag.Int64("seed", def.Seed, "Random seed")
	budget := flag.Float64("budget", def.Budget, "Total project budget")
	start := flag.String("start", def.Start.Format(time.DateOnly), "Project start date (YYYY-MM-DD)")
	end := flag.String("end", def.End.Format(time.DateOnly), "Planned completion date (YYYY-MM-DD)")
	asOf := flag.String("asof", def.AsOf.Format(time.DateOnly), "Last reported week (YYYY-MM-DD)")
	flag.Parse()

	f, err := dataset.ParseFormat(*format)
	if err != nil {
		fail(err)
	}

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Budget:   *budget,
		Seed:     *seed,
		Start:    mustDate("start", *start),
		End:      mustDate("end", *end),
		AsOf:     mustDate("asof", *asOf),
	}

	fmt.Printf("Generating scenario '%s' (seed %d, %s to %s) as %s into %s...\n",
		cfg.Scenario, cfg.Seed, *start, *asOf, f, *outDir)

	bundle, err := engine.Generate(cfg)
	if err != nil {
		fail(err)
	}

	if err := dataset.Save(*outDir, f, bundle); err != nil {
		fail(fmt.Errorf("failed to save mock data: %w", err))
	}

	fmt.Printf("Done. %d weeks written.\n", len(bundle.Schedule))
}

func mustDate(name, value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		fail(fmt.Errorf("invalid -%s date %q: %w", name, value, err))
	}
	return t
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
