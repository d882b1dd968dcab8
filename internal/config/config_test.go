package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `PROJECT_NAME='Tower "B" Fit-Out'`
	path := filepath.Join(t.TempDir(), ".env.test")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `Tower "B" Fit-Out`
	if env["PROJECT_NAME"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["PROJECT_NAME"])
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_PATH", "LOGS_FOLDER", "PROJECT_NAME", "PROJECT_TOTAL_BUDGET", "PROJECT_START_DATE", "PROJECT_END_DATE", "PROJECT_CURRENCY", "KPI_SPI_WARNING", "KPI_PUNCH_LIST_THRESHOLD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := fromEnv("/opt/site-health")
	if err != nil {
		t.Fatalf("fromEnv failed: %v", err)
	}

	if cfg.DataPath != filepath.Join("/opt/site-health", "data") {
		t.Errorf("Expected data path under the binary directory, got %s", cfg.DataPath)
	}
	if cfg.LogDir != filepath.Join("/opt/site-health", "logs") {
		t.Errorf("Expected log dir under the binary directory, got %s", cfg.LogDir)
	}
	if cfg.Project.TotalBudget != 5000000 {
		t.Errorf("Expected default budget 5000000, got %v", cfg.Project.TotalBudget)
	}
	if cfg.Project.Currency != "USD" {
		t.Errorf("Expected USD, got %s", cfg.Project.Currency)
	}
	if !cfg.Project.StartDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start date %v", cfg.Project.StartDate)
	}
	if cfg.Thresholds.SPIWarning != 0.95 || cfg.Thresholds.PunchListThreshold != 20 {
		t.Errorf("Expected default thresholds, got %+v", cfg.Thresholds)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", "/srv/data")
	t.Setenv("PROJECT_TOTAL_BUDGET", "12500000")
	t.Setenv("PROJECT_CURRENCY", "EUR")
	t.Setenv("PROJECT_START_DATE", "2025-03-01")
	t.Setenv("PROJECT_END_DATE", "2026-06-30")
	t.Setenv("KPI_TRIR_WARNING", "4.5")
	t.Setenv("KPI_DAYS_SINCE_INCIDENT_GOOD", "60")

	cfg, err := fromEnv("")
	if err != nil {
		t.Fatalf("fromEnv failed: %v", err)
	}

	opts := cfg.Options()
	if opts.TotalBudget != 12500000 || opts.Currency != "EUR" {
		t.Errorf("Unexpected options %+v", opts)
	}
	if cfg.DataPath != "/srv/data" {
		t.Errorf("Expected /srv/data, got %s", cfg.DataPath)
	}
	if opts.Thresholds.TRIRWarning != 4.5 || opts.Thresholds.DaysSinceIncidentGood != 60 {
		t.Errorf("Threshold overrides not applied: %+v", opts.Thresholds)
	}
	if cfg.Project.EndDate.Year() != 2026 {
		t.Errorf("Unexpected end date %v", cfg.Project.EndDate)
	}
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("KPI_CPI_WARNING", "ninety")
	t.Setenv("KPI_PUNCH_LIST_THRESHOLD", "2.5")
	t.Setenv("PROJECT_START_DATE", "15/01/2024")
	t.Setenv("PROJECT_END_DATE", "")
	t.Setenv("PROJECT_TOTAL_BUDGET", "")
	os.Unsetenv("PROJECT_END_DATE")
	os.Unsetenv("PROJECT_TOTAL_BUDGET")

	cfg, err := fromEnv("")
	if err != nil {
		t.Fatalf("fromEnv failed: %v", err)
	}
	if cfg.Thresholds.CPIWarning != 0.95 {
		t.Errorf("Expected fallback 0.95, got %v", cfg.Thresholds.CPIWarning)
	}
	if cfg.Thresholds.PunchListThreshold != 20 {
		t.Errorf("Expected fallback 20, got %v", cfg.Thresholds.PunchListThreshold)
	}
	if cfg.Project.StartDate.Month() != time.January {
		t.Errorf("Expected default start date, got %v", cfg.Project.StartDate)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero budget", map[string]string{"PROJECT_TOTAL_BUDGET": "0"}},
		{"negative budget", map[string]string{"PROJECT_TOTAL_BUDGET": "-10"}},
		{"end before start", map[string]string{"PROJECT_START_DATE": "2024-06-01", "PROJECT_END_DATE": "2024-05-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := fromEnv(""); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
