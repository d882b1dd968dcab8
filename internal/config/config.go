package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"site-health/internal/analytics"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// ProjectConfig describes the single project under analysis.
type ProjectConfig struct {
	Name        string
	TotalBudget float64
	StartDate   time.Time
	EndDate     time.Time
	Currency    string
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Project    ProjectConfig
	Thresholds analytics.Thresholds
	DataPath   string
	LogDir     string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Executable directory first (the MCP host usually launches the binary from elsewhere)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir)
}

// fromEnv resolves the configuration from the process environment only.
func fromEnv(exeDir string) (*AppConfig, error) {
	base := exeDir
	if base == "" {
		base = "."
	}

	dataPath := getEnv("DATA_PATH", filepath.Join(base, "data"))
	logDir := getEnv("LOGS_FOLDER", filepath.Join(base, "logs"))

	budget := getEnvFloat("PROJECT_TOTAL_BUDGET", 5000000)
	if budget <= 0 {
		return nil, fmt.Errorf("PROJECT_TOTAL_BUDGET must be positive, got %v", budget)
	}

	start := getEnvDate("PROJECT_START_DATE", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	end := getEnvDate("PROJECT_END_DATE", time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))
	if !end.After(start) {
		return nil, fmt.Errorf("PROJECT_END_DATE %s is not after PROJECT_START_DATE %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	def := analytics.DefaultThresholds()
	cfg := &AppConfig{
		Project: ProjectConfig{
			Name:        getEnv("PROJECT_NAME", "Commercial Building Construction"),
			TotalBudget: budget,
			StartDate:   start,
			EndDate:     end,
			Currency:    getEnv("PROJECT_CURRENCY", "USD"),
		},
		Thresholds: analytics.Thresholds{
			SPIWarning:                 getEnvFloat("KPI_SPI_WARNING", def.SPIWarning),
			CPIWarning:                 getEnvFloat("KPI_CPI_WARNING", def.CPIWarning),
			DaysVarianceWarning:        getEnvFloat("KPI_DAYS_VARIANCE_WARNING", def.DaysVarianceWarning),
			DaysSinceIncidentGood:      getEnvInt("KPI_DAYS_SINCE_INCIDENT_GOOD", def.DaysSinceIncidentGood),
			DaysSinceIncidentWarning:   getEnvInt("KPI_DAYS_SINCE_INCIDENT_WARNING", def.DaysSinceIncidentWarning),
			TRIRGood:                   getEnvFloat("KPI_TRIR_GOOD", def.TRIRGood),
			TRIRWarning:                getEnvFloat("KPI_TRIR_WARNING", def.TRIRWarning),
			PassRateGood:               getEnvFloat("KPI_PASS_RATE_GOOD", def.PassRateGood),
			PassRateWarning:            getEnvFloat("KPI_PASS_RATE_WARNING", def.PassRateWarning),
			PunchListThreshold:         getEnvInt("KPI_PUNCH_LIST_THRESHOLD", def.PunchListThreshold),
			EquipmentUtilizationTarget: getEnvFloat("KPI_EQUIPMENT_UTILIZATION_TARGET", def.EquipmentUtilizationTarget),
			MaterialWasteTarget:        getEnvFloat("KPI_MATERIAL_WASTE_TARGET", def.MaterialWasteTarget),
		},
		DataPath: dataPath,
		LogDir:   logDir,
	}

	return cfg, nil
}

// Options converts the configuration into the analytics inputs.
func (c *AppConfig) Options() analytics.Options {
	return analytics.Options{
		TotalBudget: c.Project.TotalBudget,
		Currency:    c.Project.Currency,
		Thresholds:  c.Thresholds,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Float64("default", fallback).Msg("Invalid number, using default")
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", value).Int("default", fallback).Msg("Invalid integer, using default")
	}
	return fallback
}

func getEnvDate(key string, fallback time.Time) time.Time {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.Parse(dateLayout, value)
		if err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid date, expected YYYY-MM-DD; using default")
	}
	return fallback
}
