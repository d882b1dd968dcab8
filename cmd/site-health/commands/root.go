package commands

import (
	"context"

	"site-health/internal/config"
	"site-health/internal/dataset"
	"site-health/internal/logging"
	"site-health/internal/mcp"
	"site-health/internal/series"
	"site-health/internal/visuals"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	dataDir string
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "site-health",
	Short: "Construction project health analytics",
	Long: `site-health turns weekly schedule, cost, productivity, safety and quality records
into earned-value metrics, a composite health score, completion and cost forecasts,
risk trends and KPI status cards.

Run without a subcommand it serves the analytics as MCP tools over stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The log directory comes from configuration, so only warnings surface until it is known.
		zerolog.SetGlobalLevel(zerolog.WarnLevel)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		logging.Init(verbose, cfg.LogDir)
		if dataDir != "" {
			cfg.DataPath = dataDir
		}
		mcp.Version = Version

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("data", cfg.DataPath).
			Msg("site-health starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "dataset directory (overrides DATA_PATH)")
}

// loadProject reads the configured dataset.
func loadProject() (*series.Context, error) {
	c, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.DataPath).Int("weeks", c.Weeks()).Msg("Project data loaded")
	return c, nil
}

// projectMeta describes the configured project for rendered documents.
func projectMeta() visuals.Meta {
	return visuals.Meta{
		ProjectName: cfg.Project.Name,
		Currency:    cfg.Project.Currency,
		StartDate:   cfg.Project.StartDate,
		PlannedEnd:  cfg.Project.EndDate,
	}
}
