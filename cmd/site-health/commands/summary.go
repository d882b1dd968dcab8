package commands

import (
	"fmt"

	"site-health/internal/analytics"
	"site-health/internal/render"
	"site-health/internal/visuals"

	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the executive summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadProject()
		if err != nil {
			return err
		}

		summary := analytics.Assemble(c, cfg.Options())
		if summaryJSON {
			return render.JSON(cmd.OutOrStdout(), summary)
		}

		doc := visuals.BuildDocument(analytics.Report{ExecutiveSummary: summary}, c, projectMeta())
		// Executive Summary and Primary Risks lead every document.
		doc.Sections = doc.Sections[:2]
		if err := render.Text(cmd.OutOrStdout(), doc); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(summaryCmd)
}
