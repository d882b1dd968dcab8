package commands

import (
	"errors"
	"fmt"

	"site-health/internal/dataset"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset against the record invariants",
	Long: `Checks that the five series share one week axis with strictly increasing dates,
that amounts are non-negative and percentages within [0,100], that passed inspections
never exceed conducted ones, and that the incident counter resets on incidents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		format, err := dataset.Detect(cfg.DataPath)
		if err != nil {
			return err
		}

		c, err := dataset.LoadFormat(cfg.DataPath, format)
		var verr *dataset.ValidationError
		if errors.As(err, &verr) {
			red := color.New(color.FgRed).SprintFunc()
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "%s %s\n", red("✗"), p)
			}
			return fmt.Errorf("dataset in %s has %d problems", cfg.DataPath, len(verr.Problems))
		}
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(out, "%s %s dataset in %s is valid (%d weeks)\n", green("✓"), format, cfg.DataPath, c.Weeks())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
