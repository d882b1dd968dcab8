package commands

import (
	"fmt"

	"site-health/internal/analytics"
	"site-health/internal/render"
	"site-health/internal/visuals"

	"github.com/spf13/cobra"
)

var kpiJSON bool

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Print the KPI status cards for the latest week",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadProject()
		if err != nil {
			return err
		}

		kpis := analytics.EvaluateKPIs(c, cfg.Thresholds, cfg.Project.Currency)
		if kpiJSON {
			if kpis == nil {
				kpis = []analytics.KPI{}
			}
			return render.JSON(cmd.OutOrStdout(), kpis)
		}
		if len(kpis) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No weekly records to grade.")
			return nil
		}

		t := visuals.Table{Headers: []string{"KPI", "Value", "Status"}}
		for _, k := range kpis {
			t.Rows = append(t.Rows, []string{k.Name, k.Display, string(k.Status)})
		}
		return render.Table(cmd.OutOrStdout(), t)
	},
}

func init() {
	kpiCmd.Flags().BoolVar(&kpiJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(kpiCmd)
}
