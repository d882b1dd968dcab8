package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"site-health/internal/analytics"
	"site-health/internal/render"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportFormat string
	reportOut    string
	reportOpen   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full project health report",
	Example: `  site-health report --format text
  site-health report --data ./data --format html --out report.html --open`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(reportFormat)
		if err != nil {
			return err
		}

		c, err := loadProject()
		if err != nil {
			return err
		}

		report, err := analytics.BuildReport(cmd.Context(), c, cfg.Options())
		if err != nil {
			return err
		}
		meta := projectMeta()

		out := reportOut
		if out == "" && reportOpen {
			out = filepath.Join(os.TempDir(), "site-health-report"+extension(format))
		}
		if out == "" {
			return render.Report(cmd.OutOrStdout(), format, report, c, meta)
		}

		if err := writeFile(out, func(w io.Writer) error {
			return render.Report(w, format, report, c, meta)
		}); err != nil {
			return err
		}
		log.Info().Str("path", out).Str("format", string(format)).Msg("Report written")

		if reportOpen {
			if err := browser.OpenFile(out); err != nil {
				return fmt.Errorf("failed to open %s: %w", out, err)
			}
		}
		return nil
	},
}

func extension(f render.Format) string {
	switch f {
	case render.FormatJSON:
		return ".json"
	case render.FormatMarkdown:
		return ".md"
	case render.FormatHTML:
		return ".html"
	}
	return ".txt"
}

func writeFile(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", string(render.FormatText), "output format: json, text, markdown or html")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "open the written report with the system viewer")
	rootCmd.AddCommand(reportCmd)
}
