// Package render writes an analytics report in one of the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"site-health/internal/analytics"
	"site-health/internal/series"
	"site-health/internal/visuals"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Format selects the output representation.
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format, for flag help.
var Formats = []Format{FormatJSON, FormatText, FormatMarkdown, FormatHTML}

var (
	goodColor    = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	dangerColor  = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want json, text, markdown or html)", s)
}

// Report writes the full report in the requested format.
func Report(w io.Writer, format Format, report analytics.Report, c *series.Context, meta visuals.Meta) error {
	switch format {
	case FormatJSON:
		return JSON(w, report)
	case FormatText:
		return Text(w, visuals.BuildDocument(report, c, meta))
	case FormatMarkdown:
		_, err := io.WriteString(w, visuals.BuildDocument(report, c, meta).Markdown())
		return err
	case FormatHTML:
		return visuals.BuildDocument(report, c, meta).WriteHTML(w)
	}
	return fmt.Errorf("unknown format %q", format)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Text writes the document as headed console tables. Charts are left out.
func Text(w io.Writer, doc visuals.Document) error {
	fmt.Fprintln(w, headingColor.Sprint(doc.Title))
	if doc.Subtitle != "" {
		fmt.Fprintln(w, mutedColor.Sprint(doc.Subtitle))
	}

	for _, s := range doc.Sections {
		if s.Table == nil && len(s.Items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", headingColor.Sprint(s.Heading))
		if s.Table != nil {
			if err := Table(w, *s.Table); err != nil {
				return err
			}
		}
		for _, item := range s.Items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
	return nil
}

// Table renders one document table, coloring status cells.
func Table(w io.Writer, t visuals.Table) error {
	table := tablewriter.NewWriter(w)
	table.Header(t.Headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = Status(cell)
		}
		data = append(data, cells)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Status colors a status label; any other text is returned unchanged.
func Status(label string) string {
	switch label {
	case string(analytics.KPIGood), analytics.StatusExcellent:
		return goodColor.Sprint(label)
	case string(analytics.KPIWarning), analytics.StatusFair:
		return warningColor.Sprint(label)
	case string(analytics.KPIDanger), analytics.StatusPoor:
		return dangerColor.Sprint(label)
	}
	return label
}
