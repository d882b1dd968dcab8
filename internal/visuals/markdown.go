package visuals

import (
	"fmt"
	"strings"
)

// Markdown renders the document as GitHub-flavoured Markdown with fenced Mermaid charts.
func (d Document) Markdown() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", d.Title))
	if d.Subtitle != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", d.Subtitle))
	}

	for _, s := range d.Sections {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", s.Heading))
		if s.Table != nil {
			writeMarkdownTable(&sb, *s.Table)
		}
		for _, item := range s.Items {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
		if s.Chart != "" {
			sb.WriteString(Fence(s.Chart))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Fence wraps a Mermaid definition in a Markdown code block.
func Fence(chart string) string {
	return "```mermaid\n" + strings.TrimRight(chart, "\n") + "\n```"
}

func writeMarkdownTable(sb *strings.Builder, t Table) {
	sb.WriteString("| " + strings.Join(escapeCells(t.Headers), " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(t.Headers)) + "\n")
	for _, row := range t.Rows {
		sb.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
