package visuals

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("report").
	Funcs(template.FuncMap{"statusClass": statusClass}).
	Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 1100px; margin: 2rem auto; color: #1f2933; }
h1 { color: #1f4e79; }
table { border-collapse: collapse; margin-bottom: 1rem; }
th, td { border: 1px solid #d9e2ec; padding: 0.35rem 0.75rem; text-align: left; }
th { background: #f0f4f8; }
.status-good, .status-excellent { color: #28a745; font-weight: bold; }
.status-warning, .status-fair { color: #b8860b; font-weight: bold; }
.status-danger, .status-poor { color: #dc3545; font-weight: bold; }
</style>
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Subtitle}}<p><em>{{.}}</em></p>{{end}}
{{range .Sections}}
<section>
<h2>{{.Heading}}</h2>
{{with .Table}}<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td class="{{statusClass .}}">{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>{{end}}
{{with .Items}}<ul>
{{range .}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{with .Chart}}<pre class="mermaid">
{{.}}</pre>{{end}}
</section>
{{end}}
</body>
</html>
`))

// statusClass highlights cells that hold a status label.
func statusClass(cell string) string {
	switch cell {
	case "good", "warning", "danger", "excellent", "fair", "poor":
		return "status-" + cell
	}
	return ""
}

// WriteHTML renders the document as a standalone page. Mermaid charts are drawn client-side.
func (d Document) WriteHTML(w io.Writer) error {
	if err := pageTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
