package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
)

// reportTemplate renders a run as a standalone HTML page. html/template
// escapes every interpolated field, so hostile command text or captured
// output cannot inject markup into the report.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Attack Simulation Report</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #fafafa; color: #222; }
h1 { margin-bottom: 0.2em; }
.meta { color: #666; margin-bottom: 1.5em; }
.summary { display: flex; gap: 2em; margin-bottom: 1.5em; }
.summary div { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 0.8em 1.2em; }
.summary .num { font-size: 1.6em; font-weight: bold; display: block; }
.filters button { margin-right: 0.5em; padding: 0.3em 0.9em; cursor: pointer; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; background: #fff; }
th, td { border: 1px solid #ddd; padding: 0.5em 0.7em; text-align: left; vertical-align: top; }
th { background: #eee; }
td.command { font-family: monospace; white-space: pre-wrap; }
td.error { font-family: monospace; white-space: pre-wrap; color: #b71c1c; }
.status-ok { background: #4caf50; color: #fff; }
.status-fail { background: #f44336; color: #fff; }
.severity-critical { background: #f44336; color: #fff; }
.severity-high { background: #ff9800; color: #fff; }
.severity-medium { background: #ffeb3b; color: #000; }
.severity-low { background: #4caf50; color: #fff; }
.severity-informational { background: #2196f3; color: #fff; }
</style>
</head>
<body>
<h1>Attack Simulation Report</h1>
<p class="meta">Run {{.Run.ID}} &middot; generated {{.Run.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<div class="summary">
<div><span class="num">{{.Summary.Total}}</span>total</div>
<div><span class="num">{{.Summary.Succeeded}}</span>succeeded</div>
<div><span class="num">{{.Summary.Failed}}</span>failed</div>
<div><span class="num">{{printf "%.2f%%" .Summary.SuccessRate}}</span>success rate</div>
</div>

<div class="filters">
<button onclick="filterRows('')">All</button>
<button onclick="filterRows('status-ok')">Succeeded</button>
<button onclick="filterRows('status-fail')">Failed</button>
</div>

<table id="results">
<tr><th>Command</th><th>Description</th><th>Severity</th><th>MITRE ATT&amp;CK</th><th>Status</th><th>Error Message</th></tr>
{{range .Run.Records}}<tr class="{{.StatusClass}}-row">
<td class="command">{{.Command}}</td>
<td>{{.Description}}</td>
<td class="{{.Severity.CSSClass}}">{{.Severity}}</td>
<td>{{.MitreAttackTag}}</td>
<td class="{{.StatusClass}}">{{.Status}}</td>
<td class="error">{{.ErrorMessage}}</td>
</tr>
{{end}}</table>

<script>
function filterRows(cls) {
  var rows = document.querySelectorAll('#results tr');
  for (var i = 1; i < rows.length; i++) {
    rows[i].style.display = (cls === '' || rows[i].className === cls + '-row') ? '' : 'none';
  }
}
</script>
</body>
</html>
`))

// RenderHTML writes the HTML report for run to w.
func RenderHTML(w io.Writer, run *Run) error {
	data := struct {
		Run     *Run
		Summary Summary
	}{Run: run, Summary: run.Summary()}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// WriteHTML renders the report for run to a file at path. The run
// itself is untouched, so a failed write can be retried against a
// different path without re-executing anything.
func WriteHTML(path string, run *Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := RenderHTML(f, run); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}
