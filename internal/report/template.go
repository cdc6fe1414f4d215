package report

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2937; }
  h1 { margin-bottom: 0; }
  .meta { color: #6b7280; margin-top: .25rem; }
  .cards { display: flex; gap: 1rem; margin: 1.5rem 0; }
  .card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem; flex: 1; }
  .card h2 { margin: 0 0 .5rem; font-size: 1.1rem; }
  .tier { font-size: .8rem; text-transform: uppercase; color: #b45309; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { border-bottom: 1px solid #e5e7eb; padding: .4rem .6rem; text-align: left; }
  td.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Scope}} &middot; {{.Snapshot.Range.Label}} &middot; {{.Snapshot.RecordCount}} records &middot; generated {{.Snapshot.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>

<div class="cards">
{{- range .Cards}}
  <div class="card">
    <h2>{{.Label}}</h2>
    <div>Success rate: <strong>{{pct .Metrics.SuccessRate}}</strong></div>
    <div>Approved: {{.Metrics.Approved}} / {{.Metrics.Total}}</div>
    <div>{{.RejectedLabel}}: {{.Metrics.Rejected}}</div>
    <div>Current streak: {{.Metrics.CurrentStreak}} <span class="tier">{{.Tier}}</span></div>
    <div>Longest streak: {{.Metrics.LongestStreak}}</div>
  </div>
{{- end}}
</div>

<h2>Daily success rate</h2>
{{- if .RateChart}}
<pre class="mermaid">
{{.RateChart}}</pre>
{{- end}}
<table>
  <thead><tr><th>Date</th><th>Success rate</th></tr></thead>
  <tbody>
  {{- range .Snapshot.History}}
    <tr><td>{{.Date}}</td><td class="num">{{pct .SuccessRate}}</td></tr>
  {{- else}}
    <tr><td colspan="2">No submissions in this period.</td></tr>
  {{- end}}
  </tbody>
</table>

<h2>Branches</h2>
{{- if .StreakChart}}
<pre class="mermaid">
{{.StreakChart}}</pre>
{{- end}}
<table>
  <thead><tr><th>Branch</th><th>Handover</th><th>Deposits</th><th>Invoices</th><th>Success rate</th><th>Records</th><th>Tier</th></tr></thead>
  <tbody>
  {{- range .Snapshot.Leaderboard}}
    <tr><td>{{.BranchName}}</td><td class="num">{{.Streaks.Handover}}</td><td class="num">{{.Streaks.Deposits}}</td><td class="num">{{.Streaks.Invoices}}</td><td class="num">{{pct .SuccessRate}}</td><td class="num">{{.RecordCount}}</td><td>{{tier .Streaks}}</td></tr>
  {{- end}}
  </tbody>
  <tfoot>
    <tr><th>Average</th><td class="num">{{.Snapshot.Averages.Streaks.Handover}}</td><td class="num">{{.Snapshot.Averages.Streaks.Deposits}}</td><td class="num">{{.Snapshot.Averages.Streaks.Invoices}}</td><td class="num">{{pct .Snapshot.Averages.SuccessRate}}</td><td></td><td></td></tr>
  </tfoot>
</table>

<script type="module">
  import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
  mermaid.initialize({ startOnLoad: true });
</script>
</body>
</html>
`
