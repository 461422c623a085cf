package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rostrace/rostrace/internal/plot"
)

// HTMLRenderer renders a generated chart into a standalone HTML
// document. It implements plot.LegendTarget so the legend manager can
// page entries straight into the page model.
type HTMLRenderer struct {
	title       string
	legendPages [][]plot.LegendEntry
	hideOnClick bool
}

// NewHTMLRenderer creates a renderer for one chart document
func NewHTMLRenderer(title string) *HTMLRenderer {
	return &HTMLRenderer{title: title}
}

// AddLegendPage implements plot.LegendTarget
func (r *HTMLRenderer) AddLegendPage(entries []plot.LegendEntry) {
	page := make([]plot.LegendEntry, len(entries))
	copy(page, entries)
	r.legendPages = append(r.legendPages, page)
}

// EnableHideOnClick implements plot.LegendTarget
func (r *HTMLRenderer) EnableHideOnClick() {
	r.hideOnClick = true
}

// legendPageSize is the number of entries per legend page, matching
// the interactive chart layout.
const legendPageSize = 10

// PageLegend feeds a chart's legend into a renderer in display pages
func PageLegend(target plot.LegendTarget, legend []plot.LegendEntry) {
	for start := 0; start < len(legend); start += legendPageSize {
		end := start + legendPageSize
		if end > len(legend) {
			end = len(legend)
		}
		target.AddLegendPage(legend[start:end])
	}
	if len(legend) > 0 {
		target.EnableHideOnClick()
	}
}

type pageModel struct {
	Title       string
	Subtitle    string
	ChartJSON   template.JS
	LegendPages [][]plot.LegendEntry
	HideOnClick bool
	Truncated   bool
}

// RenderScheduling renders a callback scheduling chart to HTML
func (r *HTMLRenderer) RenderScheduling(chart *plot.SchedulingChart) ([]byte, error) {
	subtitle := fmt.Sprintf("callback scheduling, %d callbacks, x axis %s",
		len(chart.Items), chart.XAxisType)
	return r.render(chart, subtitle, chart.LegendTruncated)
}

// RenderTimeSeries renders a time-series chart to HTML
func (r *HTMLRenderer) RenderTimeSeries(chart *plot.TimeSeriesChart) ([]byte, error) {
	subtitle := fmt.Sprintf("%s time series, %d entities, x axis %s",
		chart.Metric, len(chart.Items), chart.XAxisType)
	return r.render(chart, subtitle, chart.LegendTruncated)
}

func (r *HTMLRenderer) render(chart any, subtitle string, truncated bool) ([]byte, error) {
	payload, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart: %w", err)
	}

	model := pageModel{
		Title:       r.title,
		Subtitle:    subtitle,
		ChartJSON:   template.JS(payload),
		LegendPages: r.legendPages,
		HideOnClick: r.hideOnClick,
		Truncated:   truncated,
	}

	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("failed to execute chart template: %w", err)
	}
	return buf.Bytes(), nil
}

var chartTemplate = template.Must(template.New("chart").Parse(tmplChart))

const tmplChart = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
main{padding:16px}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:4px}
.sub{font-size:11px;color:#8b949e;margin-bottom:12px}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117}
.legend{display:flex;gap:8px;flex-wrap:wrap;padding:8px 12px}
.legend-entry{display:inline-block;padding:2px 8px;border:1px solid #30363d;border-radius:4px;font-size:11px;color:#58a6ff;cursor:default}
.legend-entry.clickable{cursor:pointer}
.legend-entry.hidden{opacity:.35}
.warn{color:#f59e0b;font-size:11px;padding:4px 12px}
#chart{width:100%;min-height:420px}
</style>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<div class="sub">{{.Subtitle}}</div>
{{if .Truncated}}<div class="warn">legend truncated, raise max legends or enable show all</div>{{end}}
<div class="section">
<div class="section-hdr">Legend</div>
{{range .LegendPages}}<div class="legend">
{{range .}}<span class="legend-entry{{if $.HideOnClick}} clickable{{end}}" data-renderers="{{range .Renderers}}{{.}} {{end}}">{{.Label}}</span>
{{end}}</div>
{{end}}</div>
<div class="section">
<div class="section-hdr">Chart</div>
<div id="chart"></div>
</div>
</main>
<script>
const chartData = {{.ChartJSON}};
const hideOnClick = {{if .HideOnClick}}true{{else}}false{{end}};
(function(){
  const el = document.getElementById('chart');
  el.textContent = JSON.stringify(chartData, null, 1);
  if (!hideOnClick) return;
  document.querySelectorAll('.legend-entry.clickable').forEach(e => {
    e.addEventListener('click', () => e.classList.toggle('hidden'));
  });
})();
</script>
</body>
</html>
`
