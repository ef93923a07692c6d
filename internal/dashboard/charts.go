package dashboard

import (
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/paperlens/paperlens-cli/internal/stats"
)

// Charts handles GET /api/v1/datasets/{id}/charts: an HTML page with the
// publications-by-year line chart and the top-journals bar chart, honoring
// the same filters as the summary endpoint.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	d, f, ok := h.datasetFromRequest(w, r)
	if !ok {
		return
	}
	sum := stats.Summarize(f.apply(d.Clean.Records), f.topN)

	page := components.NewPage()
	page.PageTitle = "Paperlens — " + d.Meta.Name
	if line := yearLineChart(sum); line != nil {
		page.AddCharts(line)
	}
	if bar := journalBarChart(sum); bar != nil {
		page.AddCharts(bar)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render charts")
	}
}

func yearLineChart(sum *stats.Summary) *charts.Line {
	years := sum.Years()
	if len(years) == 0 {
		return nil
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Publications by Year"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	data := make([]opts.LineData, 0, len(years))
	for _, y := range years {
		data = append(data, opts.LineData{Value: sum.YearCounts[y]})
	}
	line.SetXAxis(years).AddSeries("Publications", data)
	return line
}

func journalBarChart(sum *stats.Summary) *charts.Bar {
	if len(sum.Journals) == 0 {
		return nil
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top Journals"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	// Reverse so the biggest journal sits at the top after axis flip.
	names := make([]string, 0, len(sum.Journals))
	data := make([]opts.BarData, 0, len(sum.Journals))
	for i := len(sum.Journals) - 1; i >= 0; i-- {
		j := sum.Journals[i]
		names = append(names, j.Name)
		data = append(data, opts.BarData{Value: j.Count})
	}
	bar.SetXAxis(names).AddSeries("Papers", data)
	bar.XYReversal()
	return bar
}
