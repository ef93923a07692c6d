// Package charts renders analysis summaries as PNG images.
package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

// Artifact filenames, kept stable so downstream consumers can glob them.
const (
	FilePublicationTrends = "publication_trends.png"
	FileTopJournals       = "top_journals.png"
	FileTextOverview      = "text_analysis_overview.png"
)

const histogramBins = 30

// RenderAll writes the three standard charts into dir and returns the paths
// written. dir is created if needed.
func RenderAll(dir string, sum *stats.Summary, records []cleaning.Record) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir charts dir: %w", err)
	}
	var written []string
	renders := []struct {
		name string
		fn   func(path string) error
	}{
		{FilePublicationTrends, func(p string) error { return renderYearCounts(p, sum) }},
		{FileTopJournals, func(p string) error { return renderTopJournals(p, sum) }},
		{FileTextOverview, func(p string) error { return renderLengthOverview(p, records) }},
	}
	for _, r := range renders {
		path := filepath.Join(dir, r.name)
		if err := r.fn(path); err != nil {
			return written, fmt.Errorf("render %s: %w", r.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderYearCounts(path string, sum *stats.Summary) error {
	years := sum.Years()
	if len(years) == 0 {
		return fmt.Errorf("no year data")
	}
	bars := make([]chart.Value, 0, len(years))
	for _, y := range years {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(y),
			Value: float64(sum.YearCounts[y]),
		})
	}
	graph := chart.BarChart{
		Title:    "Publications by Year",
		Width:    1024,
		Height:   600,
		BarWidth: 24,
		Bars:     bars,
	}
	return renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

func renderTopJournals(path string, sum *stats.Summary) error {
	if len(sum.Journals) == 0 {
		return fmt.Errorf("no journal data")
	}
	bars := make([]chart.Value, 0, len(sum.Journals))
	for _, j := range sum.Journals {
		bars = append(bars, chart.Value{
			Label: truncateLabel(j.Name, 18),
			Value: float64(j.Count),
		})
	}
	graph := chart.BarChart{
		Title:    fmt.Sprintf("Top %d Journals", len(bars)),
		Width:    1280,
		Height:   720,
		BarWidth: 36,
		Bars:     bars,
	}
	return renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

// renderLengthOverview draws title and abstract length distributions as
// frequency polygons over a shared axis.
func renderLengthOverview(path string, records []cleaning.Record) error {
	var titleLens, abstractLens []float64
	for _, r := range records {
		if r.TitleLen > 0 {
			titleLens = append(titleLens, float64(r.TitleLen))
		}
		if r.AbstractLen > 0 {
			abstractLens = append(abstractLens, float64(r.AbstractLen))
		}
	}
	var series []chart.Series
	if xs, ys := histogram(titleLens, histogramBins); len(xs) > 1 {
		series = append(series, chart.ContinuousSeries{Name: "Title length", XValues: xs, YValues: ys})
	}
	if xs, ys := histogram(abstractLens, histogramBins); len(xs) > 1 {
		series = append(series, chart.ContinuousSeries{Name: "Abstract length", XValues: xs, YValues: ys})
	}
	if len(series) == 0 {
		return fmt.Errorf("no length data")
	}
	graph := chart.Chart{
		Title:  "Text Length Distribution",
		Width:  1280,
		Height: 600,
		XAxis:  chart.XAxis{Name: "Characters"},
		YAxis:  chart.YAxis{Name: "Frequency"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

// histogram bins vals and returns bin centers with their frequencies.
func histogram(vals []float64, bins int) (xs, ys []float64) {
	if len(vals) == 0 || bins <= 0 {
		return nil, nil
	}
	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []float64{min}, []float64{float64(len(vals))}
	}
	width := (max - min) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range vals {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	xs = make([]float64, bins)
	for i := range counts {
		xs[i] = min + width*(float64(i)+0.5)
	}
	return xs, counts
}

func truncateLabel(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
