package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paperlens/paperlens-cli/internal/charts"
	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/dataset"
	"github.com/paperlens/paperlens-cli/internal/report"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

var (
	anaSample    int
	anaTop       int
	anaOutputDir string
	anaNoCharts  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full load/clean/summarize pipeline on a metadata CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		path := args[0]
		p := report.NewPrinter()

		sample := cfg.SampleSize
		if cmd.Flags().Changed("sample") {
			sample = anaSample
		}
		topN := cfg.TopJournals
		if cmd.Flags().Changed("top") {
			topN = anaTop
		}
		outDir := cfg.OutputDir
		if cmd.Flags().Changed("output-dir") {
			outDir = anaOutputDir
		}
		chartsDir := cfg.ChartsDir
		if cmd.Flags().Changed("output-dir") {
			chartsDir = filepath.Join(outDir, "visualizations")
		}

		t, err := dataset.Load(path, dataset.Options{MaxRows: sample})
		if err != nil {
			return err
		}
		p.Success("Loaded %d rows, %d columns (~%d bytes in memory)", t.Meta.Rows, t.Meta.Cols, t.Meta.MemoryBytes)
		if t.Meta.Truncated {
			p.Warning("Row cap %d reached; remaining rows skipped", sample)
		}

		clean := cleaning.Clean(t)
		p.Success("Cleaned %d of %d records (%d dropped)", len(clean.Records), clean.Input, clean.Dropped)

		sum := stats.Summarize(clean.Records, topN)
		p.Summary(sum, clean)

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		reportPath := filepath.Join(outDir, "analysis_report.txt")
		if err := report.Write(reportPath, sum, clean, t.Meta); err != nil {
			return err
		}
		p.Success("Wrote report to %s", reportPath)

		if !anaNoCharts {
			if sum.Total == 0 {
				p.Warning("No cleaned records; skipping charts")
			} else {
				written, err := charts.RenderAll(chartsDir, sum, clean.Records)
				if err != nil {
					return err
				}
				for _, f := range written {
					p.Success("Wrote chart %s", f)
				}
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&anaSample, "sample", 0, "max rows to load (0 = config default)")
	analyzeCmd.Flags().IntVar(&anaTop, "top", 0, "journals to include in the ranking (0 = config default)")
	analyzeCmd.Flags().StringVar(&anaOutputDir, "output-dir", "", "directory for the report and charts")
	analyzeCmd.Flags().BoolVar(&anaNoCharts, "no-charts", false, "skip chart rendering")
	rootCmd.AddCommand(analyzeCmd)
}
