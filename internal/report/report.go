// Package report renders analysis results as a plain-text artifact and as
// terminal output.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/dataset"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

// Render produces the text report body.
func Render(sum *stats.Summary, clean *cleaning.Result, meta dataset.Meta) string {
	var b strings.Builder
	b.WriteString("Research Paper Metadata Analysis Report\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	b.WriteString("Dataset Overview:\n")
	fmt.Fprintf(&b, "- Source: %s (%d rows, %d columns, ~%s in memory)\n",
		meta.Name, meta.Rows, meta.Cols, humanBytes(meta.MemoryBytes))
	fmt.Fprintf(&b, "- Cleaned records: %d of %d (%d dropped)\n",
		len(clean.Records), clean.Input, clean.Dropped)
	if sum.Total > 0 {
		fmt.Fprintf(&b, "- Year range: %d - %d\n", sum.YearMin, sum.YearMax)
		fmt.Fprintf(&b, "- Peak year: %d (%d papers)\n", sum.PeakYear, sum.PeakCount)
		if len(sum.Journals) > 0 {
			fmt.Fprintf(&b, "- Top journal: %s (%d papers)\n", sum.Journals[0].Name, sum.Journals[0].Count)
		}
		fmt.Fprintf(&b, "- Unique journals: %d\n", sum.UniqueJournals)
		fmt.Fprintf(&b, "- Average title length: %.1f characters\n", sum.TitleLengths.Mean)
		fmt.Fprintf(&b, "- Average abstract length: %.1f characters\n", sum.AbstractLens.Mean)
	}
	b.WriteString("\n")

	if clean.Dropped > 0 {
		b.WriteString("Dropped Rows:\n")
		reasons := make([]string, 0, len(clean.Reasons))
		for r := range clean.Reasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Fprintf(&b, "- %s: %d\n", r, clean.Reasons[r])
		}
		b.WriteString("\n")
	}

	if sum.Total > 0 {
		b.WriteString("Top Journals:\n")
		for i, j := range sum.Journals {
			fmt.Fprintf(&b, "%2d. %s — %d papers (%.1f%%, cumulative %.1f%%)\n",
				i+1, j.Name, j.Count, j.Share, j.CumShare)
		}
		b.WriteString("\n")

		b.WriteString("Column Completeness:\n")
		cols := make([]string, 0, len(sum.Completeness))
		for c := range sum.Completeness {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			fmt.Fprintf(&b, "- %s: %.1f%%\n", c, sum.Completeness[c])
		}
		b.WriteString("\n")

		b.WriteString("Key Insights:\n")
		for _, in := range sum.Insights {
			fmt.Fprintf(&b, "- %s\n", in)
		}
	}
	return b.String()
}

// Write renders the report and writes it atomically to path.
func Write(path string, sum *stats.Summary, clean *cleaning.Result, meta dataset.Meta) error {
	body := Render(sum, clean, meta)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
