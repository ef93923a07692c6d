package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

// Printer writes colorized status lines and summary tables to the terminal.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter builds a Printer honoring NO_COLOR and dumb terminals.
func NewPrinter() *Printer {
	useColors := true
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	if os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return &Printer{out: os.Stdout, err: os.Stderr, useColors: useColors}
}

// NewPrinterWithWriter is used by tests.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{out: w, err: w}
}

// Success prints a green checkmark line.
func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Warning prints a yellow warning line to stderr.
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "⚠ "+format+"\n", args...)
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Summary prints the journal ranking and drop histogram as terminal tables.
func (p *Printer) Summary(sum *stats.Summary, clean *cleaning.Result) {
	if clean.Dropped > 0 {
		p.Info("")
		p.Info("Dropped rows (%d):", clean.Dropped)
		reasons := make([]string, 0, len(clean.Reasons))
		for r := range clean.Reasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		rows := make([][]string, 0, len(reasons))
		for _, r := range reasons {
			rows = append(rows, []string{r, strconv.Itoa(clean.Reasons[r])})
		}
		renderTable(p.out, []string{"Reason", "Rows"}, rows)
	}
	if len(sum.Journals) > 0 {
		p.Info("")
		p.Info("Top journals:")
		rows := make([][]string, 0, len(sum.Journals))
		for _, j := range sum.Journals {
			rows = append(rows, []string{
				j.Name,
				strconv.Itoa(j.Count),
				fmt.Sprintf("%.1f%%", j.Share),
				fmt.Sprintf("%.1f%%", j.CumShare),
			})
		}
		renderTable(p.out, []string{"Journal", "Papers", "Share", "Cumulative"}, rows)
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := newTable(w)
	t.Header(headers)
	t.Bulk(rows)
	t.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}
