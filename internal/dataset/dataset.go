// Package dataset loads research-paper metadata tables from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column names the loader requires. The date column accepts a few aliases
// because exports of the same corpus disagree on the header.
const (
	ColTitle    = "title"
	ColJournal  = "journal"
	ColAbstract = "abstract"
)

var dateAliases = []string{"publish_time", "publication_date", "date"}

// Options controls loading behavior.
type Options struct {
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects tab for .tsv files.
	Delimiter rune
}

// LoadError indicates the file is missing, unreadable, or lacks a required
// column. It is fatal: callers must halt the pipeline.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Meta describes a loaded table.
type Meta struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Truncated   bool   `json:"truncated"`
	MemoryBytes int    `json:"memory_bytes"`
}

// Table is an in-memory view of the source CSV. Rows are padded to header
// width so column indexes are always valid.
type Table struct {
	Header []string
	Rows   [][]string
	Meta   Meta

	titleIdx    int
	dateIdx     int
	journalIdx  int
	abstractIdx int
}

// Load reads a CSV file from disk.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	t, err := LoadReader(f, filepath.Base(path), Options{MaxRows: opt.MaxRows, Delimiter: delim})
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return t, nil
}

// LoadReader reads a CSV table from r. name is used for reporting only.
func LoadReader(r io.Reader, name string, opt Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: errors.New("empty file")}
		}
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header, Meta: Meta{Name: name, Cols: len(header)}}
	if err := t.resolveColumns(); err != nil {
		return nil, &LoadError{Err: err}
	}

	ncol := len(header)
	mem := 0
	for i := range header {
		mem += len(header[i])
	}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Err: fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)}
		}
		if opt.MaxRows > 0 && len(t.Rows) >= opt.MaxRows {
			t.Meta.Truncated = true
			break
		}
		row := make([]string, ncol)
		copy(row, rec)
		for _, v := range row {
			mem += len(v)
		}
		mem += 16 * ncol // string header per cell
		t.Rows = append(t.Rows, row)
	}
	t.Meta.Rows = len(t.Rows)
	t.Meta.MemoryBytes = mem
	return t, nil
}

func (t *Table) resolveColumns() error {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		idx[strings.ToLower(h)] = i
	}
	var ok bool
	if t.titleIdx, ok = idx[ColTitle]; !ok {
		return fmt.Errorf("missing required column %q", ColTitle)
	}
	t.dateIdx = -1
	for _, alias := range dateAliases {
		if i, found := idx[alias]; found {
			t.dateIdx = i
			break
		}
	}
	if t.dateIdx < 0 {
		return fmt.Errorf("missing required date column (one of %s)", strings.Join(dateAliases, ", "))
	}
	if t.journalIdx, ok = idx[ColJournal]; !ok {
		return fmt.Errorf("missing required column %q", ColJournal)
	}
	if t.abstractIdx, ok = idx[ColAbstract]; !ok {
		return fmt.Errorf("missing required column %q", ColAbstract)
	}
	return nil
}

// Title returns the trimmed title cell of row i.
func (t *Table) Title(i int) string { return strings.TrimSpace(t.Rows[i][t.titleIdx]) }

// Date returns the trimmed date cell of row i.
func (t *Table) Date(i int) string { return strings.TrimSpace(t.Rows[i][t.dateIdx]) }

// Journal returns the trimmed journal cell of row i.
func (t *Table) Journal(i int) string { return strings.TrimSpace(t.Rows[i][t.journalIdx]) }

// Abstract returns the trimmed abstract cell of row i.
func (t *Table) Abstract(i int) string { return strings.TrimSpace(t.Rows[i][t.abstractIdx]) }

// DateColumn reports which header name matched the date alias list.
func (t *Table) DateColumn() string { return t.Header[t.dateIdx] }
