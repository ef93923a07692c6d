package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = "title,publish_time,journal,abstract\n" +
	"Viral load dynamics,2020-03-01,Lancet,Some abstract text\n" +
	"Mask efficacy,2021-07-15,BMJ,\n" +
	",2020-01-01,Nature,orphan row\n"

func TestLoadReaderCountsAndMeta(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader(sampleCSV), "metadata.csv", Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Meta.Rows != 3 || tbl.Meta.Cols != 4 {
		t.Fatalf("expected 3x4 table, got %dx%d", tbl.Meta.Rows, tbl.Meta.Cols)
	}
	if tbl.Meta.MemoryBytes <= 0 {
		t.Fatalf("expected positive memory estimate, got %d", tbl.Meta.MemoryBytes)
	}
	if got := tbl.Title(0); got != "Viral load dynamics" {
		t.Fatalf("title(0) = %q", got)
	}
	if got := tbl.Journal(1); got != "BMJ" {
		t.Fatalf("journal(1) = %q", got)
	}
	if got := tbl.Abstract(1); got != "" {
		t.Fatalf("abstract(1) = %q, want empty", got)
	}
	if got := tbl.DateColumn(); got != "publish_time" {
		t.Fatalf("date column = %q", got)
	}
}

func TestLoadReaderMaxRows(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader(sampleCSV), "metadata.csv", Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Meta.Rows != 2 {
		t.Fatalf("expected 2 rows with cap, got %d", tbl.Meta.Rows)
	}
	if !tbl.Meta.Truncated {
		t.Fatal("expected truncation flag")
	}
}

func TestLoadReaderDateAlias(t *testing.T) {
	csv := "title,publication_date,journal,abstract\nA paper,2019-01-01,J,abs\n"
	tbl, err := LoadReader(strings.NewReader(csv), "x.csv", Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tbl.Date(0); got != "2019-01-01" {
		t.Fatalf("date(0) = %q", got)
	}
}

func TestLoadReaderMissingColumn(t *testing.T) {
	csv := "title,publish_time,abstract\nA paper,2019-01-01,abs\n"
	_, err := LoadReader(strings.NewReader(csv), "x.csv", Options{})
	if err == nil {
		t.Fatal("expected error for missing journal column")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if !strings.Contains(err.Error(), "journal") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestLoadReaderEmptyFile(t *testing.T) {
	_, err := LoadReader(strings.NewReader(""), "x.csv", Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError for empty file, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError for missing file, got %v", err)
	}
}

func TestLoadTSVDelimiter(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "metadata.tsv")
	content := "title\tpublish_time\tjournal\tabstract\n" +
		"A paper\t2020-05-01\tCell\tsome text\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tbl.Journal(0); got != "Cell" {
		t.Fatalf("journal(0) = %q", got)
	}
}

func TestLoadReaderPadsShortRows(t *testing.T) {
	csv := "title,publish_time,journal,abstract\nShort row,2020-01-01\n"
	tbl, err := LoadReader(strings.NewReader(csv), "x.csv", Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tbl.Abstract(0); got != "" {
		t.Fatalf("abstract of padded row = %q", got)
	}
}
