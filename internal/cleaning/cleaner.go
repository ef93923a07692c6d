// Package cleaning derives the usable subset of a raw metadata table:
// rows with a non-empty title and a parseable publication date inside the
// accepted year window. Everything else is dropped and counted by reason.
package cleaning

import (
	"time"
	"unicode/utf8"

	"github.com/paperlens/paperlens-cli/internal/dataset"
)

// Drop reasons. The source corpus folds the last two together; they are
// reported separately here so the histogram distinguishes garbage dates
// from merely ancient or futuristic ones.
const (
	ReasonMissingTitle   = "missing title"
	ReasonMissingDate    = "missing date"
	ReasonInvalidDate    = "invalid date"
	ReasonYearOutOfRange = "year out of range"
)

// Accepted publication-year window.
const (
	YearMin = 1990
	YearMax = 2024
)

// Record is a cleaned row. Invariant: Title is non-empty and Year lies in
// [YearMin, YearMax].
type Record struct {
	Title       string `json:"title"`
	Journal     string `json:"journal"`
	Abstract    string `json:"-"`
	Year        int    `json:"year"`
	TitleLen    int    `json:"title_len"`
	AbstractLen int    `json:"abstract_len"`
}

// Result holds the cleaned records plus drop accounting.
// Input == len(Records) + Dropped always holds.
type Result struct {
	Records []Record       `json:"-"`
	Input   int            `json:"input"`
	Dropped int            `json:"dropped"`
	Reasons map[string]int `json:"reasons"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	"2006-01",
	"2006",
}

// ParseYear parses a free-form publication date and returns its year.
func ParseYear(s string) (int, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// Clean filters t row by row, preserving input order. A malformed row is
// dropped and counted; it never aborts the run.
func Clean(t *dataset.Table) *Result {
	res := &Result{
		Input:   len(t.Rows),
		Reasons: make(map[string]int),
	}
	for i := range t.Rows {
		title := t.Title(i)
		if title == "" {
			res.drop(ReasonMissingTitle)
			continue
		}
		date := t.Date(i)
		if date == "" {
			res.drop(ReasonMissingDate)
			continue
		}
		year, ok := ParseYear(date)
		if !ok {
			res.drop(ReasonInvalidDate)
			continue
		}
		if year < YearMin || year > YearMax {
			res.drop(ReasonYearOutOfRange)
			continue
		}
		abstract := t.Abstract(i)
		res.Records = append(res.Records, Record{
			Title:       title,
			Journal:     t.Journal(i),
			Abstract:    abstract,
			Year:        year,
			TitleLen:    utf8.RuneCountInString(title),
			AbstractLen: utf8.RuneCountInString(abstract),
		})
	}
	return res
}

func (r *Result) drop(reason string) {
	r.Dropped++
	r.Reasons[reason]++
}
