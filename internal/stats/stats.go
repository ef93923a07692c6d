// Package stats computes aggregate summaries over cleaned records. All
// functions are pure: identical input yields an identical Summary.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
)

// JournalCount is one entry of the journal ranking. Share and CumShare are
// percentages of records that carry a journal; CumShare is monotone
// non-decreasing across the ranking and reaches 100 (within rounding) at
// the end of the full ranking.
type JournalCount struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
	CumShare float64 `json:"cum_share"`
}

// LengthStats summarizes a character-length distribution.
type LengthStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// Summary is the read-only aggregate over a cleaned record collection.
type Summary struct {
	Total          int                `json:"total"`
	YearCounts     map[int]int        `json:"year_counts"`
	YearMin        int                `json:"year_min"`
	YearMax        int                `json:"year_max"`
	PeakYear       int                `json:"peak_year"`
	PeakCount      int                `json:"peak_count"`
	Journals       []JournalCount     `json:"journals"`
	UniqueJournals int                `json:"unique_journals"`
	TitleLengths   LengthStats        `json:"title_lengths"`
	AbstractLens   LengthStats        `json:"abstract_lengths"`
	Completeness   map[string]float64 `json:"completeness"`
	// Concentration is the percent of all records published by the top ten
	// journals, the headline figure of the report.
	Concentration float64  `json:"concentration"`
	Insights      []string `json:"insights"`
}

// Summarize aggregates records. topN truncates the journal ranking for
// display; topN <= 0 keeps the full ranking.
func Summarize(records []cleaning.Record, topN int) *Summary {
	s := &Summary{
		Total:        len(records),
		YearCounts:   make(map[int]int),
		Completeness: make(map[string]float64),
	}
	if len(records) == 0 {
		return s
	}

	journalCounts := make(map[string]int)
	withJournal := 0
	withAbstract := 0
	titleLens := make([]int, 0, len(records))
	abstractLens := make([]int, 0, len(records))

	for _, r := range records {
		s.YearCounts[r.Year]++
		if r.Journal != "" {
			journalCounts[r.Journal]++
			withJournal++
		}
		if r.AbstractLen > 0 {
			withAbstract++
			abstractLens = append(abstractLens, r.AbstractLen)
		}
		titleLens = append(titleLens, r.TitleLen)
	}

	years := s.Years()
	s.YearMin = years[0]
	s.YearMax = years[len(years)-1]
	for _, y := range years {
		if c := s.YearCounts[y]; c > s.PeakCount {
			s.PeakYear, s.PeakCount = y, c
		}
	}

	s.UniqueJournals = len(journalCounts)
	ranked := make([]JournalCount, 0, len(journalCounts))
	for name, count := range journalCounts {
		ranked = append(ranked, JournalCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Name < ranked[j].Name
		}
		return ranked[i].Count > ranked[j].Count
	})
	cum := 0.0
	top10 := 0
	for i := range ranked {
		share := float64(ranked[i].Count) * 100.0 / float64(withJournal)
		cum += share
		ranked[i].Share = round1(share)
		ranked[i].CumShare = round1(cum)
		if i < 10 {
			top10 += ranked[i].Count
		}
	}
	s.Concentration = round1(float64(top10) * 100.0 / float64(len(records)))
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.Journals = ranked

	s.TitleLengths = summarizeLengths(titleLens)
	s.AbstractLens = summarizeLengths(abstractLens)

	s.Completeness["title"] = 100.0
	s.Completeness["publish_time"] = 100.0
	s.Completeness["journal"] = completeness(withJournal, len(records))
	s.Completeness["abstract"] = completeness(withAbstract, len(records))

	if s.PeakYear >= 2020 {
		s.Insights = append(s.Insights, "COVID-19 pandemic led to surge in research publications")
	}
	s.Insights = append(s.Insights,
		fmt.Sprintf("Top 10 journals publish %.1f%% of all papers", s.Concentration))
	return s
}

// Years returns the observed years in ascending order.
func (s *Summary) Years() []int {
	years := make([]int, 0, len(s.YearCounts))
	for y := range s.YearCounts {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func summarizeLengths(vals []int) LengthStats {
	if len(vals) == 0 {
		return LengthStats{}
	}
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	return LengthStats{
		Count:  len(sorted),
		Mean:   float64(sum) / float64(len(sorted)),
		Median: quantile(sorted, 0.5),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func quantile(sorted []int, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return float64(sorted[0])
	}
	if q >= 1 {
		return float64(sorted[len(sorted)-1])
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return float64(sorted[lo])
	}
	w := pos - float64(lo)
	return float64(sorted[lo])*(1-w) + float64(sorted[hi])*w
}

func completeness(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(present) * 100.0 / float64(total))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
