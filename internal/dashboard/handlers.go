package dashboard

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/dataset"
	"github.com/paperlens/paperlens-cli/internal/stats"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	store       *Store
	maxUpload   int64 // bytes
	defaultTopN int
}

// NewHandler wires a handler around the store.
func NewHandler(store *Store, maxUploadMB, defaultTopN int) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 64
	}
	if defaultTopN <= 0 {
		defaultTopN = 10
	}
	return &Handler{
		store:       store,
		maxUpload:   int64(maxUploadMB) << 20,
		defaultTopN: defaultTopN,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type uploadResponse struct {
	ID       string         `json:"id"`
	Meta     dataset.Meta   `json:"meta"`
	Cleaned  int            `json:"cleaned"`
	Dropped  int            `json:"dropped"`
	Reasons  map[string]int `json:"reasons"`
	Filtered bool           `json:"truncated"`
}

// Upload handles POST /api/v1/datasets: a multipart CSV upload with an
// optional max_rows form value. Each user action recomputes from scratch;
// the upload is the only state the dashboard keeps.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	maxRows := 0
	if v := r.FormValue("max_rows"); v != "" {
		maxRows, err = strconv.Atoi(v)
		if err != nil || maxRows < 0 {
			writeError(w, http.StatusBadRequest, "Invalid max_rows")
			return
		}
	}

	opts := dataset.Options{MaxRows: maxRows}
	if strings.HasSuffix(strings.ToLower(header.Filename), ".tsv") {
		opts.Delimiter = '\t'
	}
	t, err := dataset.LoadReader(file, header.Filename, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	clean := cleaning.Clean(t)
	d := h.store.Put(t.Meta, clean)

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:       d.ID,
		Meta:     d.Meta,
		Cleaned:  len(clean.Records),
		Dropped:  clean.Dropped,
		Reasons:  clean.Reasons,
		Filtered: t.Meta.Truncated,
	})
}

// filter narrows a record set by the request's query parameters.
type filter struct {
	yearFrom int
	yearTo   int
	journal  string
	topN     int
}

func parseFilter(q url.Values, defaultTopN int) (filter, error) {
	f := filter{topN: defaultTopN}
	var err error
	if v := q.Get("year_from"); v != "" {
		if f.yearFrom, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("invalid year_from %q", v)
		}
	}
	if v := q.Get("year_to"); v != "" {
		if f.yearTo, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("invalid year_to %q", v)
		}
	}
	if f.yearFrom != 0 && f.yearTo != 0 && f.yearFrom > f.yearTo {
		return f, fmt.Errorf("year_from %d after year_to %d", f.yearFrom, f.yearTo)
	}
	f.journal = strings.TrimSpace(q.Get("journal"))
	if v := q.Get("top_n"); v != "" {
		if f.topN, err = strconv.Atoi(v); err != nil || f.topN < 0 {
			return f, fmt.Errorf("invalid top_n %q", v)
		}
	}
	return f, nil
}

func (f filter) apply(records []cleaning.Record) []cleaning.Record {
	out := make([]cleaning.Record, 0, len(records))
	for _, r := range records {
		if f.yearFrom != 0 && r.Year < f.yearFrom {
			continue
		}
		if f.yearTo != 0 && r.Year > f.yearTo {
			continue
		}
		if f.journal != "" && !strings.EqualFold(r.Journal, f.journal) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (h *Handler) datasetFromRequest(w http.ResponseWriter, r *http.Request) (*Dataset, filter, bool) {
	d := h.store.Get(chi.URLParam(r, "id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "Unknown dataset id")
		return nil, filter{}, false
	}
	f, err := parseFilter(r.URL.Query(), h.defaultTopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, filter{}, false
	}
	return d, f, true
}

// Summary handles GET /api/v1/datasets/{id}/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	d, f, ok := h.datasetFromRequest(w, r)
	if !ok {
		return
	}
	sum := stats.Summarize(f.apply(d.Clean.Records), f.topN)
	writeJSON(w, http.StatusOK, sum)
}

// Export handles GET /api/v1/datasets/{id}/export, streaming the filtered
// cleaned rows as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d, f, ok := h.datasetFromRequest(w, r)
	if !ok {
		return
	}
	records := f.apply(d.Clean.Records)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cleaned.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"title", "journal", "year", "title_length", "abstract_length"})
	for _, rec := range records {
		_ = cw.Write([]string{
			rec.Title,
			rec.Journal,
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.TitleLen),
			strconv.Itoa(rec.AbstractLen),
		})
	}
	cw.Flush()
}

// Info handles GET /api/v1/datasets/{id}: load/clean metadata without stats.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	d := h.store.Get(chi.URLParam(r, "id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "Unknown dataset id")
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		ID:      d.ID,
		Meta:    d.Meta,
		Cleaned: len(d.Clean.Records),
		Dropped: d.Clean.Dropped,
		Reasons: d.Clean.Reasons,
	})
}
