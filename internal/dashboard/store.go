// Package dashboard serves the interactive analysis over HTTP: CSV upload,
// filtered summaries, chart pages, and CSV export.
package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paperlens/paperlens-cli/internal/cleaning"
	"github.com/paperlens/paperlens-cli/internal/dataset"
)

// Dataset is one uploaded and cleaned table held in memory for the session.
type Dataset struct {
	ID       string           `json:"id"`
	Uploaded time.Time        `json:"uploaded"`
	Meta     dataset.Meta     `json:"meta"`
	Clean    *cleaning.Result `json:"clean"`
}

// Store keeps uploaded datasets in memory. The dashboard is single-user;
// the mutex only guards against overlapping browser requests. When the cap
// is exceeded the oldest upload is evicted.
type Store struct {
	mu    sync.Mutex
	byID  map[string]*Dataset
	order []string
	max   int
}

// NewStore builds a store holding at most max datasets (minimum 1).
func NewStore(max int) *Store {
	if max < 1 {
		max = 1
	}
	return &Store{byID: make(map[string]*Dataset), max: max}
}

// Put stores a cleaned dataset and returns its generated id.
func (s *Store) Put(meta dataset.Meta, clean *cleaning.Result) *Dataset {
	d := &Dataset{
		ID:       uuid.NewString(),
		Uploaded: time.Now().UTC(),
		Meta:     meta,
		Clean:    clean,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[d.ID] = d
	s.order = append(s.order, d.ID)
	for len(s.order) > s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, oldest)
	}
	return d
}

// Get returns the dataset for id, or nil.
func (s *Store) Get(id string) *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}

// Len reports how many datasets are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
