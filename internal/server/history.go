package server

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"briefdesk/internal/model"
)

// History keeps finished runs visible on the dashboard for a while.
// Presentation state only; the pipeline never reads from it.
type History struct {
	cache *gocache.Cache
	mu    sync.Mutex
	ids   []string // most recent first
	max   int
}

// NewHistory creates a history with the given retention TTL and size cap
func NewHistory(ttl time.Duration, max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		cache: gocache.New(ttl, 10*time.Minute),
		max:   max,
	}
}

// Add records a finished run
func (h *History) Add(run *model.RunReport) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache.SetDefault(run.ID, run)
	h.ids = append([]string{run.ID}, h.ids...)
	if len(h.ids) > h.max {
		for _, id := range h.ids[h.max:] {
			h.cache.Delete(id)
		}
		h.ids = h.ids[:h.max]
	}
}

// Get returns a run by ID
func (h *History) Get(id string) (*model.RunReport, bool) {
	if val, found := h.cache.Get(id); found {
		return val.(*model.RunReport), true
	}
	return nil, false
}

// List returns retained runs, most recent first, dropping entries the
// cache has expired
func (h *History) List() []*model.RunReport {
	h.mu.Lock()
	defer h.mu.Unlock()

	runs := make([]*model.RunReport, 0, len(h.ids))
	kept := h.ids[:0]
	for _, id := range h.ids {
		if val, found := h.cache.Get(id); found {
			runs = append(runs, val.(*model.RunReport))
			kept = append(kept, id)
		}
	}
	h.ids = kept
	return runs
}
