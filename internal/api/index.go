package api

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"slp-lab/internal/stats"
)

// ReplayEntry is one analyzed capture held in the index.
type ReplayEntry struct {
	ID        string        `json:"id"`
	Path      string        `json:"path"`
	IndexedAt time.Time     `json:"indexedAt"`
	Report    *stats.Report `json:"report"`
}

// ReplayIndex is the in-memory catalog of analyzed captures. Batch
// runs fill it, the replay endpoints read it. Re-analyzing a path
// replaces its entry, so the index never holds two reports for one
// file. Only successful analyses are indexed: every entry carries a
// report.
type ReplayIndex struct {
	mu      sync.RWMutex
	entries map[string]*ReplayEntry // keyed by ID
}

// NewReplayIndex creates an empty index.
func NewReplayIndex() *ReplayIndex {
	return &ReplayIndex{entries: make(map[string]*ReplayEntry)}
}

// ReplayID derives the stable identifier for a capture path.
func ReplayID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Add indexes a report under its file path and returns the entry.
func (ix *ReplayIndex) Add(path string, report *stats.Report) *ReplayEntry {
	e := &ReplayEntry{
		ID:        ReplayID(path),
		Path:      path,
		IndexedAt: time.Now(),
		Report:    report,
	}
	ix.mu.Lock()
	ix.entries[e.ID] = e
	ix.mu.Unlock()
	return e
}

// Get returns the entry with the given id.
func (ix *ReplayIndex) Get(id string) (*ReplayEntry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[id]
	return e, ok
}

// List returns every entry ordered by game start time, oldest first,
// path as the tiebreak.
func (ix *ReplayIndex) List() []*ReplayEntry {
	ix.mu.RLock()
	out := make([]*ReplayEntry, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e)
	}
	ix.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Report.Header.StartedAt, out[j].Report.Header.StartedAt
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Len returns the number of indexed replays.
func (ix *ReplayIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}
