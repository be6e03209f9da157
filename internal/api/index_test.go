package api

import (
	"testing"
	"time"

	"slp-lab/internal/stats"
)

func reportStartedAt(ts time.Time) *stats.Report {
	return &stats.Report{Header: stats.GameHeader{StartedAt: ts}}
}

// TestReplayIndexOrder verifies the listing sorts by start time with the
// path as tiebreak.
func TestReplayIndexOrder(t *testing.T) {
	ix := NewReplayIndex()
	later := reportStartedAt(time.Date(2023, 7, 2, 10, 0, 0, 0, time.UTC))
	earlier := reportStartedAt(time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC))
	same := reportStartedAt(time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC))

	ix.Add("/replays/c.slp", later)
	ix.Add("/replays/b.slp", earlier)
	ix.Add("/replays/a.slp", same)

	list := ix.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(list))
	}
	want := []string{"/replays/a.slp", "/replays/b.slp", "/replays/c.slp"}
	for i, entry := range list {
		if entry.Path != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], entry.Path)
		}
	}
}

// TestReplayIndexLookup verifies ids are stable per path and lookups
// round-trip.
func TestReplayIndexLookup(t *testing.T) {
	ix := NewReplayIndex()
	entry := ix.Add("/replays/a.slp", reportStartedAt(time.Now()))

	if entry.ID != ReplayID("/replays/a.slp") {
		t.Errorf("Expected the id to derive from the path, got %s", entry.ID)
	}
	got, ok := ix.Get(entry.ID)
	if !ok || got.Path != "/replays/a.slp" {
		t.Fatalf("Expected to find the entry back, got %+v (ok=%v)", got, ok)
	}
	if _, ok := ix.Get("ffffffffffffffff"); ok {
		t.Error("Expected a miss for an unknown id")
	}
}

// TestReplayIndexReplacesSamePath verifies re-analyzing a file updates
// its entry in place instead of growing the index.
func TestReplayIndexReplacesSamePath(t *testing.T) {
	ix := NewReplayIndex()
	first := ix.Add("/replays/a.slp", reportStartedAt(time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)))
	fresh := reportStartedAt(time.Date(2023, 7, 5, 0, 0, 0, 0, time.UTC))
	second := ix.Add("/replays/a.slp", fresh)

	if ix.Len() != 1 {
		t.Fatalf("Expected 1 entry after re-add, got %d", ix.Len())
	}
	if first.ID != second.ID {
		t.Errorf("Expected a stable id, got %s then %s", first.ID, second.ID)
	}
	got, _ := ix.Get(second.ID)
	if got.Report != fresh {
		t.Error("Expected the entry to carry the fresh report")
	}
}
