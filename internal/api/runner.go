package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"slp-lab/internal/batch"
	"slp-lab/internal/config"
	"slp-lab/internal/stats"
)

// ErrBatchRunning reports a batch start while one is already in flight.
var ErrBatchRunning = errors.New("api: batch run already in progress")

// ErrNoBatchDir reports a batch start with no directory to scan.
var ErrNoBatchDir = errors.New("api: no replay directory configured")

// BatchStatus is the dashboard view of the runner: the live run when
// one is in flight, otherwise the outcome of the last one.
type BatchStatus struct {
	Running    bool            `json:"running"`
	Dir        string          `json:"dir,omitempty"`
	Done       int             `json:"done"`
	Total      int             `json:"total"`
	Analyzed   int             `json:"analyzed"`
	Failed     int             `json:"failed"`
	Duplicates int             `json:"duplicates"`
	StartedAt  time.Time       `json:"startedAt"`
	Elapsed    string          `json:"elapsed,omitempty"`
	Lifetime   batch.PoolStats `json:"lifetime"`
}

// BatchRunner drives the worker pool from HTTP: one run at a time,
// reports landing in the replay index, progress pushed to the hub.
// The pool, its duplicate filter and its lifetime counters persist
// across runs.
type BatchRunner struct {
	pool      *batch.Pool
	index     *ReplayIndex
	dir       string
	recursive bool
	maxFiles  int
	notify    func(event string, data interface{})

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	status  BatchStatus
}

// NewBatchRunner creates a runner over the configured replay
// directory. maxFiles caps one run, zero means unbounded. notify
// receives push events and may be nil.
func NewBatchRunner(cfg config.BatchConfig, maxFiles int, index *ReplayIndex, analysis *stats.Options, notify func(event string, data interface{})) *BatchRunner {
	br := &BatchRunner{
		index:     index,
		dir:       cfg.Dir,
		recursive: cfg.Recursive,
		maxFiles:  maxFiles,
		notify:    notify,
	}
	br.pool = batch.NewPool(batch.Config{
		Workers:        cfg.Workers,
		Recursive:      cfg.Recursive,
		SkipDuplicates: cfg.SkipDuplicates,
		Analysis:       analysis,
		OnProgress:     br.onProgress,
	})
	return br
}

// Start launches a run over dir, falling back to the configured
// directory when dir is empty. It returns once the run is accepted;
// progress streams through Status and the hub.
func (br *BatchRunner) Start(dir string) error {
	if dir == "" {
		dir = br.dir
	}
	if dir == "" {
		return ErrNoBatchDir
	}

	paths, err := batch.Scan(dir, br.recursive)
	if err != nil {
		return err
	}
	if br.maxFiles > 0 && len(paths) > br.maxFiles {
		log.Printf("⚠️ batch: %s holds %d captures, analyzing the first %d", dir, len(paths), br.maxFiles)
		paths = paths[:br.maxFiles]
	}

	br.mu.Lock()
	if br.running {
		br.mu.Unlock()
		return ErrBatchRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	br.running = true
	br.cancel = cancel
	br.status = BatchStatus{
		Running:   true,
		Dir:       dir,
		Total:     len(paths),
		StartedAt: time.Now(),
	}
	br.mu.Unlock()

	SetBatchActive(true)
	go br.run(ctx, dir, paths)
	return nil
}

func (br *BatchRunner) run(ctx context.Context, dir string, paths []string) {
	res, err := br.pool.RunFiles(ctx, paths)
	if err != nil {
		log.Printf("⚠️ batch: run over %s stopped early: %v", dir, err)
	}

	indexed := 0
	for _, fr := range res.Files {
		if fr.Report == nil {
			continue
		}
		br.index.Add(fr.Path, fr.Report)
		indexed++
		RecordCaptureAnalyzed(fr.Report.Header.DurationFrames, fr.Elapsed)
	}
	AddCaptureFailures(res.Failed)
	UpdateIndexSize(br.index.Len())

	elapsed := res.Elapsed.Round(time.Millisecond).String()

	br.mu.Lock()
	br.running = false
	br.cancel = nil
	br.status.Running = false
	br.status.Elapsed = elapsed
	br.mu.Unlock()

	SetBatchActive(false)

	if br.notify != nil {
		br.notify("batch:done", map[string]interface{}{
			"dir":        dir,
			"analyzed":   res.Analyzed,
			"failed":     res.Failed,
			"duplicates": len(res.Duplicates),
			"indexed":    indexed,
			"elapsed":    elapsed,
		})
	}
}

// onProgress runs on the pool's collector goroutine, once per settled
// file.
func (br *BatchRunner) onProgress(p batch.Progress) {
	br.mu.Lock()
	br.status.Done = p.Done
	br.status.Total = p.Total
	switch {
	case p.Duplicate:
		br.status.Duplicates++
	case p.Err != nil:
		br.status.Failed++
	default:
		br.status.Analyzed++
	}
	br.mu.Unlock()

	if br.notify != nil {
		data := map[string]interface{}{
			"path":  p.Path,
			"done":  p.Done,
			"total": p.Total,
		}
		if p.Err != nil {
			data["error"] = p.Err.Error()
		}
		if p.Duplicate {
			data["duplicate"] = true
		}
		br.notify("batch:progress", data)
	}
}

// Status returns the current runner view plus pool lifetime counters.
func (br *BatchRunner) Status() BatchStatus {
	br.mu.Lock()
	s := br.status
	if s.Running {
		s.Elapsed = time.Since(s.StartedAt).Round(time.Millisecond).String()
	}
	br.mu.Unlock()
	s.Lifetime = br.pool.Stats()
	return s
}

// Stop cancels the in-flight run, if any. Files that already settled
// stay indexed.
func (br *BatchRunner) Stop() {
	br.mu.Lock()
	cancel := br.cancel
	br.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
