// Package batch runs decode-plus-classify over many capture files in
// parallel. One file is one unit of work: a worker owns the whole
// pipeline for its file, so a corrupt capture fails alone and the
// rest of the batch keeps going.
package batch

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"slp-lab/internal/slp"
	"slp-lab/internal/stats"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// maxWorkers caps the pool regardless of core count.
	maxWorkers = 16

	// dedupeCapacity sizes the duplicate filter for a large local
	// replay library at a false-positive rate under 0.1%.
	dedupeCapacity      = 200000
	dedupeFalsePositive = 0.001
)

// Config tunes one Pool.
type Config struct {
	// Workers is the pool size. Zero means one per CPU, capped.
	Workers int

	// Recursive makes Run descend into subdirectories.
	Recursive bool

	// SkipDuplicates drops re-saved copies of a game this pool has
	// already analyzed, keyed on the online match id and game number.
	// Captures without a match id are never considered duplicates.
	SkipDuplicates bool

	// Analysis is handed to every analyze call. Nil means defaults.
	Analysis *stats.Options

	// OnProgress, when set, fires once per settled file. Calls are
	// serialized, never concurrent.
	OnProgress func(Progress)
}

// Progress reports one settled file during a run.
type Progress struct {
	Path      string
	Err       error
	Duplicate bool
	Done      int
	Total     int
}

// FileResult is the outcome of one file's pipeline.
type FileResult struct {
	Path    string
	Report  *stats.Report
	Err     error
	Elapsed time.Duration
}

// Result is one completed run. Files holds successes and failures
// sorted by game start time then path; duplicate captures appear
// only in Duplicates.
type Result struct {
	Files      []*FileResult
	Duplicates []string
	Analyzed   int
	Failed     int
	Started    time.Time
	Elapsed    time.Duration
}

// PoolStats are lifetime counters across every run of one Pool.
type PoolStats struct {
	Analyzed   int64 `json:"analyzed"`
	Failed     int64 `json:"failed"`
	Duplicates int64 `json:"duplicates"`
}

// Pool analyzes capture files with a fixed set of workers. One Pool
// can serve many runs; the duplicate filter and the counters carry
// across them.
type Pool struct {
	workers        int
	recursive      bool
	skipDuplicates bool
	analysis       *stats.Options
	onProgress     func(Progress)

	// Duplicate suppression (bloom filter for memory efficiency).
	seen   *bloom.BloomFilter
	seenMu sync.Mutex

	// Lifetime counters, atomic so Stats is safe mid-run.
	analyzed   int64
	failed     int64
	duplicates int64
}

// NewPool creates a pool with the given configuration. A zero worker
// count defaults to one per CPU.
func NewPool(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Cap at reasonable maximum
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Pool{
		workers:        workers,
		recursive:      cfg.Recursive,
		skipDuplicates: cfg.SkipDuplicates,
		analysis:       cfg.Analysis,
		onProgress:     cfg.OnProgress,
		seen:           bloom.NewWithEstimates(dedupeCapacity, dedupeFalsePositive),
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Stats returns the lifetime counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Analyzed:   atomic.LoadInt64(&p.analyzed),
		Failed:     atomic.LoadInt64(&p.failed),
		Duplicates: atomic.LoadInt64(&p.duplicates),
	}
}

// Run scans dir for capture files and analyzes them all.
func (p *Pool) Run(ctx context.Context, dir string) (*Result, error) {
	paths, err := Scan(dir, p.recursive)
	if err != nil {
		return nil, err
	}
	return p.RunFiles(ctx, paths)
}

// RunFiles analyzes the given captures. On cancellation the returned
// result holds whatever settled first, alongside the context error.
func (p *Pool) RunFiles(ctx context.Context, paths []string) (*Result, error) {
	res := &Result{Started: time.Now()}
	if len(paths) == 0 {
		res.Elapsed = time.Since(res.Started)
		return res, nil
	}

	jobs := make(chan string, p.workers*2)
	settled := make(chan outcome, p.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, jobs, settled, &wg)
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for o := range settled {
			p.collect(res, o, len(paths))
		}
	}()

	wg.Wait()
	close(settled)
	<-collected

	sortByStartTime(res.Files)
	res.Elapsed = time.Since(res.Started)
	log.Printf("✅ batch: %d captures analyzed in %s (%d failed, %d duplicates)",
		res.Analyzed, formatDuration(res.Elapsed), res.Failed, len(res.Duplicates))
	return res, ctx.Err()
}

// outcome pairs a file result with its routing inside the run.
type outcome struct {
	fr        *FileResult
	duplicate bool
}

func (p *Pool) worker(ctx context.Context, jobs <-chan string, settled chan<- outcome, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-jobs:
			if !ok {
				return
			}
			o := p.processFile(path)
			select {
			case settled <- o:
			case <-ctx.Done():
				return
			}
		}
	}
}

// processFile owns one capture end to end. Failures are recorded on
// the result, never returned, so the rest of the batch is unaffected.
func (p *Pool) processFile(path string) outcome {
	start := time.Now()
	fr := &FileResult{Path: path}

	game, err := slp.ParseFile(path, nil)
	if err != nil {
		fr.Err = err
		fr.Elapsed = time.Since(start)
		return outcome{fr: fr}
	}

	if p.skipDuplicates {
		if key := gameKey(game); key != "" && !p.firstSighting(key) {
			fr.Elapsed = time.Since(start)
			return outcome{fr: fr, duplicate: true}
		}
	}

	report, err := stats.Analyze(game, p.analysis)
	if err != nil {
		fr.Err = fmt.Errorf("analyze %s: %w", path, err)
		fr.Elapsed = time.Since(start)
		return outcome{fr: fr}
	}
	fr.Report = report
	fr.Elapsed = time.Since(start)
	return outcome{fr: fr}
}

// collect runs on a single goroutine, so the per-run counts need no
// locking and progress callbacks stay serialized.
func (p *Pool) collect(res *Result, o outcome, total int) {
	switch {
	case o.duplicate:
		res.Duplicates = append(res.Duplicates, o.fr.Path)
		atomic.AddInt64(&p.duplicates, 1)
	case o.fr.Err != nil:
		res.Files = append(res.Files, o.fr)
		res.Failed++
		atomic.AddInt64(&p.failed, 1)
		log.Printf("⚠️ batch: %v", o.fr.Err)
	default:
		res.Files = append(res.Files, o.fr)
		res.Analyzed++
		atomic.AddInt64(&p.analyzed, 1)
	}
	if p.onProgress != nil {
		p.onProgress(Progress{
			Path:      o.fr.Path,
			Err:       o.fr.Err,
			Duplicate: o.duplicate,
			Done:      len(res.Files) + len(res.Duplicates),
			Total:     total,
		})
	}
}

// gameKey identifies one online game across re-saved copies of the
// same replay. Tiebreak games share a game number, so the tiebreak
// counter is part of the key. Offline captures carry no match id and
// cannot be keyed.
func gameKey(g *slp.Game) string {
	if g.Start == nil || g.Start.MatchID == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d#%d", g.Start.MatchID, g.Start.GameNumber, g.Start.TiebreakNumber)
}

// firstSighting reports whether key is new, marking it seen. Test and
// add happen under one lock so two workers racing on the same game
// cannot both claim it.
func (p *Pool) firstSighting(key string) bool {
	p.seenMu.Lock()
	defer p.seenMu.Unlock()
	if p.seen.TestString(key) {
		return false
	}
	p.seen.AddString(key)
	return true
}

// sortByStartTime fixes the merge order: game start time first, path
// as the tiebreak. Files that failed to parse carry no start time and
// sort ahead of everything dated.
func sortByStartTime(files []*FileResult) {
	sort.Slice(files, func(i, j int) bool {
		ti, tj := startOf(files[i]), startOf(files[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return files[i].Path < files[j].Path
	})
}

func startOf(fr *FileResult) time.Time {
	if fr.Report == nil {
		return time.Time{}
	}
	return fr.Report.Header.StartedAt
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", hours, mins, secs)
}
