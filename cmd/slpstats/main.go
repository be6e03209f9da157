// =============================================================================
// SLP LAB - BATCH CLI
// =============================================================================
// Analyzes captures from the command line, no server needed:
// - Scans directories (and takes single files) for .slp captures
// - Decodes and classifies them on a worker pool
// - Prints a per-player summary table, or full reports as JSON lines
//
// USAGE:
//   slpstats <dir-or-file> [more ...]
//   SLP_DIR=/replays slpstats
//
// Set SLPSTATS_JSON=true to get one full report per line on stdout
// instead of the table. Progress goes to stderr either way.
// =============================================================================
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"slp-lab/internal/batch"
	"slp-lab/internal/stats"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment, quietly; a CLI run without .env is normal
	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load(".env")
	}

	targets := os.Args[1:]
	if len(targets) == 0 {
		if dir := os.Getenv("SLP_DIR"); dir != "" {
			targets = []string{dir}
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: slpstats <dir-or-file> [more ...]")
		fmt.Fprintln(os.Stderr, "       (or set SLP_DIR)")
		os.Exit(2)
	}

	recursive := os.Getenv("SLP_RECURSIVE") != "false"
	workers := getEnvInt("SLP_WORKERS", 0)
	jsonOut := os.Getenv("SLPSTATS_JSON") == "true"

	// Expand targets into capture paths
	var paths []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		if info.IsDir() {
			found, err := batch.Scan(target, recursive)
			if err != nil {
				log.Fatalf("ERROR: scanning %s: %v", target, err)
			}
			paths = append(paths, found...)
		} else {
			paths = append(paths, target)
		}
	}
	if len(paths) == 0 {
		log.Fatal("ERROR: no .slp captures found")
	}

	log.Printf("Analyzing %d captures...", len(paths))

	// Ctrl+C cancels the run; whatever already settled still prints.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := batch.NewPool(batch.Config{
		Workers:        workers,
		SkipDuplicates: os.Getenv("SLP_SKIP_DUPLICATES") != "false",
		OnProgress: func(p batch.Progress) {
			name := filepath.Base(p.Path)
			switch {
			case p.Duplicate:
				log.Printf("[%d/%d] %s: duplicate, skipped", p.Done, p.Total, name)
			case p.Err != nil:
				log.Printf("[%d/%d] %s: FAILED: %v", p.Done, p.Total, name, p.Err)
			default:
				log.Printf("[%d/%d] %s", p.Done, p.Total, name)
			}
		},
	})

	res, err := pool.RunFiles(ctx, paths)
	if err != nil {
		log.Printf("Run stopped early: %v", err)
	}

	if jsonOut {
		printJSON(res)
	} else {
		printTables(res)
	}

	log.Printf("Done: %d analyzed, %d failed, %d duplicates in %v",
		res.Analyzed, res.Failed, len(res.Duplicates), res.Elapsed.Round(time.Millisecond))

	if res.Analyzed == 0 && res.Failed > 0 {
		os.Exit(1)
	}
}

// printJSON emits one report per line, machine-friendly.
func printJSON(res *batch.Result) {
	enc := json.NewEncoder(os.Stdout)
	for _, fr := range res.Files {
		if fr.Report == nil {
			continue
		}
		if err := enc.Encode(fr.Report); err != nil {
			log.Fatalf("ERROR: encoding report: %v", err)
		}
	}
}

func printTables(res *batch.Result) {
	for _, fr := range res.Files {
		if fr.Report == nil {
			continue
		}
		printReport(fr.Path, fr.Report)
	}
}

func printReport(path string, r *stats.Report) {
	h := r.Header
	fmt.Printf("\n%s\n", filepath.Base(path))

	minutes := h.DurationFrames / 3600
	seconds := (h.DurationFrames % 3600) / 60
	line := fmt.Sprintf("  %s, %d:%02d", h.Stage, minutes, seconds)
	if !h.StartedAt.IsZero() {
		line += ", " + h.StartedAt.Format("2006-01-02 15:04")
	}
	fmt.Println(line)

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  PORT\tCHARACTER\tPLAYER\tRESULT\tCOMBOS\tPEAK DMG\tWD\tDD\tTECH\tL-CANCEL")
	for _, p := range r.Players {
		s := p.Summary
		name := p.DisplayName
		if name == "" {
			name = p.ConnectCode
		}
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "  P%d\t%s\t%s\t%s\t%d\t%.0f%%\t%d\t%d\t%d\t%s\n",
			p.Port+1, p.Character, name, p.Result,
			s.ComboCount, s.HighestComboDamage,
			s.WavedashCount, s.DashdanceCount, s.TechCount,
			lCancelLabel(s))
	}
	tw.Flush()
}

func lCancelLabel(s *stats.PlayerSummary) string {
	if s.LCancelRate == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", s.LCancelSuccesses, s.LCancelAttempts, *s.LCancelRate)
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
