package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"slp-lab/internal/heatmap"
	"slp-lab/internal/slp"
	"slp-lab/internal/stats"

	"github.com/go-chi/chi/v5"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

// handleAnalyze decodes one uploaded capture and returns its report.
// Uploads are stateless: nothing is indexed, because the index serves
// heatmaps by re-reading files from disk.
func (h *routerHandlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, "capture exceeds the upload limit", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "multipart form needs a 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	start := time.Now()
	game, err := slp.Parse(file, &slp.DecodeOptions{Source: filepath.Base(header.Filename)})
	if err != nil {
		AddCaptureFailures(1)
		writeError(w, "unreadable capture: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	report, err := stats.Analyze(game, h.analysis)
	if err != nil {
		AddCaptureFailures(1)
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	RecordCaptureAnalyzed(report.Header.DurationFrames, time.Since(start))

	if h.notify != nil {
		h.notify("replay:analyzed", report.Header)
	}
	writeJSON(w, report)
}

// handleBatchStart kicks off a run over the replay directory. The
// optional body names another directory to scan instead.
func (h *routerHandlers) handleBatchStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dir string `json:"dir"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	err := h.runner.Start(req.Dir)
	switch {
	case errors.Is(err, ErrBatchRunning):
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNoBatchDir), errors.Is(err, fs.ErrNotExist):
		writeError(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		writeError(w, err.Error(), http.StatusInternalServerError)
	default:
		writeJSON(w, h.runner.Status())
	}
}

func (h *routerHandlers) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.runner.Status())
}

func (h *routerHandlers) handleListReplays(w http.ResponseWriter, r *http.Request) {
	entries := h.index.List()
	replays := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		replays = append(replays, replaySummary(e))
	}

	writeJSON(w, map[string]interface{}{
		"count":   len(replays),
		"replays": replays,
	})
}

// replaySummary flattens one entry to the fields the list view needs.
// The full report stays behind the detail endpoint.
func replaySummary(e *ReplayEntry) map[string]interface{} {
	hdr := e.Report.Header
	players := make([]map[string]interface{}, 0, len(e.Report.Players))
	for _, p := range e.Report.Players {
		players = append(players, map[string]interface{}{
			"port":        p.Port,
			"character":   p.Character,
			"displayName": p.DisplayName,
			"connectCode": p.ConnectCode,
			"result":      p.Result,
		})
	}

	return map[string]interface{}{
		"id":             e.ID,
		"path":           e.Path,
		"indexedAt":      e.IndexedAt,
		"startedAt":      hdr.StartedAt,
		"stage":          hdr.Stage,
		"matchType":      hdr.MatchType,
		"durationFrames": hdr.DurationFrames,
		"players":        players,
	}
}

func (h *routerHandlers) handleGetReplay(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.index.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "replay not found", http.StatusNotFound)
		return
	}
	writeJSON(w, entry)
}

// handleHeatmap renders position density for one indexed replay. The
// index keeps reports, not frames, so the capture is re-decoded here.
func (h *routerHandlers) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.index.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "replay not found", http.StatusNotFound)
		return
	}

	port := heatmap.AllPorts
	if q := r.URL.Query().Get("port"); q != "" {
		p, err := strconv.Atoi(q)
		if err != nil || p < 0 || p > 3 {
			writeError(w, "port must be 0-3", http.StatusBadRequest)
			return
		}
		port = p
	}

	game, err := slp.ParseFile(entry.Path, nil)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, "capture file no longer exists", http.StatusGone)
			return
		}
		log.Printf("⚠️ heatmap: %v", err)
		writeError(w, "capture no longer readable", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := heatmap.Render(&buf, game, port, h.heatmapCfg); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (h *routerHandlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"service": "slp-lab",
		"endpoints": []string{
			"POST /api/analyze",
			"POST /api/batch",
			"GET /api/batch/status",
			"GET /api/replays",
			"GET /api/replays/{id}",
			"GET /api/replays/{id}/heatmap.png",
			"GET /ws",
		},
	})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
