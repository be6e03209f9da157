package api

import (
	"log"
	"net/http"

	"slp-lab/internal/config"
	"slp-lab/internal/stats"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP API server with WebSocket support. It combines
// the HTTP router with the WebSocket hub for live batch progress.
type Server struct {
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	index       *ReplayIndex
	runner      *BatchRunner
}

// NewServer creates a new API server with the given configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(cfg config.AppConfig, analysis *stats.Options) *Server {
	s := &Server{
		wsHub: NewWebSocketHub(),
		index: NewReplayIndex(),
	}
	s.runner = NewBatchRunner(cfg.Batch, cfg.Limits.MaxBatchFiles, s.index, analysis, s.wsHub.Broadcast)

	// Create rate limiter (we track it for cleanup on Stop)
	s.rateLimiter = NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: cfg.Limits.RatePerSecond,
		Burst:             cfg.Limits.RateBurst,
		CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
	})

	// Build router using the factory
	s.router = NewRouter(RouterConfig{
		Index:       s.index,
		Runner:      s.runner,
		Analysis:    analysis,
		Limits:      cfg.Limits,
		Heatmap:     cfg.Heatmap,
		Notify:      s.wsHub.Broadcast,
		RateLimiter: s.rateLimiter,
	})

	// Add WebSocket routes (these need the wsHub instance)
	s.setupWebSocketRoutes()

	return s
}

// setupWebSocketRoutes adds WebSocket-specific routes to the router.
// These routes need access to the wsHub instance, so they can't be
// part of the generic NewRouter factory.
func (s *Server) setupWebSocketRoutes() {
	s.router.Get("/ws", s.handleWS)
}

// Runner returns the batch runner, for kicking off an indexing run at
// startup.
func (s *Server) Runner() *BatchRunner {
	return s.runner
}

// Index returns the replay catalog.
func (s *Server) Index() *ReplayIndex {
	return s.index
}

// Start begins the HTTP server AND starts background workers.
// This is the ONLY method that starts goroutines or opens network listeners.
//
// Call this method only once. To stop the server, signal the process.
func (s *Server) Start(addr string) error {
	// Start background workers NOW, not in constructor
	// This is critical for testability - tests can construct the server
	// and use Router() without these workers running.
	go s.wsHub.Run()

	log.Printf("🌐 API server starting on %s", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Start().
//
// Example:
//
//	server := api.NewServer(cfg, nil)
//	ts := httptest.NewServer(server.Router())
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/replays")
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs graceful shutdown of background workers.
// Call this before process exit to ensure clean cleanup.
func (s *Server) Stop() {
	s.runner.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// WebSocket handler - needs access to wsHub

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
