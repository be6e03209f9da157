package api

import (
	"slp-lab/internal/config"
	"slp-lab/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Index:  index,
//	    Runner: runner,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Index is the replay catalog the read endpoints serve (required).
	Index *ReplayIndex

	// Runner drives batch analysis runs (required).
	Runner *BatchRunner

	// Analysis tunes the classifiers for uploads. Nil means defaults.
	Analysis *stats.Options

	// Limits bounds upload sizes. The zero value applies the defaults.
	Limits config.LimitsConfig

	// Heatmap controls rendered image size and dot styling. The zero
	// value applies the defaults.
	Heatmap config.HeatmapConfig

	// Notify, when set, pushes analysis events to connected dashboards.
	Notify func(event string, data interface{})

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses the default loopback origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler dependencies for the route tree.
type routerHandlers struct {
	index      *ReplayIndex
	runner     *BatchRunner
	analysis   *stats.Options
	limits     config.LimitsConfig
	heatmapCfg config.HeatmapConfig
	notify     func(event string, data interface{})
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: Apart from the rate limiter's cleanup timer this function
// has no side effects:
//   - No network listeners are opened
//   - No analysis work starts
//
// This makes it safe to use in tests with httptest.NewServer.
//
// Example:
//
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/replays")
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	limits := cfg.Limits
	if limits == (config.LimitsConfig{}) {
		limits = config.DefaultLimits()
	}
	heatmapCfg := cfg.Heatmap
	if heatmapCfg == (config.HeatmapConfig{}) {
		heatmapCfg = config.DefaultHeatmap()
	}

	// Create handlers struct
	h := &routerHandlers{
		index:      cfg.Index,
		runner:     cfg.Runner,
		analysis:   cfg.Analysis,
		limits:     limits,
		heatmapCfg: heatmapCfg,
		notify:     cfg.Notify,
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// One-shot analysis of an uploaded capture
		r.Post("/analyze", h.handleAnalyze)

		// Batch runs over the replay directory
		r.Post("/batch", h.handleBatchStart)
		r.Get("/batch/status", h.handleBatchStatus)

		// Indexed replays
		r.Get("/replays", h.handleListReplays)
		r.Get("/replays/{id}", h.handleGetReplay)
		r.Get("/replays/{id}/heatmap.png", h.handleHeatmap)
	})

	// Service banner
	r.Get("/", h.handleRoot)

	return r
}
