// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all service and batch settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      int // Public API port
	DebugPort int // Localhost-only debug server (pprof, metrics, health)
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:      8080,
		DebugPort: 6060,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if p := getEnvInt("DEBUG_PORT", 0); p > 0 {
		cfg.DebugPort = p
	}

	return cfg
}

// =============================================================================
// BATCH CONFIGURATION
// =============================================================================

// BatchConfig holds replay directory scan settings.
type BatchConfig struct {
	Dir            string // Replay directory, empty until set
	Workers        int    // Pool size, 0 = one per CPU
	Recursive      bool   // Descend into subdirectories
	SkipDuplicates bool   // Suppress re-saved copies of the same game
}

// DefaultBatch returns the default batch configuration.
func DefaultBatch() BatchConfig {
	return BatchConfig{
		Workers:        0, // Pool picks per-CPU default
		Recursive:      true,
		SkipDuplicates: true,
	}
}

// BatchFromEnv returns batch configuration with environment variable overrides.
func BatchFromEnv() BatchConfig {
	cfg := DefaultBatch()

	if d := os.Getenv("SLP_DIR"); d != "" {
		cfg.Dir = d
	}
	if w := getEnvInt("SLP_WORKERS", 0); w > 0 {
		cfg.Workers = w
	}
	if os.Getenv("SLP_RECURSIVE") == "false" {
		cfg.Recursive = false
	}
	if os.Getenv("SLP_SKIP_DUPLICATES") == "false" {
		cfg.SkipDuplicates = false
	}

	return cfg
}

// =============================================================================
// HEATMAP CONFIGURATION
// =============================================================================

// HeatmapConfig holds position heatmap rendering settings.
type HeatmapConfig struct {
	Width     int     // Output image width in pixels
	Height    int     // Output image height in pixels
	DotRadius float64 // Radius of one position sample in pixels
	DotAlpha  float64 // Opacity of one sample (0.0 to 1.0), stacking builds heat
}

// DefaultHeatmap returns the default heatmap configuration.
func DefaultHeatmap() HeatmapConfig {
	return HeatmapConfig{
		Width:     800,
		Height:    600,
		DotRadius: 3.0,
		DotAlpha:  0.08,
	}
}

// HeatmapFromEnv returns heatmap configuration with environment variable overrides.
func HeatmapFromEnv() HeatmapConfig {
	cfg := DefaultHeatmap()

	if w := getEnvInt("HEATMAP_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("HEATMAP_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}
	if r := getEnvFloat("HEATMAP_DOT_RADIUS", 0); r > 0 {
		cfg.DotRadius = r
	}
	if a := getEnvFloat("HEATMAP_DOT_ALPHA", 0); a > 0 && a <= 1 {
		cfg.DotAlpha = a
	}

	return cfg
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// LimitsConfig controls DoS protection on the public endpoints.
type LimitsConfig struct {
	MaxUploadBytes int64   // Hard cap on one uploaded capture
	MaxBatchFiles  int     // Hard cap on files per batch run
	RatePerSecond  float64 // Per-IP request rate
	RateBurst      int     // Per-IP burst allowance
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		MaxUploadBytes: 64 << 20, // Replays run 1-10 MB, leave headroom
		MaxBatchFiles:  10_000,
		RatePerSecond:  5,
		RateBurst:      10,
	}
}

// LimitsFromEnv returns resource limits with environment variable overrides.
func LimitsFromEnv() LimitsConfig {
	cfg := DefaultLimits()

	if mb := getEnvInt("MAX_UPLOAD_MB", 0); mb > 0 {
		cfg.MaxUploadBytes = int64(mb) << 20
	}
	if n := getEnvInt("MAX_BATCH_FILES", 0); n > 0 {
		cfg.MaxBatchFiles = n
	}
	if r := getEnvFloat("RATE_LIMIT", 0); r > 0 {
		cfg.RatePerSecond = r
	}
	if b := getEnvInt("RATE_BURST", 0); b > 0 {
		cfg.RateBurst = b
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Server  ServerConfig
	Batch   BatchConfig
	Heatmap HeatmapConfig
	Limits  LimitsConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server:  ServerFromEnv(),
		Batch:   BatchFromEnv(),
		Heatmap: HeatmapFromEnv(),
		Limits:  LimitsFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
