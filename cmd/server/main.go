package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"slp-lab/internal/api"
	"slp-lab/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("📊 ================================")
	log.Println("📊  SLP LAB - Replay Analysis")
	log.Println("📊  Decode + Stats + Heatmaps")
	log.Println("📊 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	serverCfg := appConfig.Server
	batchCfg := appConfig.Batch
	limits := appConfig.Limits

	// Log configuration
	if batchCfg.Dir != "" {
		log.Printf("📂 Replay dir: %s (recursive=%v)", batchCfg.Dir, batchCfg.Recursive)
	} else {
		log.Println("⚠️ SLP_DIR not set - indexing waits for POST /api/batch")
	}
	log.Printf("🛡️ Resource limits: %dMB uploads, %d files per run, %.0f req/s per IP",
		limits.MaxUploadBytes>>20, limits.MaxBatchFiles, limits.RatePerSecond)

	// Start debug server (pprof, metrics, health) on localhost only
	debugCfg := api.DefaultObservabilityConfig()
	debugCfg.ListenAddr = fmt.Sprintf("127.0.0.1:%d", serverCfg.DebugPort)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Create API server
	server := api.NewServer(appConfig, nil)

	// Index the configured directory right away so the dashboard has
	// something to show
	if batchCfg.Dir != "" {
		if err := server.Runner().Start(""); err != nil {
			log.Printf("⚠️ Startup indexing failed: %v", err)
		} else {
			log.Printf("🔄 Indexing replays from %s...", batchCfg.Dir)
		}
	}

	// Start API server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Println("")
	log.Println("📋 Endpoints:")
	log.Printf("   POST http://localhost:%d/api/analyze (multipart 'file' upload)", serverCfg.Port)
	log.Printf("   POST http://localhost:%d/api/batch (start a directory run)", serverCfg.Port)
	log.Printf("   GET  http://localhost:%d/api/replays (indexed games)", serverCfg.Port)
	log.Printf("   GET  http://localhost:%d/api/replays/{id}/heatmap.png", serverCfg.Port)
	log.Printf("   WS   ws://localhost:%d/ws (live progress)", serverCfg.Port)
	log.Println("")

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	log.Println("👋 Goodbye!")
}
