package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/vidnotes/internal/api"
	"github.com/dgallion1/vidnotes/internal/config"
	"github.com/dgallion1/vidnotes/internal/docstore"
	"github.com/dgallion1/vidnotes/internal/frames"
	"github.com/dgallion1/vidnotes/internal/pipeline"
	"github.com/dgallion1/vidnotes/internal/summarize"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients and stores.
	stats := summarize.NewStats(time.Hour)
	claude := summarize.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, stats)
	opener := frames.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath)
	store := docstore.New(cfg.OutputDir)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, claude, opener, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, claude, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		claude.Close()
	}()

	log.Info("starting vidnotes", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
