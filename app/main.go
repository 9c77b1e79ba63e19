package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/braindrive/scout/app/analysis"
	"github.com/braindrive/scout/app/api"
	"github.com/braindrive/scout/app/cfg"
	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/journal"
	"github.com/braindrive/scout/app/library"
	"github.com/braindrive/scout/app/review"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	log.Println("Starting Scout server...")

	extractorOpts, err := content.LoadOptions(appCfg.ExtractorOverrides)
	if err != nil {
		log.Printf("Warning: %v, using default extractor settings", err)
	}

	fetcher := content.NewFetcher(appCfg.UserAgent, extractorOpts)

	store, err := library.NewStore(context.Background(), appCfg.GitHubToken, appCfg.LibraryRepo)
	if err != nil {
		log.Fatal("Failed to create library store: ", err)
	}
	log.Printf("Library repository: %s", appCfg.LibraryRepo)

	analyzer := analysis.NewAnalyzer(appCfg.AnthropicAPIKey, appCfg.AnthropicModel)
	logWriter := journal.NewWriter(appCfg.LogsDir)
	orchestrator := review.NewOrchestrator(fetcher, store, analyzer, logWriter)

	handler := api.NewHandler(orchestrator, store, analyzer, appCfg.Version)
	server := api.NewServer(handler, appCfg.StaticDir)

	// Reviews fan out across projects with one model call each, so the
	// write timeout has to cover the slowest batch, not a single fetch.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  List projects:  http://localhost:%s/api/projects", appCfg.Port)
		log.Printf("  Review URL:     http://localhost:%s/api/review (POST)", appCfg.Port)
		log.Printf("  Chat:           http://localhost:%s/api/chat (POST)", appCfg.Port)
		log.Printf("  Health check:   http://localhost:%s/api/health", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Scout server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("HTTP server error: %v", err)
	}

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Scout server stopped")
}
