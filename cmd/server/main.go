package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/gridgest/internal/api"
	"github.com/dgallion1/gridgest/internal/config"
	"github.com/dgallion1/gridgest/internal/editors"
	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/dgallion1/gridgest/internal/pipeline"
	"github.com/dgallion1/gridgest/internal/render"
	"github.com/dgallion1/gridgest/internal/searchidx"
	"github.com/dgallion1/gridgest/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Layout model configuration. Registrations must be complete before
	// the pipeline starts.
	factory := layout.NewFactory()
	editors.Register(factory)

	var renderer *render.Renderer
	var err error
	if cfg.TemplateDir != "" {
		renderer, err = render.NewFromDir(cfg.TemplateDir)
	} else {
		renderer, err = render.New()
	}
	if err != nil {
		log.Error("renderer init failed", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("store open failed", "error", err)
		os.Exit(1)
	}

	idx := searchidx.NewClient(cfg.SearchIndexURL, cfg.SearchIndexAPIKey)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, factory, st, idx, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, factory, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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

		idx.Close()
		st.Close()
	}()

	log.Info("starting gridgest", "port", cfg.Port, "db", cfg.DBPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
