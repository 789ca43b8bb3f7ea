package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/leitnerbox/internal/api"
	"github.com/vytor/leitnerbox/internal/config"
	"github.com/vytor/leitnerbox/internal/jobs"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/worker"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *cfg)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides ADDR)")
	return cmd
}

// serve runs the server until ctx is done, then shuts it down: HTTP first,
// then queued imports, then every working set is rebalanced and saved.
func serve(ctx context.Context, cfg config.Config) error {
	log := logger.Default()
	log.Info("leitnerbox %s starting", version)
	log.Debug("addr=%s db_path=%s load_per_box=%d import_workers=%d import_queue=%d",
		cfg.Addr, cfg.DBPath, cfg.LoadPerBox, cfg.ImportWorkerCount, cfg.ImportQueueSize)

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug("closing database connection")
		if err := a.Close(); err != nil {
			log.Error("failed to close database: %v", err)
		}
	}()

	// A previous process may have died with cards checked out.
	released, err := a.cardRepo.ReleaseAll(ctx)
	if err != nil {
		return err
	}
	if released > 0 {
		log.Warn("released %d cards left checked out by a previous run", released)
	}

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importPool.Start(context.Background())

	srv := &api.Server{
		DB:             a.db,
		ProfileService: a.profiles,
		StudyService:   a.study,
		CardService:    a.cards,
		StatsService:   a.stats,
		JobQueue:       jobs.NewWorkerQueue(importPool, a.cards),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error: %v", err)
			importPool.Stop()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Debug("saving working sets")
	if err := a.study.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to save working sets: %v", err)
		return err
	}

	log.Info("leitnerbox stopped")
	return nil
}
