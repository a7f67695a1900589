package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/config"
	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/router"
	"github.com/Epaval/factura-con-api-facdin/internal/service"
	"github.com/Epaval/factura-con-api-facdin/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open local store")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// First-run demo data. The seed marker lives in the store itself, so
	// restarting the server never duplicates it.
	seeded, err := service.NewSeedService(db).SeedInicial(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("initial seed failed")
	}
	if seeded {
		log.Info().Msg("local store seeded with demo clients and products")
	}

	// Remote FACDIN client behind a circuit breaker — the store keeps working
	// when the remote API is down; only the proxied routes degrade.
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	})
	api := infra.NewFacdinClient(cfg.APIBaseURL, cfg.APIKey, cb)

	// Async report delivery: reportes handler enqueues, pool sends via SMTP.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	workers := worker.StartWorkerPool(ctx, rdb, mailer, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, api, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("FACDIN caja listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Let in-flight report deliveries finish before the process dies
	cancel()
	workers.Wait()
	log.Info().Msg("server exited")
}
