package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockward/internal/admission"
	"stockward/internal/alert"
	"stockward/internal/config"
	"stockward/internal/infra"
	"stockward/internal/repository"
	"stockward/internal/router"
	"stockward/internal/worker"

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

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Alert delivery pipeline: Redis bus + email for stock alerts, webhook
	// (behind a circuit breaker) for system events. Wired here at the
	// composition root so delivery has full access to infrastructure.
	bus := infra.NewBus(rdb)
	mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.AlertFrom)
	webhookCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	webhook := infra.NewWebhookClient(cfg.WebhookURL, webhookCB)

	var recipients []string
	for _, addr := range strings.Split(cfg.AlertRecipients, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	dispatcher := alert.NewDispatcher(bus, mailer, webhook, recipients)
	dispatcher.Start(ctx, 4)
	defer dispatcher.Stop()

	evaluator := alert.NewEvaluator(alert.Thresholds{
		ExpiryWarningDays:     cfg.ExpiryWarningDays,
		ErrorRateThreshold:    cfg.ErrorRateThreshold,
		ResponseTimeThreshold: cfg.ResponseTimeThreshold,
	})

	limiter := admission.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	limiter.StartPurge(time.Minute)
	defer limiter.Stop()

	r, syncSvc := router.New(cfg, db, rdb, webhookCB, dispatcher, evaluator, limiter)

	// Background drain of the offline sync queue.
	worker.StartSyncLoop(ctx, syncSvc, cfg.SyncInterval())

	// Daily full threshold scan, catching breaches that develop without a
	// mutation (stock aging toward its expiry date).
	scan := &worker.ThresholdScan{
		Stocks:    repository.NewStockRepository(db),
		Evaluator: evaluator,
		Alerts:    dispatcher,
	}
	cronSched, err := worker.StartThresholdScan(ctx, scan, "0 8 * * *")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule threshold scan")
	}
	defer cronSched.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("stockward listening on :%d", cfg.Port)
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
	log.Info().Msg("server exited")
}
