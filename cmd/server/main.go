package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"bizpos/internal/config"
	"bizpos/internal/infra"
	"bizpos/internal/router"
	"bizpos/internal/worker"
)

// @title BizPOS API
// @version 1.0
// @description Point-of-sale and inventory backend for small retail businesses.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	engine, _ := router.New(cfg, db, rdb, log)

	// Email worker pool
	mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	emailWorker := worker.NewEmailWorker(mailer, log)
	pool := worker.NewPool(rdb, emailWorker, cfg.WorkerPoolSize, log)

	poolCtx, stopPool := context.WithCancel(context.Background())
	pool.Start(poolCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	// Let in-flight email jobs finish before exiting.
	stopPool()
	pool.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}
	log.Info().Msg("bye")
}

func newLogger(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
