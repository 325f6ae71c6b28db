package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medali150/university-platform-sub001/internal/config"
	"github.com/medali150/university-platform-sub001/internal/db"
	httpserver "github.com/medali150/university-platform-sub001/internal/http"
	"github.com/medali150/university-platform-sub001/internal/jobs"
	"github.com/medali150/university-platform-sub001/internal/logging"
	"github.com/medali150/university-platform-sub001/internal/notify"
	"github.com/medali150/university-platform-sub001/internal/observability"
)

const release = "university-platform@dev"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Closer()
	log := logger.Base

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Warn("sentry init failed", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()
	store := db.NewStore(pool)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, alert dedup falls back to the database", zap.Error(err))
			rdb = nil
		}
	}

	notifier := notify.New(store, log, cfg.Location)
	server := httpserver.NewServer(cfg, store, notifier, log)

	jobs.StartAbsenceAlertJob(ctx, cfg, store, rdb, notifier, log)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
}
