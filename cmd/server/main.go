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

	"github.com/workpulse/attendance-api/internal/api"
	"github.com/workpulse/attendance-api/internal/infrastructure/config"
	"github.com/workpulse/attendance-api/internal/infrastructure/db/postgres"
	redisdb "github.com/workpulse/attendance-api/internal/infrastructure/db/redis"
	"github.com/workpulse/attendance-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	rdb, err := redisdb.MaybeConnect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("report cache disabled (REDIS_ADDR not set)")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := api.NewRouter(db, rdb, api.Config{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
