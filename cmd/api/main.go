// Command api runs the ImmoConnect listing API server.
//
// @title        ImmoConnect Listing API
// @version      1.0
// @description  Real-estate listing API: public catalogue, agent-managed listings, role-gated access.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/immoconnect/listing-api/internal/api"
	"github.com/immoconnect/listing-api/internal/core/service"
	"github.com/immoconnect/listing-api/internal/infrastructure/config"
	mongostore "github.com/immoconnect/listing-api/internal/infrastructure/db/mongo"
	redisstore "github.com/immoconnect/listing-api/internal/infrastructure/db/redis"
	"github.com/immoconnect/listing-api/internal/infrastructure/queue"
	"github.com/immoconnect/listing-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongostore.NewUserRepository(db)
	propertyRepo := mongostore.NewPropertyRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := propertyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create property indexes")
	}

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Audit pipeline ---
	eventRepo := mongostore.NewPropertyEventRepository(db)
	activityService := service.NewActivityService(eventRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, activityService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, log, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
