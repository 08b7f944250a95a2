package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamblog/dreamblog-api/internal/api"
	"github.com/dreamblog/dreamblog-api/internal/core/service"
	"github.com/dreamblog/dreamblog-api/internal/infrastructure/config"
	mongorepo "github.com/dreamblog/dreamblog-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/dreamblog/dreamblog-api/internal/infrastructure/db/redis"
	"github.com/dreamblog/dreamblog-api/internal/infrastructure/queue"
	"github.com/dreamblog/dreamblog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           dreamblog API
// @version         1.0
// @description     Social blogging backend: accounts, follow graph, dreams, reactions and comments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongorepo.NewUserRepository(db)
	followRepo := mongorepo.NewFollowRepository(db)
	dreamRepo := mongorepo.NewDreamRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":      userRepo,
		"follows":    followRepo,
		"dreams":     dreamRepo,
		"comments":   commentRepo,
		"activities": activityRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, activityService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
