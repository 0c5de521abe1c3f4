package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qbnb/marketplace-api/internal/api"
	"github.com/qbnb/marketplace-api/internal/core/service"
	mongorepo "github.com/qbnb/marketplace-api/internal/infrastructure/db/mongo"
	redisconn "github.com/qbnb/marketplace-api/internal/infrastructure/db/redis"
	"github.com/qbnb/marketplace-api/internal/infrastructure/queue"
	"github.com/qbnb/marketplace-api/internal/pkg/config"
	"github.com/qbnb/marketplace-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisconn.Connect(ctx, redisconn.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// Audit trail: a sharded worker pool drains events into Mongo without
	// blocking request handling.
	auditService := service.NewAuditService(mongorepo.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start()

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	// The server no longer accepts requests; flush queued audit events
	// before exiting so accepted mutations keep their trail.
	dispatcher.Stop()
	log.Info().Msg("server stopped")
}

// ensureIndexes creates the unique and lookup indexes the repositories rely
// on. The unique indexes are the concurrency backstop for the email,
// username, and title dedup rules.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongorepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongorepo.NewListingRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongorepo.NewBookingRepository(db).EnsureIndexes(ctx)
}
