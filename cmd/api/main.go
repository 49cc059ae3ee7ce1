// @title           Health Assessment API
// @version         1.0
// @description     Authorization chain and account endpoints for health assessment services.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
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

	"github.com/healthdesk/assessment-api/internal/api"
	"github.com/healthdesk/assessment-api/internal/api/handler"
	"github.com/healthdesk/assessment-api/internal/core/service"
	"github.com/healthdesk/assessment-api/internal/infrastructure/config"
	mongodb "github.com/healthdesk/assessment-api/internal/infrastructure/db/mongo"
	redisdb "github.com/healthdesk/assessment-api/internal/infrastructure/db/redis"
	"github.com/healthdesk/assessment-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "health-assessment-api",
	})

	if err := run(cfg); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "health-assessment-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	e := api.NewRouter(api.Deps{
		Tokens:      tokens,
		Users:       users,
		AuthService: service.NewAuthService(users, tokens, throttle, cfg.ConsentVersion, log),
		UserService: service.NewUserService(users, cfg.ConsentVersion, log),
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log:         log,
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
		BodyLimit:   cfg.BodyLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
