// Package app boots the API server with database-backed components.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/config"
	"github.com/adscalemedia/adsite-backend/internal/db"
	internalhttp "github.com/adscalemedia/adsite-backend/internal/http"
	"github.com/adscalemedia/adsite-backend/internal/ratelimit"
	"github.com/adscalemedia/adsite-backend/internal/security"
	"github.com/adscalemedia/adsite-backend/internal/session"
	"github.com/adscalemedia/adsite-backend/internal/settings"
	"github.com/adscalemedia/adsite-backend/internal/storage"
)

// Migrate opens the database and applies the schema.
func Migrate(cfg config.Config) error {
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the API server and blocks until shutdown.
func RunServer(cfg config.Config) error {
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSettings := settings.Refresh(context.Background(), conn); errSettings != nil {
		return fmt.Errorf("load settings: %w", errSettings)
	}

	if cfg.Session.Secret == "" {
		// Without a configured secret, sessions die with the process.
		generated, errSecret := security.NewSessionID()
		if errSecret != nil {
			return fmt.Errorf("generate session secret: %w", errSecret)
		}
		cfg.Session.Secret = generated
		log.Warn("SESSION_SECRET not set; using an ephemeral secret, sessions will not survive restarts")
	}

	sessions, errSessions := buildSessionStore(cfg, conn)
	if errSessions != nil {
		return errSessions
	}

	store := storage.NewGormStorage(conn)
	limiter := ratelimit.New(store, func() ratelimit.Policy {
		return ratelimit.Policy{
			MaxSubmissions: settings.IntValue(settings.RateLimitMaxKey, cfg.RateLimit.MaxSubmissions),
			WindowDays:     settings.IntValue(settings.RateLimitWindowDaysKey, cfg.RateLimit.WindowDays),
		}
	})

	router := internalhttp.NewRouter(store, sessions, limiter, cfg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server starting")
		if errServe := srv.ListenAndServe(); errServe != nil && errServe != http.ErrServerClosed {
			errCh <- errServe
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case errServe := <-errCh:
		return errServe
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("shutdown: %w", errShutdown)
	}

	log.Info("server stopped gracefully")
	return nil
}

// buildSessionStore picks the Redis store when an address is configured and
// the relational store otherwise.
func buildSessionStore(cfg config.Config, conn *gorm.DB) (session.Store, error) {
	if cfg.Redis.Addr == "" {
		return session.NewGormStore(conn), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if errPing := client.Ping(pingCtx).Err(); errPing != nil {
		return nil, fmt.Errorf("redis ping: %w", errPing)
	}

	log.WithField("addr", cfg.Redis.Addr).Info("using redis session store")
	return session.NewRedisStore(client), nil
}
