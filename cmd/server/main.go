// Command server runs the wardrobe backend: an HTTP API that catalogs
// clothing photos with a vision model and composes outfits from the catalog
// with a stylist model.
//
// Startup order: env + config, logging, database, tracing, inference client,
// optional object storage, router, then an http.Server with graceful
// shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-wardrobe-backend/internal/config"
	httpapi "github.com/tbourn/go-wardrobe-backend/internal/http"
	"github.com/tbourn/go-wardrobe-backend/internal/http/handlers"
	"github.com/tbourn/go-wardrobe-backend/internal/inference"
	"github.com/tbourn/go-wardrobe-backend/internal/observability"
	"github.com/tbourn/go-wardrobe-backend/internal/repo"
	"github.com/tbourn/go-wardrobe-backend/internal/storage"
	"github.com/tbourn/go-wardrobe-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title        Wardrobe Backend API
// @version      1.0
// @description  Catalog clothing photos and generate outfit suggestions.
// @BasePath     /
func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("opening database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrating database failed")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up tracing failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	ai, err := inference.NewGemini(ctx, cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("creating inference client failed")
	}
	defer ai.Close()

	// Object storage is optional: without a bucket the upload endpoint is
	// not mounted and clients supply their own image URLs.
	var store handlers.ImageStore
	if cfg.Storage.Bucket != "" {
		s3store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("creating image store failed")
		}
		store = s3store
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("image uploads enabled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, ai, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
