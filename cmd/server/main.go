package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/router"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/anonto42/pet-adopt/backend/pkg/config"
	"github.com/anonto42/pet-adopt/backend/pkg/firebase"
	"github.com/anonto42/pet-adopt/backend/pkg/logger"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"github.com/anonto42/pet-adopt/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg, zl.Named("db"))
	if err != nil {
		zl.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	m, metricsHandler, err := metrics.Setup("pet-feed")
	if err != nil {
		zl.Fatal("failed to set up metrics", zap.Error(err))
	}

	repos := db.Repositories()
	svc := services.New(repos, m, zl)

	verifier, err := newVerifier(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to set up identity provider", zap.Error(err))
	}
	resolver := auth.NewResolver(verifier, repos.Users, cfg.AdminEmail, zl.Named("auth"))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, cfg, zl.Named("http"), m)
	if err := router.SetupRoutes(e, svc, resolver, zl); err != nil {
		zl.Fatal("failed to set up routes", zap.Error(err))
	}

	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsHandler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zl.Info("metrics server listening", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		zl.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("metrics server shutdown", zap.Error(err))
	}
}

func newVerifier(ctx context.Context, cfg *config.Config, zl *zap.Logger) (auth.Verifier, error) {
	if cfg.AuthProvider != config.AuthFirebase {
		return auth.NewJWTVerifier(cfg.JWTSecret), nil
	}
	client, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath, zl.Named("firebase"))
	if err != nil {
		return nil, err
	}
	return auth.NewFirebaseVerifier(client), nil
}
