package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"go-contact-backend/config"
	_ "go-contact-backend/docs" // Important for Swagger
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/repository/postgres"
	"go-contact-backend/internal/session"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/database"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	redispkg "go-contact-backend/pkg/redis"
	"go-contact-backend/pkg/validation"
)

// @title           Contact Form API
// @version         1.0
// @description     Single-endpoint contact form backend: validates, stores and forwards visitor enquiries.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact backend", "port", cfg.Port)

	if cfg.SessionSecret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		cfg.SessionSecret = hex.EncodeToString(buf)
		logger.Log.Warn("SESSION_SECRET not set; generated an ephemeral secret, sessions reset on restart")
	}

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Run Migrations
	m, err := migrate.New("file://migrations", cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to initialize migrations", "error", err)
		os.Exit(1)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 5. Setup Session Store (Redis preferred, in-memory fallback)
	var sessions domain.SessionStore
	if err := redispkg.Initialize(redispkg.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory session store", "error", err)
		sessions = session.NewMemoryStore()
	} else {
		sessions = session.NewRedisStore(redispkg.Client())
		defer redispkg.Close()
	}

	// 6. Setup Mailer
	mailer := email.NewSMTPMailer(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("SMTP not fully configured - contact submissions will fail at notification")
	}

	// 7. Setup UseCase
	contactRepo := postgres.NewContactRepository(dbPool)
	validate := validation.New()
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	contactUC := usecase.NewContactUsecase(contactRepo, mailer, sessions, validate, email.NewIdentity(cfg), window)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Sessions:  sessions,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
