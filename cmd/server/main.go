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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	"github.com/yukikurage/ticket-tracker/internal/config"
	"github.com/yukikurage/ticket-tracker/internal/database"
	"github.com/yukikurage/ticket-tracker/internal/logging"
	"github.com/yukikurage/ticket-tracker/internal/repository"
	"github.com/yukikurage/ticket-tracker/internal/server"
	"github.com/yukikurage/ticket-tracker/internal/services"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if cfg.SessionSecret == "" {
		secret, err := utils.GenerateSecret(32)
		if err != nil {
			logger.Fatal("failed to generate session secret", zap.Error(err))
		}
		cfg.SessionSecret = secret
		logger.Warn("SESSION_SECRET is not set; using a random secret, sessions will not survive a restart")
	}

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	// Create the schema now; requests retry if this fails
	boot := database.NewBootstrapper(db, logger)
	if err := boot.Ensure(context.Background()); err != nil {
		logger.Warn("schema bootstrap failed at startup, will retry on first request", zap.Error(err))
	}

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}

	// Initialize triage advisor
	var advisor *services.TriageAdvisor
	if cfg.OpenAIAPIKey != "" {
		advisor = services.NewTriageAdvisor(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	engine, err := server.New(server.Dependencies{
		Config:        cfg,
		Logger:        logger,
		Bootstrapper:  boot,
		SessionStore:  store,
		AuthService:   services.NewAuthService(repository.NewUserRepository(db), auth.NewPasswordHasher(cfg.BcryptCost)),
		TicketService: services.NewTicketService(repository.NewTicketRepository(db)),
		Advisor:       advisor,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("session_backend", cfg.SessionBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
