package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"

	"github.com/toolthread/transaction-tracker/internal/application/service"
	"github.com/toolthread/transaction-tracker/internal/domain/money"
	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/auth"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/cache"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/config"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/db"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/handler"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/logger"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/metrics"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/middleware"
	"github.com/toolthread/transaction-tracker/internal/infrastructure/pdf"
)

func main() {
	cfg := config.Load()

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.App.LogLevel)).
		WithFields(map[string]interface{}{"app": cfg.App.Name})
	logger.SetDefaultLogger(log)

	log.Info("Starting transaction tracker", map[string]interface{}{
		"env":  cfg.App.Env,
		"port": cfg.App.Port,
	})

	metrics.Init()

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{"error": err.Error()})
	}

	badgerOpts := badger.DefaultOptions(cfg.Storage.DataDir)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{"error": err.Error()})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
		}
	}()

	// Initialize repositories
	txRepo, err := db.NewBadgerTransactionRepository(badgerDB)
	if err != nil {
		log.Fatal("Failed to initialize transaction repository", map[string]interface{}{"error": err.Error()})
	}
	defer txRepo.Close()
	userRepo := db.NewBadgerUserRepository(badgerDB)

	// Initialize the receipt pipeline
	formatter := money.NewFormatter()
	engine := receipt.NewEngine(formatter,
		receipt.WithCompanyName(cfg.App.CompanyName, cfg.App.CompanyInitials))
	renderer := pdf.NewRenderer()
	receiptCache := cache.NewReceiptCache()
	receiptCache.SetExpiration(cfg.Storage.ReceiptCacheTTL)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal("Failed to initialize token issuer", map[string]interface{}{"error": err.Error()})
	}

	// Initialize services
	txService := service.NewTransactionService(txRepo, log)
	receiptService := service.NewReceiptService(txRepo, engine, renderer, formatter, receiptCache, log)
	authService := service.NewAuthService(userRepo, tokens, log)

	// Initialize handlers
	txHandler := handler.NewTransactionHandler(txService, receiptService, log)
	receiptHandler := handler.NewReceiptHandler(receiptService, log)
	authHandler := handler.NewAuthHandler(authService, log)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(metrics.Instrument)
	router.Use(middleware.LoggingMiddleware(log))

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	authHandler.RegisterRoutes(router)
	receiptHandler.RegisterRoutes(router)

	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware(tokens, log))
	txHandler.RegisterRoutes(protected)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
