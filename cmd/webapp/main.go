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

	"go.uber.org/zap"

	authController "skinshop/internal/auth/controller"
	authRepository "skinshop/internal/auth/repository"
	authUsecase "skinshop/internal/auth/usecase"

	catalogController "skinshop/internal/catalog/controller"
	catalogRepository "skinshop/internal/catalog/repository"
	catalogUsecase "skinshop/internal/catalog/usecase"

	economyController "skinshop/internal/economy/controller"
	economyRepository "skinshop/internal/economy/repository"
	economyUsecase "skinshop/internal/economy/usecase"

	"skinshop/internal/service/config"
	"skinshop/internal/service/database"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/metrics"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/router"
	"skinshop/internal/service/session"
	"skinshop/internal/service/token"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLoggers(cfg.AccessLogPath, cfg.DBLogPath); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		_ = logger.SyncLoggers()
	}()

	db, err := database.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logger.AccessLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	tokens, err := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.AccessLogger.Fatal("Failed to create token manager", zap.Error(err))
	}

	var sessions session.Store
	if cfg.SessionPolicy == config.SessionSingle {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := session.Connect(ctx, cfg.RedisEndpoint, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.AccessLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
	}

	middleware.SetRequestTimeout(cfg.RequestTimeout)

	authRepository := authRepository.NewAuthRepository(db)
	authUseCase := authUsecase.NewAuthUsecase(authRepository, tokens, sessions, authUsecase.Options{
		StartingCoins: cfg.StartingCoins,
		AutoLogin:     cfg.RegisterAutoLogin,
	})
	authHandler := authController.NewAuthHandler(authUseCase)

	economyRepository := economyRepository.NewEconomyRepository(db)
	economyUseCase := economyUsecase.NewEconomyUsecase(economyRepository, cfg.MaxGrantAmount)
	economyHandler := economyController.NewEconomyHandler(economyUseCase)

	catalogRepository := catalogRepository.NewCatalogRepository(db)
	catalogUseCase := catalogUsecase.NewCatalogUsecase(catalogRepository)
	catalogHandler := catalogController.NewCatalogHandler(catalogUseCase)

	authenticator := middleware.NewAuthenticator(tokens, sessions)
	mainRouter := router.SetUpRoutes(authHandler, economyHandler, catalogHandler, authenticator)

	server := &http.Server{
		Addr:              cfg.BackendURL,
		Handler:           metrics.InstrumentHandler(middleware.EnableCORS(cfg.FrontendURL)(mainRouter)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.AccessLogger.Info("Starting HTTP server",
			zap.String("address", cfg.BackendURL),
			zap.String("session_policy", cfg.SessionPolicy),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.AccessLogger.Fatal("Error on starting server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.AccessLogger.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.AccessLogger.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
