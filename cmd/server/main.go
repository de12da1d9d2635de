package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/localconnect/localconnect-backend/config"
	"github.com/localconnect/localconnect-backend/internal/app/controller"
	"github.com/localconnect/localconnect-backend/internal/app/repository"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/internal/db"
	"github.com/localconnect/localconnect-backend/internal/middleware"
	"github.com/localconnect/localconnect-backend/internal/provider/yelp"
	"github.com/localconnect/localconnect-backend/internal/router"
	"github.com/localconnect/localconnect-backend/internal/scheduler"
	"github.com/localconnect/localconnect-backend/internal/storage"
	"github.com/localconnect/localconnect-backend/internal/ws"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting LocalConnect Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Session cache: Redis when reachable, in-memory otherwise. The
	// in-memory store needs the sweeper since it cannot expire keys on
	// its own.
	var kv cache.KeyValueStore
	var sweeper *scheduler.SessionSweeper

	redisStore, err := cache.NewRedisStore(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory session cache", map[string]interface{}{
			"error": err.Error(),
		})
		memStore := cache.NewMemoryStore()
		kv = memStore
		sweeper = scheduler.NewSessionSweeper(memStore)
	} else {
		defer redisStore.Close()
		kv = redisStore
	}

	store := cache.NewStore(kv, cfg.Session.TTL)

	if sweeper != nil {
		if err := sweeper.Start(); err != nil {
			logger.Error("Failed to start session sweeper", err)
		} else {
			defer sweeper.Stop()
		}
	}

	// Repositories and services
	listingRepo := repository.NewUserBusinessRepository(db.GetDB())
	yelpClient := yelp.NewClient(&cfg.Yelp)
	if !yelpClient.HasCredential() {
		logger.Warn("No provider API key configured; nearby search will serve user listings only", nil)
	}

	businessService := service.NewBusinessService(yelpClient, listingRepo, store)
	reviewService := service.NewReviewService(store, businessService)
	favoriteService := service.NewFavoriteService(store, businessService)
	listingService := service.NewListingService(listingRepo)
	s3Storage := storage.NewS3Storage(cfg.S3)

	// Controllers
	businessController := controller.NewBusinessController(businessService, favoriteService)
	reviewController := controller.NewReviewController(reviewService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	listingController := controller.NewListingController(listingService, reviewService)
	uploadController := controller.NewUploadController(s3Storage)
	wsHandler := ws.NewHandler(businessService, cfg.CORS.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)

	r := router.NewRouter(
		businessController,
		reviewController,
		favoriteController,
		listingController,
		uploadController,
		wsHandler,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
