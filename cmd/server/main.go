package main

import (
	"cliprace/backend/internal/api"
	"cliprace/backend/internal/config"
	"cliprace/backend/internal/repository/mongo"
	"cliprace/backend/internal/service"
	"cliprace/backend/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting ClipRace API Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation in the background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureContestIndexes(ctx, appDB.Collection("contests"))
		mongo.EnsureSubmissionIndexes(ctx, appDB.Collection("submissions"))
		mongo.EnsureMetricsIndexes(ctx, appDB.Collection("metrics_daily"))
		mongo.EnsureLeaderboardIndexes(ctx, appDB.Collection("leaderboards"))
		mongo.EnsureCashoutIndexes(ctx, appDB.Collection("cashouts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	contestRepo := mongo.NewMongoContestRepository(appDB)
	submissionRepo := mongo.NewMongoSubmissionRepository(appDB)
	metricsRepo := mongo.NewMongoMetricsRepository(appDB)
	leaderboardRepo := mongo.NewMongoLeaderboardRepository(appDB)
	cashoutRepo := mongo.NewMongoCashoutRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	contestService := service.NewContestService(contestRepo, fileStorage)
	submissionService := service.NewSubmissionService(submissionRepo, contestRepo)
	leaderboardService := service.NewLeaderboardService(submissionRepo, contestRepo, leaderboardRepo)
	analyticsService := service.NewAnalyticsService(contestRepo, submissionRepo)
	cashoutService := service.NewCashoutService(cashoutRepo)
	metricsService := service.NewMetricsService(submissionRepo, metricsRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, contestService, submissionService,
		leaderboardService, analyticsService, cashoutService, metricsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give in-flight requests a few seconds to finish
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
