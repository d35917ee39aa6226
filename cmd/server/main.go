package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lowball-ledger/internal/config"
	"github.com/lowball-ledger/internal/handler"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/service"
	"github.com/lowball-ledger/internal/worker"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logging before anything that logs
	if err := middleware.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis
	rdb := initRedis(cfg)

	// Auto migrate database
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	goalsRepo := repository.NewGoalsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	priceService := service.NewPriceService(rdb, cfg.Market)
	tradeService := service.NewTradeService(tradeRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, tradeService, priceService)
	statsService := service.NewStatsService(tradeRepo, inventoryRepo, goalsRepo)
	templateService := service.NewTemplateService(templateRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	tradeHandler := handler.NewTradeHandler(tradeService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	statsHandler := handler.NewStatsHandler(statsService)
	templateHandler := handler.NewTemplateHandler(templateService)
	streamHandler := handler.NewStreamHandler(statsService)

	// Live dashboard clients get fresh metrics on every trade mutation
	tradeService.SetNotifier(streamHandler)

	// Create Gin router
	router := gin.Default()

	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"version":    Version,
			"commit":     Commit,
			"build_time": BuildTime,
			"time":       time.Now().Unix(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		authHandler.RegisterRoutes(v1)

		// Protected routes
		authMiddleware := middleware.AuthMiddleware(authService)
		authHandler.RegisterProfileRoutes(v1, authMiddleware)
		tradeHandler.RegisterRoutes(v1, authMiddleware)
		inventoryHandler.RegisterRoutes(v1, authMiddleware)
		statsHandler.RegisterRoutes(v1, authMiddleware)
		templateHandler.RegisterRoutes(v1, authMiddleware)
		streamHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Start the background price refresh
	priceWorker := worker.NewPriceWorker(priceService, inventoryRepo, cfg.Market.RefreshCron)
	if err := priceWorker.Start(); err != nil {
		log.Fatalf("Failed to start price worker: %v", err)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	priceWorker.Stop()

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if err := rdb.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}

	log.Println("Server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Trade{},
		&models.InventoryItem{},
		&models.TradeTemplate{},
		&models.ProfitGoals{},
	)
}
