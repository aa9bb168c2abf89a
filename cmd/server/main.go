package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juliomeza/sales-orders-system-sub001/internal/cache"
	"github.com/juliomeza/sales-orders-system-sub001/internal/config"
	"github.com/juliomeza/sales-orders-system-sub001/internal/database"
	"github.com/juliomeza/sales-orders-system-sub001/internal/handlers"
	appLogger "github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/middleware"
	"github.com/juliomeza/sales-orders-system-sub001/internal/migrations"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
	"github.com/juliomeza/sales-orders-system-sub001/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logg, err := appLogger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logg.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("Failed to connect to database", "error", err)
	}
	if err := migrations.Seed(db, logg, cfg.DefaultUserPassword); err != nil {
		logg.Fatal("Failed to seed database", "error", err)
	}

	// Initialize Redis-backed stats cache
	cacheClient, err := cache.Initialize(cfg.RedisURL)
	if err != nil {
		logg.Fatal("Failed to connect to Redis", "error", err)
	}
	defer cacheClient.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	validator := services.NewReferenceValidator(refRepo)
	orderService := services.NewOrderService(orderRepo, validator, cacheClient, logg)
	customerService := services.NewCustomerService(customerRepo, userRepo, cfg.DefaultUserPassword, logg)
	statsService := services.NewStatsService(statsRepo, cacheClient, time.Duration(cfg.StatsCacheTTL)*time.Second, logg)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute, logg)

	// Initialize handlers
	production := cfg.IsProduction()
	orderHandler := handlers.NewOrderHandler(orderService, statsService, logg, production)
	customerHandler := handlers.NewCustomerHandler(customerService, logg, production)
	authHandler := handlers.NewAuthHandler(authService, logg, production)
	refHandler := handlers.NewReferenceHandler(refRepo, logg, production)

	// Setup routes
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.POST("/auth/login", authHandler.Login)

	authed := router.Group("/", middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders", orderHandler.List)
		authed.GET("/orders/stats", orderHandler.Stats)
		authed.GET("/orders/:id", orderHandler.GetByID)
		authed.PUT("/orders/:id", orderHandler.Update)
		authed.DELETE("/orders/:id", orderHandler.Delete)

		authed.GET("/carriers", refHandler.ListCarriers)
		authed.GET("/warehouses", refHandler.ListWarehouses)
		authed.GET("/materials", refHandler.ListMaterials)
		authed.GET("/accounts", refHandler.ListAccounts)

		admin := authed.Group("/customers", middleware.RequireAdmin())
		{
			admin.POST("", customerHandler.Create)
			admin.GET("", customerHandler.List)
			admin.GET("/:id", customerHandler.GetByID)
			admin.PUT("/:id", customerHandler.Update)
			admin.DELETE("/:id", customerHandler.Delete)
		}
	}

	// Start server
	logg.Info("Server starting", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logg.Fatal("Failed to start server", "error", err)
	}
}
