package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"net/http"

	"coffee_bot/internal/api"        // Custom package for API handlers
	"coffee_bot/internal/coffee"     // Core order/lottery/ledger service
	"coffee_bot/internal/command"    // Explicit command registry
	"coffee_bot/internal/config"     // Custom package for configuration
	"coffee_bot/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Core service and the chat command registry
	svc := coffee.New(db)
	registry := command.NewRegistry(svc)

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Liveness probe
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "CoffeeBot working!")
	})

	// Slash command endpoint, authenticated with the Slack signing secret
	r.POST("/coffee",
		middleware.SlackVerifyMiddleware(cfg.SlackSigningSecret),
		api.SlackCommandHandler(svc, registry))

	// Public menu listing for a kiosk display
	r.GET("/menu", api.MenuHandler(svc, redisClient))

	// Admin login endpoint
	r.POST("/admin/login", api.LoginHandler(cfg.AdminPasswordHash, cfg.JWTSecret))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", api.ListUsersHandler(svc, redisClient))        // Users with deposits
	adminGroup.GET("/orders", api.CompletedOrdersHandler(svc, redisClient)) // Completed order log
	adminGroup.GET("/wallet", api.WalletHistoryHandler(svc, redisClient))   // Wallet fill journal

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
