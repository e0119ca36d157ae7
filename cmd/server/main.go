package main

import (
	"context" // context package is needed for Redis operations

	"bookkeeper/internal/api"    // Custom package for API handlers and router
	"bookkeeper/internal/config" // Custom package for configuration
	"bookkeeper/internal/db"     // Custom package for database setup

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.AutoMigrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	// Seed a default Admin on a cold start
	if err := db.EnsureDefaultAdmin(gdb, cfg.AdminUser, cfg.AdminPass); err != nil {
		logrus.Fatalf("failed to ensure default admin: %v", err)
	}

	// Setup Redis client; caching is optional and disabled when no address is set
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, listing caches disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(gdb, redisClient, cfg) // Assemble routes

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
