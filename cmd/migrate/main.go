package main

import (
	"bookkeeper/internal/config" // Custom import path (Config)
	"bookkeeper/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg, err := config.Load() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	db.Migrate(cfg.DSN())
}
