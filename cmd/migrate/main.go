package main

import (
	"coffee_bot/internal/config" // Custom import path (Config)
	"coffee_bot/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
