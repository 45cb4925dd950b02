package main

import (
	"context" // Context for seeding
	"flag"    // Command line flags

	"travel_booking/internal/config" // Custom import path (Config)
	"travel_booking/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", true, "insert the sample catalog and admin account when missing")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if *seed {
		if err := db.Seed(context.Background(), gdb); err != nil {
			logrus.Fatalf("seed failed: %v", err)
		}
		logrus.Info("Seed completed.")
	}
}
