package db

import (
	"travel_booking/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table in creation order
func Models() []any {
	return []any{&domain.User{}, &domain.Package{}, &domain.CartEntry{}, &domain.Booking{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
