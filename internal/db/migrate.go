package db

import (
	"bookkeeper/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL with duplicate-key error translation enabled, so
// unique-index violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// AutoMigrate creates tables, missing constraints, columns and indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Account{},
		&domain.Employee{},
		&domain.Project{},
		&domain.Record{},
	)
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
