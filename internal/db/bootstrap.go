package db

import (
	"bookkeeper/internal/domain" // Importing domain models
	"bookkeeper/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// EnsureDefaultAdmin seeds an Admin account at cold start when the user table
// is empty, so the system is never left without an administrator.
func EnsureDefaultAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // At least one user exists, nothing to do
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := domain.User{
		Username: username,         // Bootstrap admin username
		Password: hash,             // Hashed bootstrap password
		Role:     domain.RoleAdmin, // Always an Admin
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Default admin user created")
	return nil
}
