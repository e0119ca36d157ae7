package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"bookkeeper/internal/domain" // Importing domain models
	"bookkeeper/internal/utils"  // Cache and password utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// usersCacheKey caches the admin user listing
const usersCacheKey = "users:all"

// UpdateUserRequest is the allow-listed partial update payload for users.
// Absent fields stay untouched; unknown fields are rejected.
type UpdateUserRequest struct {
	Username *string `json:"username"` // New username
	Password *string `json:"password"` // New raw password, re-hashed before storage
	Role     *string `json:"role"`     // New role
}

// ListUsersHandler returns all users; password hashes are never serialized
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.User
		// Try to get cached response
		if found, err := utils.GetCache(ctx, rdb, usersCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var users []domain.User
		if err := db.Order("username asc").Find(&users).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error fetching users")
			return
		}
		_ = utils.SetCache(ctx, rdb, usersCacheKey, users, 60*time.Second)
		c.JSON(http.StatusOK, users)
	}
}

// UpdateUserHandler applies a partial update to a user (Admin only)
func UpdateUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			fail(c, http.StatusNotFound, domain.KindNotFound, "User not found")
			return
		}
		if req.Username != nil {
			if *req.Username == "" {
				fail(c, http.StatusBadRequest, domain.KindValidation, "Username must not be empty")
				return
			}
			user.Username = *req.Username
		}
		if req.Role != nil {
			if !domain.ValidRole(*req.Role) {
				fail(c, http.StatusBadRequest, domain.KindValidation, "Role must be Admin or Accountant")
				return
			}
			user.Role = *req.Role
		}
		if req.Password != nil {
			hash, err := utils.HashPassword(*req.Password) // Re-hash the new password
			if err != nil {
				fail(c, http.StatusInternalServerError, domain.KindInternal, "Failed to hash password")
				return
			}
			user.Password = hash
		}
		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateUsername, "Username already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error updating user")
			return
		}
		// Record listings embed usernames, so invalidate those too
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey, recordsCacheKey)
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes a user (Admin only). Records created by the user
// keep their createdBy reference; listings fall back to the raw id.
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.User{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error deleting user")
			return
		}
		if res.RowsAffected == 0 {
			fail(c, http.StatusNotFound, domain.KindNotFound, "User not found")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey, recordsCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
