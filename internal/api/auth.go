package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes

	"bookkeeper/internal/domain"     // Importing domain models
	"bookkeeper/internal/middleware" // Current-user lookup
	"bookkeeper/internal/utils"      // JWT and password utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRequest is the payload for admin-driven user registration
type RegisterRequest struct {
	Username string `json:"username"` // Username must be provided
	Password string `json:"password"` // Password must be provided
	Role     string `json:"role"`     // Role: Admin or Accountant
}

// LoginRequest is the payload for credential verification
type LoginRequest struct {
	Username string `json:"username"` // Username must be provided
	Password string `json:"password"` // Password must be provided
}

// RegisterHandler creates a new user account. Admin only; routing enforces the role.
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		if req.Username == "" || req.Password == "" {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Username and password are required")
			return
		}
		if !domain.ValidRole(req.Role) {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Role must be Admin or Accountant")
			return
		}
		// Store a one-way salted hash, never the raw password
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Failed to hash password")
			return
		}
		user := domain.User{Username: req.Username, Password: hash, Role: req.Role}
		if err := db.Create(&user).Error; err != nil {
			// The unique index on username is the uniqueness authority
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateUsername, "Username already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error creating user")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey) // Drop stale user listing
		logrus.WithFields(logrus.Fields{
			"username": user.Username, // New username
			"role":     user.Role,     // Assigned role
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": user.ID})
	}
}

// LoginHandler verifies credentials and issues a session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// Unknown user and wrong password answer identically to avoid username enumeration
			fail(c, http.StatusUnauthorized, domain.KindInvalidCredentials, "Invalid credentials")
			return
		}
		if !utils.CheckPassword(user.Password, req.Password) {
			fail(c, http.StatusUnauthorized, domain.KindInvalidCredentials, "Invalid credentials")
			return
		}
		token, err := utils.GenerateJWT(&user, jwtSecret) // Generate JWT token
		if err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token, // Signed session token
			"user": gin.H{
				"id":       user.ID,       // User ID
				"username": user.Username, // Username
				"role":     user.Role,     // User role
			},
		})
	}
}

// MeHandler returns the identity resolved by the auth middleware
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			fail(c, http.StatusUnauthorized, domain.KindUnauthenticated, "Authentication required")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,       // User ID
			"username": user.Username, // Username
			"role":     user.Role,     // User role
		})
	}
}
