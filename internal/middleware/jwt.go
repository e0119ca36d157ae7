package middleware

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bookkeeper/internal/domain" // Domain models and errors
	"bookkeeper/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// currentUserKey is the context key the auth middleware stores the resolved user under
const currentUserKey = "currentUser"

// JWTAuthMiddleware validates the bearer token and re-resolves the current
// user from the database on every request, so a deleted user's outstanding
// tokens stop working immediately.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.KindUnauthenticated, "message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// Expired and malformed tokens both fail authentication; only the message differs
			msg := "Invalid token"
			if errors.Is(err, domain.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.KindUnauthenticated, "message": msg})
			return
		}
		var user domain.User // Re-resolve the user behind the claims
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			// Token is valid but its user is gone
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.KindUnauthenticated, "message": "User no longer exists"})
			return
		}
		c.Set(currentUserKey, &user) // Store resolved user in context
		c.Next()                     // Proceed to the next handler
	}
}

// RequireRole aborts with 403 unless the authenticated user's role is in roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			// RequireRole must run behind JWTAuthMiddleware
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.KindUnauthenticated, "message": "Authentication required"})
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next() // Role accepted
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.KindForbidden, "message": "Insufficient permissions"})
	}
}

// CurrentUser returns the user resolved by JWTAuthMiddleware, or nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
