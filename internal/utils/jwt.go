package utils

import (
	"errors" // Sentinel error matching
	"time"   // Time for token expiration

	"bookkeeper/internal/domain" // Domain models and errors

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is how long an issued session token stays valid. Tokens are
// stateless: there is no revocation list, logout is client-side discard.
const TokenTTL = 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               string `json:"user_id"`  // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	Role                 string `json:"role"`     // Custom claim for role
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed session token for the given user
func GenerateJWT(user *domain.User, secret string) (string, error) {
	return signToken(user, secret, TokenTTL)
}

// signToken builds and signs a token with an explicit validity window
func signToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,       // Custom claim for user ID
		Username: user.Username, // Custom claim for username
		Role:     user.Role,     // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string. Expired tokens report
// domain.ErrTokenExpired; every other failure reports domain.ErrTokenInvalid.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		// Accept HMAC signatures only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired // Expiry is reported distinctly
		}
		return nil, domain.ErrTokenInvalid
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, domain.ErrTokenInvalid
}
