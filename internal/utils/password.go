package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword returns the one-way salted bcrypt hash of a raw password
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether raw matches the stored bcrypt hash
func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
