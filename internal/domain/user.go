package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Roles understood by the access control layer
const (
	RoleAdmin      = "Admin"      // Full access, including user and catalog management
	RoleAccountant = "Accountant" // Record read/write only
)

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`                 // UUID primary key
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"` // Unique username
	Password  string    `gorm:"not null" json:"-"`                            // Bcrypt hash, never serialized
	Role      string    `gorm:"size:16;not null" json:"role"`                 // Role: Admin or Accountant
	CreatedAt time.Time `json:"created_at"`                                   // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key if none was set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether r is one of the known roles
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleAccountant
}
