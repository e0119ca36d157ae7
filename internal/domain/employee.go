package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Employee is an admin-curated catalog entry referenced by name from
// transaction records.
type Employee struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`              // UUID primary key
	Name      string    `gorm:"uniqueIndex;size:191;not null" json:"name"` // Unique employee name (the join key for records)
	Title     string    `gorm:"size:128;not null" json:"title"`            // Job title
	Code      string    `gorm:"uniqueIndex;size:32;not null" json:"code"`  // Unique employee code
	CreatedBy string    `gorm:"size:36" json:"created_by"`                 // User ID of the creator
	CreatedAt time.Time `json:"created_at"`                                // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key if none was set
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
