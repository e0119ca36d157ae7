package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Project is an admin-curated catalog of projects under construction.
type Project struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`              // UUID primary key
	Name      string    `gorm:"uniqueIndex;size:191;not null" json:"name"` // Unique project name
	Code      string    `gorm:"uniqueIndex;size:32;not null" json:"code"`  // Unique project code
	CreatedBy string    `gorm:"size:36" json:"created_by"`                 // User ID of the creator
	CreatedAt time.Time `json:"created_at"`                                // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key if none was set
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
