package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Account is a chart-of-accounts entry, curated by admins and referenced by
// name from transaction records.
type Account struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`              // UUID primary key
	Name               string    `gorm:"uniqueIndex;size:191;not null" json:"name"` // Unique account name (the join key for records)
	Code               string    `gorm:"size:32;not null" json:"code"`              // Account code
	Type               string    `gorm:"size:64;not null" json:"type"`              // Account type
	TypeCode           string    `gorm:"size:32;not null" json:"type_code"`         // Account type code
	SubAccount         string    `gorm:"size:191" json:"sub_account"`               // Optional sub-account name
	SubAccountCode     string    `gorm:"size:32" json:"sub_account_code"`           // Optional sub-account code
	FinancialStatement string    `gorm:"size:64" json:"financial_statement"`        // Financial statement classification
	CreatedBy          string    `gorm:"size:36" json:"created_by"`                 // User ID of the creator
	CreatedAt          time.Time `json:"created_at"`                                // Timestamp of creation
	UpdatedAt          time.Time `json:"updated_at"`                                // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key if none was set
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
