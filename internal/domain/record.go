package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// AccountSnapshot is the frozen copy of an account's attributes embedded into
// a record at write time. Later catalog edits or deletions never touch it; it
// is only recomputed when the record's own referencing name field changes.
type AccountSnapshot struct {
	Name               string `json:"name"`                // Account name at write time
	Code               string `json:"code"`                // Account code at write time
	Type               string `json:"type"`                // Account type at write time
	TypeCode           string `json:"type_code"`           // Account type code at write time
	SubAccount         string `json:"sub_account"`         // Sub-account name at write time
	SubAccountCode     string `json:"sub_account_code"`    // Sub-account code at write time
	FinancialStatement string `json:"financial_statement"` // Financial statement at write time
}

// EmployeeSnapshot is the frozen copy of an employee's attributes embedded
// into a record at write time.
type EmployeeSnapshot struct {
	Name  string `json:"name"`  // Employee name at write time
	Title string `json:"title"` // Job title at write time
	Code  string `json:"code"`  // Employee code at write time
}

// SnapshotAccount copies the account attributes that records freeze.
// Pure; the snapshot reflects the catalog state at the moment of the call.
func SnapshotAccount(a *Account) AccountSnapshot {
	return AccountSnapshot{
		Name:               a.Name,
		Code:               a.Code,
		Type:               a.Type,
		TypeCode:           a.TypeCode,
		SubAccount:         a.SubAccount,
		SubAccountCode:     a.SubAccountCode,
		FinancialStatement: a.FinancialStatement,
	}
}

// SnapshotEmployee copies the employee attributes that records freeze.
func SnapshotEmployee(e *Employee) EmployeeSnapshot {
	return EmployeeSnapshot{
		Name:  e.Name,
		Title: e.Title,
		Code:  e.Code,
	}
}

// Record Model
type Record struct {
	ID               string           `gorm:"primaryKey;size:36" json:"id"`                                      // UUID primary key
	Date             time.Time        `gorm:"not null" json:"date"`                                              // Transaction date
	SourceName       string           `gorm:"size:191;not null" json:"source_name"`                              // Account the expense is paid from
	SourceSnapshot   AccountSnapshot  `gorm:"embedded;embeddedPrefix:source_account_" json:"source_snapshot"`    // Frozen source account attributes
	TargetName       string           `gorm:"size:191;not null" json:"target_name"`                              // Account the expense is paid to
	TargetSnapshot   AccountSnapshot  `gorm:"embedded;embeddedPrefix:target_account_" json:"target_snapshot"`    // Frozen target account attributes
	Description      string           `gorm:"size:1024;not null" json:"description"`                             // Free-form description
	Amount           float64          `gorm:"not null" json:"amount"`                                            // Transaction amount
	EmployeeName     string           `gorm:"size:191;not null" json:"employee_name"`                            // Employee the record is attributed to
	EmployeeSnapshot EmployeeSnapshot `gorm:"embedded;embeddedPrefix:employee_detail_" json:"employee_snapshot"` // Frozen employee attributes
	CreatedBy        string           `gorm:"size:36" json:"-"`                                                  // User ID; listings expose the username instead
	LastModifiedBy   string           `gorm:"size:36" json:"-"`                                                  // User ID; listings expose the username instead
	CreatedAt        time.Time        `json:"created_at"`                                                        // Timestamp of creation
	UpdatedAt        time.Time        `json:"updated_at"`                                                        // Timestamp of last update
}

// BeforeCreate assigns a UUID primary key if none was set
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
