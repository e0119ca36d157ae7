package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Dates and cache TTL

	"bookkeeper/internal/domain"     // Importing domain models
	"bookkeeper/internal/middleware" // Current-user lookup
	"bookkeeper/internal/utils"      // Cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// recordsCacheKey caches the record listing
const recordsCacheKey = "records:all"

// CreateRecordRequest is the payload for creating a transaction record
type CreateRecordRequest struct {
	Date         time.Time `json:"date"`          // Transaction date, required
	SourceName   string    `json:"source_name"`   // Source account name, must exist in the catalog
	TargetName   string    `json:"target_name"`   // Target account name, must exist in the catalog
	Description  string    `json:"description"`   // Description, required
	Amount       float64   `json:"amount"`        // Transaction amount
	EmployeeName string    `json:"employee_name"` // Employee name, must exist in the catalog
}

// UpdateRecordRequest is the allow-listed partial update payload for records.
// Name fields are applied verbatim; their snapshot is only recomputed when the
// new name resolves against the current catalog.
type UpdateRecordRequest struct {
	Date         *time.Time `json:"date"`
	SourceName   *string    `json:"source_name"`
	TargetName   *string    `json:"target_name"`
	Description  *string    `json:"description"`
	Amount       *float64   `json:"amount"`
	EmployeeName *string    `json:"employee_name"`
}

// RecordResponse is a record with createdBy/lastModifiedBy resolved to
// display usernames instead of raw user IDs.
type RecordResponse struct {
	domain.Record
	CreatedBy      string `json:"created_by"`       // Username of the creator
	LastModifiedBy string `json:"last_modified_by"` // Username of the last editor
}

// usernamesByID loads the usernames behind the given user IDs in one query
func usernamesByID(db *gorm.DB, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	var users []domain.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names
}

// recordResponse resolves a record's user IDs against the username map.
// A deleted user falls back to the raw id the record still carries.
func recordResponse(rec domain.Record, names map[string]string) RecordResponse {
	resp := RecordResponse{Record: rec, CreatedBy: rec.CreatedBy, LastModifiedBy: rec.LastModifiedBy}
	if name, ok := names[rec.CreatedBy]; ok {
		resp.CreatedBy = name
	}
	if name, ok := names[rec.LastModifiedBy]; ok {
		resp.LastModifiedBy = name
	}
	return resp
}

// ListRecordsHandler returns all records, newest first, with creator and
// last-editor usernames resolved. Open to any authenticated user.
func ListRecordsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []RecordResponse
		if found, err := utils.GetCache(ctx, rdb, recordsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var records []domain.Record
		if err := db.Order("created_at desc").Find(&records).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error fetching records")
			return
		}
		// Collect the distinct user IDs referenced by the listing
		seen := make(map[string]bool)
		var ids []string
		for _, rec := range records {
			for _, id := range []string{rec.CreatedBy, rec.LastModifiedBy} {
				if id != "" && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		names := usernamesByID(db, ids)
		resp := make([]RecordResponse, len(records))
		for i, rec := range records {
			resp[i] = recordResponse(rec, names)
		}
		_ = utils.SetCache(ctx, rdb, recordsCacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// CreateRecordHandler creates a transaction record. The referenced account
// and employee names must exist in their catalogs; their current attributes
// are frozen into the record as snapshots.
func CreateRecordHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		actingUser := middleware.CurrentUser(c)
		var req CreateRecordRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		if req.Date.IsZero() || req.SourceName == "" || req.TargetName == "" || req.Description == "" || req.EmployeeName == "" {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Date, source_name, target_name, description and employee_name are required")
			return
		}
		// Resolve the references against the current catalog state.
		// Creation is the strict gate: every reference must exist.
		var source, target domain.Account
		if err := db.Where("name = ?", req.SourceName).First(&source).Error; err != nil {
			fail(c, http.StatusBadRequest, domain.KindInvalidReference, "Invalid account selection")
			return
		}
		if err := db.Where("name = ?", req.TargetName).First(&target).Error; err != nil {
			fail(c, http.StatusBadRequest, domain.KindInvalidReference, "Invalid account selection")
			return
		}
		var employee domain.Employee
		if err := db.Where("name = ?", req.EmployeeName).First(&employee).Error; err != nil {
			fail(c, http.StatusBadRequest, domain.KindInvalidReference, "Invalid employee selection")
			return
		}
		record := domain.Record{
			Date:             req.Date,
			SourceName:       req.SourceName,
			SourceSnapshot:   domain.SnapshotAccount(&source), // Freeze source account attributes
			TargetName:       req.TargetName,
			TargetSnapshot:   domain.SnapshotAccount(&target), // Freeze target account attributes
			Description:      req.Description,
			Amount:           req.Amount,
			EmployeeName:     req.EmployeeName,
			EmployeeSnapshot: domain.SnapshotEmployee(&employee), // Freeze employee attributes
			CreatedBy:        actingUser.ID,
			LastModifiedBy:   actingUser.ID,
		}
		if err := db.Create(&record).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user":  actingUser.Username, // Acting user
				"error": err.Error(),         // Error message
			}).Error("Record creation failed")
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error creating record")
			return
		}
		logrus.WithFields(logrus.Fields{
			"record_id": record.ID,           // New record ID
			"user":      actingUser.Username, // Acting user
			"amount":    record.Amount,       // Transaction amount
		}).Info("Record created")
		_ = utils.DeleteCache(context.Background(), rdb, recordsCacheKey)
		names := map[string]string{actingUser.ID: actingUser.Username}
		c.JSON(http.StatusCreated, recordResponse(record, names))
	}
}

// UpdateRecordHandler applies a partial update to a record. Present fields
// are applied verbatim. A changed name field triggers a snapshot recompute
// from the current catalog when it resolves; when it does not, the stale
// snapshot is silently kept (permissive, unlike creation).
func UpdateRecordHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		actingUser := middleware.CurrentUser(c)
		var req UpdateRecordRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var record domain.Record
		if err := db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Record not found")
			return
		}
		if req.Date != nil {
			record.Date = *req.Date
		}
		if req.Description != nil {
			record.Description = *req.Description
		}
		if req.Amount != nil {
			record.Amount = *req.Amount
		}
		if req.SourceName != nil {
			record.SourceName = *req.SourceName
			var source domain.Account
			if err := db.Where("name = ?", *req.SourceName).First(&source).Error; err == nil {
				record.SourceSnapshot = domain.SnapshotAccount(&source) // Refresh from current catalog state
			}
		}
		if req.TargetName != nil {
			record.TargetName = *req.TargetName
			var target domain.Account
			if err := db.Where("name = ?", *req.TargetName).First(&target).Error; err == nil {
				record.TargetSnapshot = domain.SnapshotAccount(&target)
			}
		}
		if req.EmployeeName != nil {
			record.EmployeeName = *req.EmployeeName
			var employee domain.Employee
			if err := db.Where("name = ?", *req.EmployeeName).First(&employee).Error; err == nil {
				record.EmployeeSnapshot = domain.SnapshotEmployee(&employee)
			}
		}
		record.LastModifiedBy = actingUser.ID // Always stamp the editor
		if err := db.Save(&record).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error updating record")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, recordsCacheKey)
		names := usernamesByID(db, []string{record.CreatedBy, record.LastModifiedBy})
		c.JSON(http.StatusOK, recordResponse(record, names))
	}
}

// DeleteRecordHandler hard-deletes a record (Admin only)
func DeleteRecordHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.Record{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error deleting record")
			return
		}
		if res.RowsAffected == 0 {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Record not found")
			return
		}
		logrus.WithFields(logrus.Fields{
			"record_id": c.Param("id"),                      // Deleted record ID
			"user":      middleware.CurrentUser(c).Username, // Acting admin
		}).Info("Record deleted")
		_ = utils.DeleteCache(context.Background(), rdb, recordsCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
	}
}
