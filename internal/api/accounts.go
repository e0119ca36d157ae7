package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"bookkeeper/internal/domain"     // Importing domain models
	"bookkeeper/internal/middleware" // Current-user lookup
	"bookkeeper/internal/utils"      // Cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// accountsCacheKey caches the account catalog listing
const accountsCacheKey = "accounts:all"

// CreateAccountRequest is the payload for creating a chart-of-accounts entry
type CreateAccountRequest struct {
	Name               string `json:"name"`                // Account name, required and unique
	Code               string `json:"code"`                // Account code, required
	Type               string `json:"type"`                // Account type, required
	TypeCode           string `json:"type_code"`           // Account type code, required
	SubAccount         string `json:"sub_account"`         // Optional sub-account name
	SubAccountCode     string `json:"sub_account_code"`    // Optional sub-account code
	FinancialStatement string `json:"financial_statement"` // Optional financial statement
}

// UpdateAccountRequest is the allow-listed partial update payload for accounts
type UpdateAccountRequest struct {
	Name               *string `json:"name"`
	Code               *string `json:"code"`
	Type               *string `json:"type"`
	TypeCode           *string `json:"type_code"`
	SubAccount         *string `json:"sub_account"`
	SubAccountCode     *string `json:"sub_account_code"`
	FinancialStatement *string `json:"financial_statement"`
}

// ListAccountsHandler returns the account catalog ordered by name.
// Open to any authenticated user.
func ListAccountsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Account
		if found, err := utils.GetCache(ctx, rdb, accountsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var accounts []domain.Account
		if err := db.Order("name asc").Find(&accounts).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error fetching accounts")
			return
		}
		_ = utils.SetCache(ctx, rdb, accountsCacheKey, accounts, 60*time.Second)
		c.JSON(http.StatusOK, accounts)
	}
}

// CreateAccountHandler creates a catalog account (Admin only)
func CreateAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		if req.Name == "" || req.Code == "" || req.Type == "" || req.TypeCode == "" {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Name, code, type and type_code are required")
			return
		}
		account := domain.Account{
			Name:               req.Name,
			Code:               req.Code,
			Type:               req.Type,
			TypeCode:           req.TypeCode,
			SubAccount:         req.SubAccount,
			SubAccountCode:     req.SubAccountCode,
			FinancialStatement: req.FinancialStatement,
			CreatedBy:          middleware.CurrentUser(c).ID, // Stamp the creator
		}
		if err := db.Create(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Account name already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error creating account")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, accountsCacheKey)
		c.JSON(http.StatusCreated, account)
	}
}

// UpdateAccountHandler applies a partial update to an account (Admin only).
// Snapshots already frozen into records are deliberately left untouched.
func UpdateAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateAccountRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var account domain.Account
		if err := db.First(&account, "id = ?", c.Param("id")).Error; err != nil {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Account not found")
			return
		}
		if req.Name != nil {
			if *req.Name == "" {
				fail(c, http.StatusBadRequest, domain.KindValidation, "Name must not be empty")
				return
			}
			account.Name = *req.Name
		}
		if req.Code != nil {
			account.Code = *req.Code
		}
		if req.Type != nil {
			account.Type = *req.Type
		}
		if req.TypeCode != nil {
			account.TypeCode = *req.TypeCode
		}
		if req.SubAccount != nil {
			account.SubAccount = *req.SubAccount
		}
		if req.SubAccountCode != nil {
			account.SubAccountCode = *req.SubAccountCode
		}
		if req.FinancialStatement != nil {
			account.FinancialStatement = *req.FinancialStatement
		}
		if err := db.Save(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Account name already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error updating account")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, accountsCacheKey)
		c.JSON(http.StatusOK, account)
	}
}

// DeleteAccountHandler removes an account (Admin only). Records referencing
// its name keep their frozen snapshot and remain valid.
func DeleteAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.Account{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error deleting account")
			return
		}
		if res.RowsAffected == 0 {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Account not found")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, accountsCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
