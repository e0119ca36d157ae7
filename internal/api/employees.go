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

// employeesCacheKey caches the employee catalog listing
const employeesCacheKey = "employees:all"

// CreateEmployeeRequest is the payload for creating an employee catalog entry
type CreateEmployeeRequest struct {
	Name  string `json:"name"`  // Employee name, required and unique
	Title string `json:"title"` // Job title, required
	Code  string `json:"code"`  // Employee code, required and unique
}

// UpdateEmployeeRequest is the allow-listed partial update payload for employees
type UpdateEmployeeRequest struct {
	Name  *string `json:"name"`
	Title *string `json:"title"`
	Code  *string `json:"code"`
}

// ListEmployeesHandler returns the employee catalog ordered by name
func ListEmployeesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Employee
		if found, err := utils.GetCache(ctx, rdb, employeesCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var employees []domain.Employee
		if err := db.Order("name asc").Find(&employees).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error fetching employees")
			return
		}
		_ = utils.SetCache(ctx, rdb, employeesCacheKey, employees, 60*time.Second)
		c.JSON(http.StatusOK, employees)
	}
}

// CreateEmployeeHandler creates an employee catalog entry (Admin only)
func CreateEmployeeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEmployeeRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		if req.Name == "" || req.Title == "" || req.Code == "" {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Name, title and code are required")
			return
		}
		employee := domain.Employee{
			Name:      req.Name,
			Title:     req.Title,
			Code:      req.Code,
			CreatedBy: middleware.CurrentUser(c).ID, // Stamp the creator
		}
		if err := db.Create(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Employee name or code already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error creating employee")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, employeesCacheKey)
		c.JSON(http.StatusCreated, employee)
	}
}

// UpdateEmployeeHandler applies a partial update to an employee (Admin only).
// Employee snapshots already frozen into records stay as written.
func UpdateEmployeeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateEmployeeRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var employee domain.Employee
		if err := db.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Employee not found")
			return
		}
		if req.Name != nil {
			if *req.Name == "" {
				fail(c, http.StatusBadRequest, domain.KindValidation, "Name must not be empty")
				return
			}
			employee.Name = *req.Name
		}
		if req.Title != nil {
			employee.Title = *req.Title
		}
		if req.Code != nil {
			employee.Code = *req.Code
		}
		if err := db.Save(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Employee name or code already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error updating employee")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, employeesCacheKey)
		c.JSON(http.StatusOK, employee)
	}
}

// DeleteEmployeeHandler removes an employee (Admin only); records referencing
// the name keep their frozen snapshot.
func DeleteEmployeeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.Employee{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error deleting employee")
			return
		}
		if res.RowsAffected == 0 {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Employee not found")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, employeesCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
	}
}
