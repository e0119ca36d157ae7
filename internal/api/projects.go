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

// projectsCacheKey caches the project catalog listing
const projectsCacheKey = "projects:all"

// CreateProjectRequest is the payload for creating a project catalog entry
type CreateProjectRequest struct {
	Name string `json:"name"` // Project name, required and unique
	Code string `json:"code"` // Project code, required and unique
}

// UpdateProjectRequest is the allow-listed partial update payload for projects
type UpdateProjectRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// ListProjectsHandler returns the project catalog ordered by name
func ListProjectsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Project
		if found, err := utils.GetCache(ctx, rdb, projectsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var projects []domain.Project
		if err := db.Order("name asc").Find(&projects).Error; err != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error fetching projects")
			return
		}
		_ = utils.SetCache(ctx, rdb, projectsCacheKey, projects, 60*time.Second)
		c.JSON(http.StatusOK, projects)
	}
}

// CreateProjectHandler creates a project catalog entry (Admin only)
func CreateProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProjectRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		if req.Name == "" || req.Code == "" {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Name and code are required")
			return
		}
		project := domain.Project{
			Name:      req.Name,
			Code:      req.Code,
			CreatedBy: middleware.CurrentUser(c).ID, // Stamp the creator
		}
		if err := db.Create(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Project name or code already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error creating project")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, projectsCacheKey)
		c.JSON(http.StatusCreated, project)
	}
}

// UpdateProjectHandler applies a partial update to a project (Admin only)
func UpdateProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProjectRequest
		if err := bindStrict(c, &req); err != nil {
			fail(c, http.StatusBadRequest, domain.KindValidation, "Invalid request: "+err.Error())
			return
		}
		var project domain.Project
		if err := db.First(&project, "id = ?", c.Param("id")).Error; err != nil {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Project not found")
			return
		}
		if req.Name != nil {
			if *req.Name == "" {
				fail(c, http.StatusBadRequest, domain.KindValidation, "Name must not be empty")
				return
			}
			project.Name = *req.Name
		}
		if req.Code != nil {
			project.Code = *req.Code
		}
		if err := db.Save(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, http.StatusBadRequest, domain.KindDuplicateName, "Project name or code already exists")
				return
			}
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error updating project")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, projectsCacheKey)
		c.JSON(http.StatusOK, project)
	}
}

// DeleteProjectHandler removes a project (Admin only)
func DeleteProjectHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.Project{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			fail(c, http.StatusInternalServerError, domain.KindInternal, "Error deleting project")
			return
		}
		if res.RowsAffected == 0 {
			fail(c, http.StatusNotFound, domain.KindNotFound, "Project not found")
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, projectsCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
	}
}
