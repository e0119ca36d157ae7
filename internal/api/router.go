package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS max age

	"bookkeeper/internal/config"     // Application configuration
	"bookkeeper/internal/domain"     // Role constants
	"bookkeeper/internal/middleware" // Auth middleware

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter assembles the full HTTP surface. rdb may be nil, which disables
// listing caches.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance with logger and recovery

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// Public routes
	r.GET("/", rootHandler())
	r.GET("/health", healthHandler())
	r.POST("/auth/login", LoginHandler(db, cfg.JWTSecret))

	// Routes requiring a valid token
	authed := r.Group("", middleware.JWTAuthMiddleware(db, cfg.JWTSecret))
	authed.GET("/auth/me", MeHandler())
	authed.GET("/accounts", ListAccountsHandler(db, rdb))
	authed.GET("/employees", ListEmployeesHandler(db, rdb))
	authed.GET("/projects", ListProjectsHandler(db, rdb))
	authed.GET("/records", ListRecordsHandler(db, rdb))
	authed.POST("/records", CreateRecordHandler(db, rdb))
	authed.PATCH("/records/:id", UpdateRecordHandler(db, rdb))

	// Admin-only routes
	admin := authed.Group("", middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/auth/register", RegisterHandler(db, rdb))
	admin.POST("/accounts", CreateAccountHandler(db, rdb))
	admin.PATCH("/accounts/:id", UpdateAccountHandler(db, rdb))
	admin.DELETE("/accounts/:id", DeleteAccountHandler(db, rdb))
	admin.POST("/employees", CreateEmployeeHandler(db, rdb))
	admin.PATCH("/employees/:id", UpdateEmployeeHandler(db, rdb))
	admin.DELETE("/employees/:id", DeleteEmployeeHandler(db, rdb))
	admin.POST("/projects", CreateProjectHandler(db, rdb))
	admin.PATCH("/projects/:id", UpdateProjectHandler(db, rdb))
	admin.DELETE("/projects/:id", DeleteProjectHandler(db, rdb))
	admin.DELETE("/records/:id", DeleteRecordHandler(db, rdb))
	admin.GET("/users", ListUsersHandler(db, rdb))
	admin.PATCH("/users/:id", UpdateUserHandler(db, rdb))
	admin.DELETE("/users/:id", DeleteUserHandler(db, rdb))

	return r
}

// rootHandler returns the service banner
func rootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Business Accounting Software API",
			"status":  "running",
			"version": "1.0.0",
		})
	}
}

// healthHandler reports service liveness
func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
