package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/handlers"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
)

func RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	// User management
	admin.GET("/users", handlers.AdminListUsers)
	admin.PUT("/users/:id", handlers.AdminUpdateUser)
	admin.DELETE("/users/:id", handlers.AdminDeleteUser)

	// Cross-entity search
	admin.GET("/search", handlers.AdminSearch)

	// Gamification configuration
	admin.GET("/gamification/actions", handlers.AdminListXPActions)
	admin.PUT("/gamification/actions", handlers.AdminPutXPAction)
	admin.GET("/gamification/levels", handlers.AdminListLevelThresholds)
	admin.PUT("/gamification/levels", handlers.AdminPutLevelThreshold)

	// Badge definitions
	admin.POST("/badges", handlers.AdminCreateBadge)
	admin.PUT("/badges/:id", handlers.AdminUpdateBadge)
	admin.DELETE("/badges/:id", handlers.AdminDeleteBadge)

	// Platform settings
	admin.GET("/settings", handlers.AdminListSettings)
	admin.PUT("/settings/:key", handlers.AdminPutSetting)

	// Audit trail
	admin.GET("/audit", handlers.AdminListAudit)
}
