package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/handlers"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
)

func RegisterEngagementRoutes(rg *gin.RouterGroup) {
	rg.GET("/articles/:slug/comments", middleware.OptionalAuthMiddleware(), handlers.ListComments)

	authed := rg.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.EngagementRateLimit())
	authed.POST("/articles/:slug/like", handlers.ToggleLike)
	authed.POST("/articles/:slug/comments", handlers.AddComment)

	staff := rg.Group("/comments")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	staff.PATCH("/:id/hidden", handlers.HideComment)
	staff.DELETE("/:id", handlers.DeleteComment)
}
