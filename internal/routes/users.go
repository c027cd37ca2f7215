package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/handlers"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
)

func RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:username", handlers.GetProfile)
	rg.GET("/users/:username/activity", handlers.GetActivity)
	rg.GET("/leaderboard", handlers.GetLeaderboard)
	rg.GET("/badges", handlers.ListBadges)

	authed := rg.Group("/notifications")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("", handlers.ListNotifications)
	authed.POST("/read", handlers.MarkNotificationsRead)
}
