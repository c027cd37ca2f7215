package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/handlers"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.Use(middleware.AuthRateLimit())

	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)
	auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
