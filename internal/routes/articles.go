package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/handlers"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/policy"
)

func RegisterArticleRoutes(rg *gin.RouterGroup) {
	articles := rg.Group("/articles")

	articles.GET("", handlers.ListArticles)
	articles.GET("/:slug", middleware.OptionalAuthMiddleware(), handlers.GetArticle)

	authed := articles.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.POST("", middleware.RequirePolicy(policy.ActionCreateArticle), handlers.CreateArticle)
	authed.PUT("/:id", middleware.RequirePolicy(policy.ActionUpdateArticle), handlers.UpdateArticle)
	authed.DELETE("/:id", middleware.RequirePolicy(policy.ActionDeleteArticle), handlers.DeleteArticle)

	categories := rg.Group("/categories")
	categories.GET("", handlers.ListCategories)
	categories.POST("", middleware.AuthMiddleware(), middleware.RequirePolicy(policy.ActionManageCategory), handlers.CreateCategory)
	categories.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequirePolicy(policy.ActionManageCategory), handlers.DeleteCategory)
}
