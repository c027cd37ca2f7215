package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

// AdminSearch looks up users, articles and comments in one call. Intended for
// the moderation dashboard, so it searches unpublished and hidden content too.
func AdminSearch(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must be at least 2 characters"})
		return
	}
	pattern := utils.SanitizeSearchQuery(q)

	var users []models.User
	if err := database.DB.
		Where("username LIKE ? OR email LIKE ? OR name LIKE ?", pattern, pattern, pattern).
		Limit(20).Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	var articles []models.Article
	if err := database.DB.
		Where("title LIKE ? OR excerpt LIKE ?", pattern, pattern).
		Limit(20).Find(&articles).Error; err != nil {
		respondError(c, err)
		return
	}

	var comments []models.Comment
	if err := database.DB.
		Where("content LIKE ?", pattern).
		Order("created_at desc").
		Limit(20).Find(&comments).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"articles": articles,
		"comments": comments,
	})
}
