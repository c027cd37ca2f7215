package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/services"
)

// resolveArticleBySlug loads the published article a slug points at.
func resolveArticleBySlug(c *gin.Context) (models.Article, bool) {
	var article models.Article
	if err := database.DB.First(&article, "slug = ? AND published = ?", c.Param("slug"), true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return article, false
	}
	return article, true
}

// ToggleLike handles POST /articles/:slug/like. The response always reflects
// the state the server settled on; clients resync from it instead of
// speculating.
func ToggleLike(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	article, ok := resolveArticleBySlug(c)
	if !ok {
		return
	}

	result, err := services.ToggleLike(actor.ID, article.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	var likeCount int64
	database.DB.Model(&models.Like{}).Where("article_id = ?", article.ID).Count(&likeCount)

	c.JSON(http.StatusOK, gin.H{
		"liked":     result.Liked,
		"likeCount": likeCount,
		"award":     result.Award,
	})
}

// ListComments returns visible comments for an article, oldest first. Hidden
// comments are included only for staff.
func ListComments(c *gin.Context) {
	article, ok := resolveArticleBySlug(c)
	if !ok {
		return
	}

	query := database.DB.Preload("User").Where("article_id = ?", article.ID)

	user, authed := middleware.CurrentUser(c)
	isStaff := authed && (user.Role == models.RoleAdmin || user.Role == models.RoleModerator)
	if !isStaff {
		query = query.Where("hidden = ?", false)
	}

	var comments []models.Comment
	if err := query.Order("created_at asc").Find(&comments).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

func AddComment(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if GetSetting(models.SettingCommentsEnabled, "true") != "true" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Comments are currently disabled"})
		return
	}

	article, ok := resolveArticleBySlug(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.CreateComment(actor.ID, article.ID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": result.Comment,
		"award":   result.Award,
	})
}

type HideCommentInput struct {
	Hidden bool `json:"hidden"`
}

// HideComment handles PATCH /comments/:id/hide for staff. The flag is
// reversible.
func HideComment(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input HideCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SetCommentHidden(actor, c.Param("id"), input.Hidden); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated", "hidden": input.Hidden})
}

// DeleteComment handles DELETE /comments/:id for staff. Permanent.
func DeleteComment(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.DeleteComment(actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
