package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

// ListNotifications returns the actor's notifications, newest first.
func ListNotifications(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var notifications []models.Notification
	if err := database.DB.
		Preload("Actor").
		Where("user_id = ?", actor.ID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error; err != nil {
		respondError(c, err)
		return
	}

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

type MarkReadInput struct {
	IDs []string `json:"ids"` // empty means mark everything read
}

func MarkNotificationsRead(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input MarkReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := database.DB.Model(&models.Notification{}).Where("user_id = ?", actor.ID)
	if len(input.IDs) > 0 {
		query = query.Where("id IN ?", input.IDs)
	}
	if err := query.Update("is_read", true).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
}
