package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/services"
)

// GetProfile returns the public profile for a username: level, xp, badges,
// and engagement counts.
func GetProfile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var badges []models.UserBadge
	database.DB.Preload("Badge").
		Where("user_id = ?", user.ID).
		Order("earned_at asc").
		Find(&badges)

	var likeCount, commentCount int64
	database.DB.Model(&models.Like{}).Where("user_id = ?", user.ID).Count(&likeCount)
	database.DB.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"badges":       badges,
		"likeCount":    likeCount,
		"commentCount": commentCount,
	})
}

// GetActivity returns the recent profile feed for a username.
func GetActivity(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activities []models.UserActivity
	if err := database.DB.
		Where("actor_id = ?", user.ID).
		Order("created_at desc").
		Limit(50).
		Find(&activities).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GetLeaderboard returns the top accounts by XP.
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	entries, err := services.GetLeaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
