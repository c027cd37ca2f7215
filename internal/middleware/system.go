package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

// Helper to get a platform setting value
func getSetting(key string) string {
	var setting models.Setting
	if err := database.DB.Where("key = ?", key).Limit(1).Find(&setting).Error; err != nil {
		return ""
	}
	return setting.Value
}

// MaintenanceMode blocks all non-admin users when maintenance mode is enabled
func MaintenanceMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		if getSetting(models.SettingMaintenanceMode) != "true" {
			c.Next()
			return
		}

		if user, ok := CurrentUser(c); ok && user.Role == models.RoleAdmin {
			c.Next()
			return
		}

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Maintenance in progress",
			"message": "The platform is currently under maintenance. Please try again later.",
		})
		c.Abort()
	}
}
