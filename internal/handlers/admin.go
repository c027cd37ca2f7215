package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/policy"
	"github.com/DS1003/blog-moomel-sub001/internal/services"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

// GetSetting reads a platform toggle with a fallback default.
func GetSetting(key, fallback string) string {
	var setting models.Setting
	if err := database.DB.First(&setting, "key = ?", key).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// AdminListUsers returns a paginated, filterable user list.
func AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if q := c.Query("q"); q != "" {
		pattern := utils.SanitizeSearchQuery(q)
		query = query.Where("username LIKE ? OR email LIKE ? OR name LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page})
}

type AdminUpdateUserInput struct {
	Role     *models.Role `json:"role"`
	IsActive *bool        `json:"isActive"`
	XP       *int         `json:"xp"` // explicit admin correction
	Reason   string       `json:"reason"`
}

// AdminUpdateUser edits role/active-status/XP. The policy enforces that an
// admin can never demote or deactivate itself.
func AdminUpdateUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	targetID := c.Param("id")

	var input AdminUpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Role != nil {
		switch *input.Role {
		case models.RoleUser, models.RoleModerator, models.RoleAdmin:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
	}

	edit := policy.AccountEdit{
		Demotes:     input.Role != nil && target.Role == models.RoleAdmin && *input.Role != models.RoleAdmin,
		Deactivates: input.IsActive != nil && !*input.IsActive,
	}
	if d := policy.CanEditAccount(actor.Role, actor.ID, target.ID, edit); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Role != nil {
			updates["role"] = *input.Role
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.XP != nil {
			cfg, err := services.LoadGamificationConfig(tx)
			if err != nil {
				return err
			}
			if err := services.AdjustXP(tx, target.ID, *input.XP, cfg); err != nil {
				return err
			}
			services.InvalidateLeaderboardCache()
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionUpdateUser,
			TargetID:   target.ID,
			TargetType: "user",
			Reason:     input.Reason,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	var fresh models.User
	database.DB.First(&fresh, "id = ?", target.ID)
	c.JSON(http.StatusOK, gin.H{"user": fresh})
}

// AdminDeleteUser soft-deletes an account. Self-deletion is denied by policy.
func AdminDeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	targetID := c.Param("id")

	if d := policy.CanDeleteAccount(actor.Role, actor.ID, targetID); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", targetID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionDeleteUser,
			TargetID:   targetID,
			TargetType: "user",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

type SettingInput struct {
	Value string `json:"value" binding:"required"`
}

// AdminListSettings returns all platform toggles.
func AdminListSettings(c *gin.Context) {
	var settings []models.Setting
	if err := database.DB.Order("key asc").Find(&settings).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// AdminPutSetting upserts one setting key.
func AdminPutSetting(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	key := c.Param("key")

	var input SettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		setting := models.Setting{Key: key, Value: input.Value, UpdatedBy: actor.ID}
		if err := tx.Save(&setting).Error; err != nil {
			return err
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageSettings,
			TargetID:   key,
			TargetType: "setting",
			Reason:     fmt.Sprintf("value=%s", input.Value),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Setting updated"})
}

// AdminListAudit returns recent admin actions.
func AdminListAudit(c *gin.Context) {
	var actions []models.AdminAction
	if err := database.DB.
		Preload("Admin").
		Order("created_at desc").
		Limit(100).
		Find(&actions).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}
