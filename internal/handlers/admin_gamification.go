package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/services"
)

// Gamification configuration is never hard-coded: these endpoints are the
// only write path, and every write invalidates the engine's cached snapshot.

type XPActionInput struct {
	Action   string `json:"action" binding:"required"`
	XPAmount int    `json:"xpAmount"`
	Enabled  *bool  `json:"enabled"`
}

func AdminListXPActions(c *gin.Context) {
	var actions []models.XPAction
	if err := database.DB.Order("action asc").Find(&actions).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// AdminPutXPAction creates or updates an action→XP mapping. Negative amounts
// are rejected here, at write time; the award path trusts stored values.
func AdminPutXPAction(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var input XPActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.XPAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xpAmount cannot be negative"})
		return
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var row models.XPAction
		err := tx.Where("action = ?", input.Action).First(&row).Error
		switch err {
		case nil:
			row.XPAmount = input.XPAmount
			row.Enabled = enabled
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			row = models.XPAction{Action: input.Action, XPAmount: input.XPAmount, Enabled: enabled}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageGamification,
			TargetID:   input.Action,
			TargetType: "config",
			Reason:     fmt.Sprintf("xpAmount=%d enabled=%t", input.XPAmount, enabled),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	services.InvalidateGamificationConfig()
	c.JSON(http.StatusOK, gin.H{"message": "XP action saved"})
}

type LevelThresholdInput struct {
	Level      int `json:"level" binding:"required"`
	XPRequired int `json:"xpRequired"`
}

func AdminListLevelThresholds(c *gin.Context) {
	var thresholds []models.LevelThreshold
	if err := database.DB.Order("level asc").Find(&thresholds).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thresholds": thresholds})
}

func AdminPutLevelThreshold(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var input LevelThresholdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Level < 0 || input.XPRequired < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level and xpRequired cannot be negative"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var row models.LevelThreshold
		err := tx.Where("level = ?", input.Level).First(&row).Error
		switch err {
		case nil:
			row.XPRequired = input.XPRequired
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			row = models.LevelThreshold{Level: input.Level, XPRequired: input.XPRequired}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageGamification,
			TargetID:   fmt.Sprintf("level-%d", input.Level),
			TargetType: "config",
			Reason:     fmt.Sprintf("xpRequired=%d", input.XPRequired),
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	services.InvalidateGamificationConfig()
	c.JSON(http.StatusOK, gin.H{"message": "Level threshold saved"})
}

type BadgeInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Rarity      models.BadgeRarity `json:"rarity"`
	XPRequired  int                `json:"xpRequired"`
}

func ListBadges(c *gin.Context) {
	var badges []models.Badge
	if err := database.DB.Order("xp_required asc, created_at asc").Find(&badges).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func AdminCreateBadge(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.XPRequired < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xpRequired cannot be negative"})
		return
	}

	rarity := input.Rarity
	if rarity == "" {
		rarity = models.RarityCommon
	}

	badge := models.Badge{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Rarity:      rarity,
		XPRequired:  input.XPRequired,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&badge).Error; err != nil {
			return err
		}
		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageBadgeAudit,
			TargetID:   badge.ID,
			TargetType: "badge",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"badge": badge})
}

// AdminUpdateBadge edits a badge definition. A raised xpRequired does not
// revoke existing grants; the sweep only ever unlocks.
func AdminUpdateBadge(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	badgeID := c.Param("id")

	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.XPRequired < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xpRequired cannot be negative"})
		return
	}

	var badge models.Badge
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&badge, "id = ?", badgeID).Error; err != nil {
			return err
		}

		badge.Name = input.Name
		badge.Description = input.Description
		badge.Icon = input.Icon
		if input.Rarity != "" {
			badge.Rarity = input.Rarity
		}
		badge.XPRequired = input.XPRequired
		if err := tx.Save(&badge).Error; err != nil {
			return err
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageBadgeAudit,
			TargetID:   badge.ID,
			TargetType: "badge",
			Reason:     "updated",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badge": badge})
}

func AdminDeleteBadge(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	badgeID := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Remove grants first so no orphan rows remain
		if err := tx.Delete(&models.UserBadge{}, "badge_id = ?", badgeID).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Badge{}, "id = ?", badgeID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageBadgeAudit,
			TargetID:   badgeID,
			TargetType: "badge",
			Reason:     "deleted",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Badge deleted"})
}
