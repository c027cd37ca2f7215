package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/policy"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func CreateCategory(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if d := policy.Can(actor.Role, policy.ActionManageCategory, false); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := utils.UniqueSlug(input.Name, func(slug string) (bool, error) {
			var count int64
			if err := tx.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return false, err
			}
			return count > 0, nil
		})
		if err != nil {
			return err
		}

		category = models.Category{Name: input.Name, Slug: slug}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageCategoryAudit,
			TargetID:   category.ID,
			TargetType: "category",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func DeleteCategory(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if d := policy.Can(actor.Role, policy.ActionManageCategory, false); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	categoryID := c.Param("id")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Detach articles rather than orphaning them
		if err := tx.Model(&models.Article{}).Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, "id = ?", categoryID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionManageCategoryAudit,
			TargetID:   categoryID,
			TargetType: "category",
			Reason:     "deleted",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
