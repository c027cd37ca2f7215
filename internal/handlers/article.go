package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/middleware"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/policy"
	"github.com/DS1003/blog-moomel-sub001/internal/services"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

type ArticleInput struct {
	Title      string  `json:"title" binding:"required"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content" binding:"required"`
	CategoryID *string `json:"categoryId"`
	Published  bool    `json:"published"`

	Images []ArticleImageInput `json:"images"`
}

type ArticleImageInput struct {
	URL      string `json:"url" binding:"required"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// articleSlug resolves a unique slug for title. excludeID skips the article's
// own row so a title edit that keeps the same slug does not suffix itself.
func articleSlug(tx *gorm.DB, title, excludeID string) (string, error) {
	return utils.UniqueSlug(title, func(slug string) (bool, error) {
		var count int64
		query := tx.Model(&models.Article{}).Where("slug = ?", slug)
		if excludeID != "" {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// ListArticles returns published articles, newest first.
func ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 10

	query := database.DB.Model(&models.Article{}).Where("published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", category)
	}

	var total int64
	query.Count(&total)

	var articles []models.Article
	if err := query.
		Preload("Author").Preload("Category").Preload("Images").
		Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&articles).Error; err != nil {
		respondError(c, err)
		return
	}

	for i := range articles {
		attachEngagementCounts(&articles[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"page":     page,
		"perPage":  perPage,
	})
}

// GetArticle fetches one article by slug. Unpublished articles are only
// visible to admins.
func GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	var article models.Article
	if err := database.DB.
		Preload("Author").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&article, "slug = ?", slug).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if !article.Published {
		user, ok := middleware.CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
	}

	attachEngagementCounts(&article)
	c.JSON(http.StatusOK, gin.H{"article": article})
}

func attachEngagementCounts(article *models.Article) {
	database.DB.Model(&models.Like{}).Where("article_id = ?", article.ID).Count(&article.LikeCount)
	database.DB.Model(&models.Comment{}).Where("article_id = ? AND hidden = ?", article.ID, false).Count(&article.CommentCount)
}

// CreateArticle is admin-only. The slug is derived from the title with
// collision suffixing.
func CreateArticle(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if d := policy.Can(actor.Role, policy.ActionCreateArticle, false); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	var input ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var article models.Article
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := articleSlug(tx, input.Title, "")
		if err != nil {
			return err
		}

		article = models.Article{
			Title:      input.Title,
			Slug:       slug,
			Excerpt:    input.Excerpt,
			Content:    input.Content,
			CategoryID: input.CategoryID,
			AuthorID:   actor.ID,
			Published:  input.Published,
		}
		if input.Published {
			now := time.Now()
			article.PublishedAt = &now
		}
		if err := tx.Create(&article).Error; err != nil {
			return err
		}

		for _, img := range input.Images {
			image := models.ArticleImage{
				ArticleID: article.ID,
				URL:       img.URL,
				Alt:       img.Alt,
				Position:  img.Position,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}

		if article.Published {
			cfg, err := services.LoadGamificationConfig(tx)
			if err != nil {
				return err
			}
			if _, err := services.AwardXP(tx, actor.ID, models.ActionPublishArticle, cfg); err != nil {
				return err
			}
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionCreateArticleAudit,
			TargetID:   article.ID,
			TargetType: "article",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	services.LogActivity(database.DB, actor.ID, models.ActivityNewArticle, article.ID, "published a new article")

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// UpdateArticle is admin-only. First publish awards PUBLISH_ARTICLE XP to the
// author; re-publishing after an unpublish does not (one-way ratchet via
// PublishedAt).
func UpdateArticle(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if d := policy.Can(actor.Role, policy.ActionUpdateArticle, false); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	var input ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var article models.Article
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&article, "id = ?", c.Param("id")).Error; err != nil {
			return err
		}

		firstPublish := input.Published && article.PublishedAt == nil

		if article.Title != input.Title {
			slug, err := articleSlug(tx, input.Title, article.ID)
			if err != nil {
				return err
			}
			article.Slug = slug
		}
		article.Title = input.Title
		article.Excerpt = input.Excerpt
		article.Content = input.Content
		article.CategoryID = input.CategoryID
		article.Published = input.Published
		if firstPublish {
			now := time.Now()
			article.PublishedAt = &now
		}

		if err := tx.Save(&article).Error; err != nil {
			return err
		}

		if firstPublish {
			cfg, err := services.LoadGamificationConfig(tx)
			if err != nil {
				return err
			}
			if _, err := services.AwardXP(tx, article.AuthorID, models.ActionPublishArticle, cfg); err != nil {
				return err
			}
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionUpdateArticleAudit,
			TargetID:   article.ID,
			TargetType: "article",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// DeleteArticle is admin-only, soft delete.
func DeleteArticle(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if d := policy.Can(actor.Role, policy.ActionDeleteArticle, false); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	articleID := c.Param("id")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Article{}, "id = ?", articleID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionDeleteArticleAudit,
			TargetID:   articleID,
			TargetType: "article",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
