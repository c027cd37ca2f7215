package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

type Article struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt string `gorm:"type:text" json:"excerpt"`
	Content string `gorm:"type:text" json:"content"`

	Published bool `gorm:"default:false" json:"published"`
	// Set the first time Published flips to true; PUBLISH_ARTICLE XP is only
	// awarded while this is nil.
	PublishedAt *time.Time `json:"publishedAt"`

	AuthorID string `gorm:"index;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CategoryID *string   `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Images []ArticleImage `gorm:"foreignKey:ArticleID" json:"images,omitempty"`

	// Derived by cardinality, never stored
	LikeCount    int64 `gorm:"-" json:"likeCount"`
	CommentCount int64 `gorm:"-" json:"commentCount"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

type ArticleImage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ArticleID string    `gorm:"index;not null" json:"articleId"`
	URL       string    `gorm:"not null" json:"url"`
	Alt       string    `json:"alt"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ai *ArticleImage) BeforeCreate(tx *gorm.DB) (err error) {
	if ai.ID == "" {
		ai.ID = uuid.New().String()
	}
	return
}
