package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like existence is the like state. The unique (user, article) index is the
// serialization point for concurrent toggles.
type Like struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_user_article_like;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	ArticleID string  `gorm:"uniqueIndex:idx_user_article_like;not null" json:"articleId"`
	Article   Article `gorm:"foreignKey:ArticleID" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

type Comment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content string `gorm:"type:text;not null" json:"content"`

	// Hidden is the reversible moderation flag; deletion is permanent.
	Hidden bool `gorm:"default:false" json:"hidden"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ArticleID string  `gorm:"index;not null" json:"articleId"`
	Article   Article `gorm:"foreignKey:ArticleID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
