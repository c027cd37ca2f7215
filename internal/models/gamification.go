package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gamification action keys. The rows are admin-editable; these constants only
// name the actions the engagement paths emit.
const (
	ActionLikeArticle    = "LIKE_ARTICLE"
	ActionPostComment    = "POST_COMMENT"
	ActionPublishArticle = "PUBLISH_ARTICLE"
)

// XPAction maps an action name to the XP it awards. Amounts are validated as
// non-negative on write; the award path trusts stored values.
type XPAction struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Action    string    `gorm:"uniqueIndex;not null" json:"action"`
	XPAmount  int       `gorm:"column:xp_amount;not null" json:"xpAmount"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (x *XPAction) BeforeCreate(tx *gorm.DB) (err error) {
	if x.ID == "" {
		x.ID = uuid.New().String()
	}
	return
}

// LevelThreshold is one step of the level ladder. Level for a given XP is the
// greatest level whose threshold is <= XP; equal thresholds resolve to the
// higher level.
type LevelThreshold struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	Level      int       `gorm:"uniqueIndex;not null" json:"level"`
	XPRequired int       `gorm:"column:xp_required;not null" json:"xpRequired"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (lt *LevelThreshold) BeforeCreate(tx *gorm.DB) (err error) {
	if lt.ID == "" {
		lt.ID = uuid.New().String()
	}
	return
}
