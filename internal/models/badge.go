package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "COMMON"
	RarityRare      BadgeRarity = "RARE"
	RarityEpic      BadgeRarity = "EPIC"
	RarityLegendary BadgeRarity = "LEGENDARY"
)

type Badge struct {
	ID          string      `gorm:"primaryKey;type:text" json:"id"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Rarity      BadgeRarity `gorm:"type:text;default:'COMMON'" json:"rarity"`
	XPRequired  int         `gorm:"column:xp_required;not null" json:"xpRequired"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// UserBadge records a one-way grant: a row exists only if the user's XP met
// the badge threshold at grant time. The composite key makes re-grants no-ops.
type UserBadge struct {
	UserID   string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID  string    `gorm:"primaryKey;type:text" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
