package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting stores global key/value toggles, editable by ADMIN only.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:text" json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Setting keys
const (
	SettingMaintenanceMode  = "maintenance_mode"
	SettingRegistrationOpen = "registration_open"
	SettingCommentsEnabled  = "comments_enabled"
)

type ActionType string

const (
	ActionUpdateUser          ActionType = "UPDATE_USER"
	ActionDeleteUser          ActionType = "DELETE_USER"
	ActionAdjustXP            ActionType = "ADJUST_XP"
	ActionCreateArticleAudit  ActionType = "CREATE_ARTICLE"
	ActionUpdateArticleAudit  ActionType = "UPDATE_ARTICLE"
	ActionDeleteArticleAudit  ActionType = "DELETE_ARTICLE"
	ActionManageCategoryAudit ActionType = "MANAGE_CATEGORY"
	ActionManageBadgeAudit    ActionType = "MANAGE_BADGE"
	ActionManageGamification  ActionType = "MANAGE_GAMIFICATION"
	ActionManageSettings      ActionType = "MANAGE_SETTINGS"
	ActionHideCommentAudit    ActionType = "HIDE_COMMENT"
	ActionDeleteCommentAudit  ActionType = "DELETE_COMMENT"
)

// AdminAction is the audit row written in the same transaction as every
// privileged mutation.
type AdminAction struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	AdminID    string     `gorm:"index" json:"adminId"`
	Action     ActionType `gorm:"type:text" json:"action"`
	TargetID   string     `json:"targetId"`
	TargetType string     `json:"targetType"` // "user", "article", "comment", "config", "setting"
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`

	Admin User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (a *AdminAction) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
