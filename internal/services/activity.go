package services

import (
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
)

// LogActivity records a profile-feed event. Best effort: a failed write is
// logged, never propagated.
func LogActivity(tx *gorm.DB, actorID string, activityType models.ActivityType, targetID string, message string) {
	activity := models.UserActivity{
		Type:     activityType,
		ActorID:  actorID,
		TargetID: targetID,
		Message:  message,
	}

	if err := tx.Create(&activity).Error; err != nil {
		logger.Warn().Err(err).Str("actor_id", actorID).Msg("failed to log activity")
	}
}
