package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/policy"
	"github.com/DS1003/blog-moomel-sub001/pkg/apperr"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
)

// LikeResult reports the state the pair ended up in plus any XP the toggle
// granted. Award is nil on unlike: XP is a one-way ratchet, unliking never
// claws anything back.
type LikeResult struct {
	Liked bool         `json:"liked"`
	Award *AwardResult `json:"award,omitempty"`
}

// ToggleLike flips the like state for the (actor, article) pair.
//
// The read-then-mutate sequence runs in a single transaction; the unique
// (user, article) index is the serialization point. If a concurrent request
// creates the row first, the duplicate-key failure is absorbed as "already
// liked" rather than surfaced as an error, so two racing toggles always
// settle on one consistent persisted state.
func ToggleLike(actorID, articleID string) (*LikeResult, error) {
	cfg, err := LoadGamificationConfig(database.DB)
	if err != nil {
		return nil, err
	}

	var result LikeResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Select("id", "author_id", "title").First(&article, "id = ?", articleID).Error; err != nil {
			return translateDBError(err)
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND article_id = ?", actorID, articleID).First(&existing).Error
		switch {
		case err == nil:
			// Liked -> NotLiked. No XP reversal.
			if err := tx.Delete(&existing).Error; err != nil {
				return translateDBError(err)
			}
			result.Liked = false
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{UserID: actorID, ArticleID: articleID}
			if err := tx.Create(&like).Error; err != nil {
				if isUniqueViolation(err) {
					// Lost the race; the pair is already in the liked state
					result.Liked = true
					return nil
				}
				return translateDBError(err)
			}

			award, err := AwardXP(tx, actorID, models.ActionLikeArticle, cfg)
			if err != nil {
				return err
			}
			result.Liked = true
			result.Award = award

			if article.AuthorID != actorID {
				notifyEngagement(tx, article.AuthorID, actorID, models.NotificationTypeLike, article.ID,
					fmt.Sprintf("liked your article %q", article.Title))
			}
			LogActivity(tx, actorID, models.ActivityLike, article.ID, "liked an article")
			return nil

		default:
			return translateDBError(err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CommentResult couples the created comment with its XP award.
type CommentResult struct {
	Comment models.Comment `json:"comment"`
	Award   *AwardResult   `json:"award,omitempty"`
}

// CreateComment validates and persists a comment, awarding POST_COMMENT XP in
// the same transaction.
func CreateComment(actorID, articleID, content string) (*CommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.EmptyContent("comment content cannot be blank")
	}

	cfg, err := LoadGamificationConfig(database.DB)
	if err != nil {
		return nil, err
	}

	var result CommentResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Select("id", "author_id", "title").First(&article, "id = ?", articleID).Error; err != nil {
			return translateDBError(err)
		}

		comment := models.Comment{
			Content:   content,
			UserID:    actorID,
			ArticleID: articleID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return translateDBError(err)
		}

		award, err := AwardXP(tx, actorID, models.ActionPostComment, cfg)
		if err != nil {
			return err
		}
		result.Comment = comment
		result.Award = award

		if article.AuthorID != actorID {
			notifyEngagement(tx, article.AuthorID, actorID, models.NotificationTypeComment, article.ID,
				fmt.Sprintf("commented on your article %q", article.Title))
		}
		LogActivity(tx, actorID, models.ActivityComment, article.ID, "commented on an article")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetCommentHidden flips the reversible moderation flag. Staff only.
func SetCommentHidden(actor models.User, commentID string, hidden bool) error {
	if d := policy.Can(actor.Role, policy.ActionHideComment, false); !d.Allowed {
		return apperr.Denied(d.Reason)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).Where("id = ?", commentID).Update("hidden", hidden)
		if res.Error != nil {
			return translateDBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("comment not found")
		}
		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionHideCommentAudit,
			TargetID:   commentID,
			TargetType: "comment",
			Reason:     fmt.Sprintf("hidden=%t", hidden),
		}
		return translateDBError(tx.Create(&audit).Error)
	})
}

// DeleteComment removes a comment permanently. Staff only; previously granted
// XP stays granted.
func DeleteComment(actor models.User, commentID string) error {
	if d := policy.Can(actor.Role, policy.ActionDeleteComment, false); !d.Allowed {
		return apperr.Denied(d.Reason)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&models.Comment{}, "id = ?", commentID)
		if res.Error != nil {
			return translateDBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("comment not found")
		}
		audit := models.AdminAction{
			AdminID:    actor.ID,
			Action:     models.ActionDeleteCommentAudit,
			TargetID:   commentID,
			TargetType: "comment",
		}
		return translateDBError(tx.Create(&audit).Error)
	})
}

func notifyEngagement(tx *gorm.DB, recipientID, actorID string, nType models.NotificationType, articleID, message string) {
	n := models.Notification{
		UserID:    recipientID,
		ActorID:   actorID,
		Type:      nType,
		ArticleID: &articleID,
		Message:   message,
	}
	// Best effort, same as activity logging
	if err := tx.Create(&n).Error; err != nil {
		logger.Warn().Err(err).Str("recipient_id", recipientID).Msg("failed to create engagement notification")
	}
}
