package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/pkg/apperr"
)

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	article := createArticle(t, db, author, "hello-world")
	seedXPActions(t, db, map[string]int{models.ActionLikeArticle: 5})

	// NotLiked -> Liked
	result, err := ToggleLike(reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	require.NotNil(t, result.Award)
	assert.Equal(t, 5, result.Award.XPGranted)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("article_id = ?", article.ID).Count(&likeCount).Error)
	assert.EqualValues(t, 1, likeCount)

	// Liked -> NotLiked, XP stays
	result, err = ToggleLike(reader.ID, article.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Nil(t, result.Award)

	require.NoError(t, db.Model(&models.Like{}).Where("article_id = ?", article.ID).Count(&likeCount).Error)
	assert.EqualValues(t, 0, likeCount, "toggling twice returns to the original state")

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", reader.ID).Error)
	assert.Equal(t, 5, fresh.XP, "unliking never claws back XP")
}

func TestToggleLike_SpecScenario(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader48", models.RoleUser, 48)
	article := createArticle(t, db, author, "scenario")
	seedXPActions(t, db, map[string]int{models.ActionLikeArticle: 5})
	seedThresholds(t, db, [][2]int{{1, 0}, {2, 50}, {3, 150}})

	badge := models.Badge{Name: "Half Century", XPRequired: 50}
	require.NoError(t, db.Create(&badge).Error)

	result, err := ToggleLike(reader.ID, article.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Award)
	assert.Equal(t, 53, result.Award.NewXP)
	assert.Equal(t, 2, result.Award.NewLevel)
	require.Len(t, result.Award.UnlockedBadges, 1)
	assert.Equal(t, "Half Century", result.Award.UnlockedBadges[0].Name)
}

func TestToggleLike_UniquePairEnforced(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	article := createArticle(t, db, author, "unique-pair")

	first := models.Like{UserID: reader.ID, ArticleID: article.ID}
	require.NoError(t, db.Create(&first).Error)

	dup := models.Like{UserID: reader.ID, ArticleID: article.ID}
	err := db.Create(&dup).Error
	require.Error(t, err, "second like row for the same pair must violate the unique index")
	assert.True(t, isUniqueViolation(err))
}

func TestToggleLike_LostCreateRaceAbsorbed(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	article := createArticle(t, db, author, "raced")
	seedXPActions(t, db, map[string]int{models.ActionLikeArticle: 5})

	// Slip a rival like row in just before the toggle's own insert, the way a
	// second request winning the race would.
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_like", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "likes" {
			return
		}
		injected = true
		rival := tx.Session(&gorm.Session{NewDB: true})
		if err := rival.Exec(
			"INSERT INTO likes (id, user_id, article_id, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			uuid.New().String(), reader.ID, article.ID,
		).Error; err != nil {
			t.Errorf("failed to insert rival like: %v", err)
		}
	})
	require.NoError(t, err)

	result, err := ToggleLike(reader.ID, article.ID)
	require.NoError(t, err, "losing the insert race must settle as already-liked, not fail")
	require.True(t, injected)
	assert.True(t, result.Liked)
	assert.Nil(t, result.Award, "the lost race grants nothing; the winner's request did")

	// Exactly one persisted row for the pair
	var count int64
	db.Model(&models.Like{}).Where("user_id = ? AND article_id = ?", reader.ID, article.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", reader.ID).Error)
	assert.Equal(t, 0, fresh.XP)
}

func TestToggleLike_MissingArticle(t *testing.T) {
	db := setupTestDB(t)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	seedXPActions(t, db, map[string]int{models.ActionLikeArticle: 5})

	_, err := ToggleLike(reader.ID, "no-such-article")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	article := createArticle(t, db, author, "commented")
	seedXPActions(t, db, map[string]int{models.ActionPostComment: 10})

	result, err := CreateComment(reader.ID, article.ID, "  nice read!  ")
	require.NoError(t, err)
	assert.Equal(t, "nice read!", result.Comment.Content)
	require.NotNil(t, result.Award)
	assert.Equal(t, 10, result.Award.XPGranted)

	// Author got a notification
	var notif int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeComment).
		Count(&notif).Error)
	assert.EqualValues(t, 1, notif)
}

func TestCreateComment_BlankContent(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	article := createArticle(t, db, author, "blank")

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := CreateComment(reader.ID, article.ID, content)
		assert.True(t, apperr.IsKind(err, apperr.KindEmptyContent), "content %q must be rejected", content)
	}

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCommentModeration(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleAdmin, 0)
	reader := createUser(t, db, "reader", models.RoleUser, 0)
	moderator := createUser(t, db, "mod", models.RoleModerator, 0)
	article := createArticle(t, db, author, "moderated")
	seedXPActions(t, db, map[string]int{models.ActionPostComment: 10})

	result, err := CreateComment(reader.ID, article.ID, "spam spam spam")
	require.NoError(t, err)
	commentID := result.Comment.ID

	// A plain user cannot hide or delete, not even the comment's owner
	err = SetCommentHidden(reader, commentID, true)
	assert.True(t, apperr.IsKind(err, apperr.KindDenied))
	err = DeleteComment(reader, commentID)
	assert.True(t, apperr.IsKind(err, apperr.KindDenied))

	// Hide is reversible
	require.NoError(t, SetCommentHidden(moderator, commentID, true))
	var comment models.Comment
	require.NoError(t, db.First(&comment, "id = ?", commentID).Error)
	assert.True(t, comment.Hidden)

	require.NoError(t, SetCommentHidden(moderator, commentID, false))
	require.NoError(t, db.First(&comment, "id = ?", commentID).Error)
	assert.False(t, comment.Hidden)

	// Delete is permanent; XP stays granted
	require.NoError(t, DeleteComment(moderator, commentID))
	err = db.First(&comment, "id = ?", commentID).Error
	assert.Error(t, err)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", reader.ID).Error)
	assert.Equal(t, 10, fresh.XP, "deleting a comment does not reverse XP")

	// Moderation actions are audited
	var audits int64
	require.NoError(t, db.Model(&models.AdminAction{}).Where("admin_id = ?", moderator.ID).Count(&audits).Error)
	assert.EqualValues(t, 3, audits)
}

func TestDeleteComment_NotFound(t *testing.T) {
	db := setupTestDB(t)
	moderator := createUser(t, db, "mod", models.RoleModerator, 0)

	err := DeleteComment(moderator, "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
