package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

// Full engagement lifecycle through the HTTP surface: publish, like, unlike,
// re-like, comment, then verify the XP ratchet on the profile.
func TestEngagementFlow(t *testing.T) {
	setupTestDB(t)
	seedConfig(t)
	r := setupRouter()

	_, adminToken := createTestUser(t, "flow_admin", models.RoleAdmin)

	// Publish an article as admin
	wCreate := performRequest(r, "POST", "/api/articles", map[string]interface{}{
		"title":     "Le premier conte",
		"excerpt":   "Un début",
		"content":   "Il était une fois...",
		"published": true,
	}, adminToken)
	require.Equal(t, http.StatusCreated, wCreate.Code, wCreate.Body.String())

	var createResp struct {
		Article models.Article `json:"article"`
	}
	require.NoError(t, json.Unmarshal(wCreate.Body.Bytes(), &createResp))
	slug := createResp.Article.Slug
	require.NotEmpty(t, slug)

	// Register a reader through the API
	wReg := performRequest(r, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "Reader One",
		"username": "reader_one",
		"email":    "reader@test.sn",
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusCreated, wReg.Code, wReg.Body.String())

	var regResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(wReg.Body.Bytes(), &regResp))
	readerToken := regResp.Token
	require.NotEmpty(t, readerToken)

	// Like: XP granted, count goes to 1
	wLike := performRequest(r, "POST", "/api/articles/"+slug+"/like", nil, readerToken)
	require.Equal(t, http.StatusOK, wLike.Code, wLike.Body.String())

	var likeResp struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"likeCount"`
		Award     *struct {
			XPGranted int `json:"xpGranted"`
			NewXP     int `json:"newXp"`
		} `json:"award"`
	}
	require.NoError(t, json.Unmarshal(wLike.Body.Bytes(), &likeResp))
	assert.True(t, likeResp.Liked)
	assert.Equal(t, int64(1), likeResp.LikeCount)
	require.NotNil(t, likeResp.Award)
	assert.Equal(t, 5, likeResp.Award.XPGranted)

	// Unlike: like removed, no XP clawback
	wUnlike := performRequest(r, "POST", "/api/articles/"+slug+"/like", nil, readerToken)
	require.Equal(t, http.StatusOK, wUnlike.Code)
	require.NoError(t, json.Unmarshal(wUnlike.Body.Bytes(), &likeResp))
	assert.False(t, likeResp.Liked)
	assert.Equal(t, int64(0), likeResp.LikeCount)
	assert.Nil(t, likeResp.Award)

	// Re-like grants again
	wRelike := performRequest(r, "POST", "/api/articles/"+slug+"/like", nil, readerToken)
	require.Equal(t, http.StatusOK, wRelike.Code)
	require.NoError(t, json.Unmarshal(wRelike.Body.Bytes(), &likeResp))
	assert.True(t, likeResp.Liked)
	require.NotNil(t, likeResp.Award)
	assert.Equal(t, 10, likeResp.Award.NewXP)

	// Comment grants POST_COMMENT XP
	wComment := performRequest(r, "POST", "/api/articles/"+slug+"/comments", map[string]interface{}{
		"content": "Magnifique histoire !",
	}, readerToken)
	require.Equal(t, http.StatusCreated, wComment.Code, wComment.Body.String())

	// Profile reflects the accumulated XP: 5 + 5 + 10
	var reader models.User
	require.NoError(t, database.DB.First(&reader, "username = ?", "reader_one").Error)
	assert.Equal(t, 20, reader.XP)

	wProfile := performRequest(r, "GET", "/api/users/reader_one", nil, "")
	assert.Equal(t, http.StatusOK, wProfile.Code)
}

func TestModerationFlow(t *testing.T) {
	setupTestDB(t)
	seedConfig(t)
	r := setupRouter()

	_, adminToken := createTestUser(t, "mod_admin", models.RoleAdmin)
	_, modToken := createTestUser(t, "mod_staff", models.RoleModerator)
	author, authorToken := createTestUser(t, "mod_author", models.RoleUser)

	wCreate := performRequest(r, "POST", "/api/articles", map[string]interface{}{
		"title":     "Article à modérer",
		"content":   "Contenu.",
		"published": true,
	}, adminToken)
	require.Equal(t, http.StatusCreated, wCreate.Code)

	var createResp struct {
		Article models.Article `json:"article"`
	}
	require.NoError(t, json.Unmarshal(wCreate.Body.Bytes(), &createResp))
	slug := createResp.Article.Slug

	wComment := performRequest(r, "POST", "/api/articles/"+slug+"/comments", map[string]interface{}{
		"content": "Commentaire douteux",
	}, authorToken)
	require.Equal(t, http.StatusCreated, wComment.Code)

	var commentResp struct {
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(wComment.Body.Bytes(), &commentResp))
	commentID := commentResp.Comment.ID

	// A regular user cannot hide comments
	wDenied := performRequest(r, "PATCH", "/api/comments/"+commentID+"/hidden", map[string]interface{}{
		"hidden": true,
	}, authorToken)
	assert.Equal(t, http.StatusForbidden, wDenied.Code)

	// A moderator can
	wHide := performRequest(r, "PATCH", "/api/comments/"+commentID+"/hidden", map[string]interface{}{
		"hidden": true,
	}, modToken)
	require.Equal(t, http.StatusOK, wHide.Code, wHide.Body.String())

	var hidden models.Comment
	require.NoError(t, database.DB.First(&hidden, "id = ?", commentID).Error)
	assert.True(t, hidden.Hidden)

	// Deleting the comment keeps the author's XP
	xpBefore := author.XP
	wDelete := performRequest(r, "DELETE", "/api/comments/"+commentID, nil, modToken)
	require.Equal(t, http.StatusOK, wDelete.Code)

	var after models.User
	require.NoError(t, database.DB.First(&after, "id = ?", author.ID).Error)
	assert.GreaterOrEqual(t, after.XP, xpBefore)

	err := database.DB.First(&models.Comment{}, "id = ?", commentID).Error
	assert.Error(t, err)
}

func TestAdminGamificationConfig(t *testing.T) {
	setupTestDB(t)
	seedConfig(t)
	r := setupRouter()

	_, adminToken := createTestUser(t, "cfg_admin", models.RoleAdmin)
	_, userToken := createTestUser(t, "cfg_user", models.RoleUser)

	// Negative amounts are rejected at write time
	wNeg := performRequest(r, "PUT", "/api/admin/gamification/actions", map[string]interface{}{
		"action":   "LIKE_ARTICLE",
		"xpAmount": -5,
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, wNeg.Code)

	// Valid update lands
	wOk := performRequest(r, "PUT", "/api/admin/gamification/actions", map[string]interface{}{
		"action":   "LIKE_ARTICLE",
		"xpAmount": 8,
	}, adminToken)
	require.Equal(t, http.StatusOK, wOk.Code, wOk.Body.String())

	var row models.XPAction
	require.NoError(t, database.DB.First(&row, "action = ?", "LIKE_ARTICLE").Error)
	assert.Equal(t, 8, row.XPAmount)

	// Badge definitions: create, reject negative threshold, update
	wBadge := performRequest(r, "POST", "/api/admin/badges", map[string]interface{}{
		"name":       "Pionnier",
		"xpRequired": 10,
	}, adminToken)
	require.Equal(t, http.StatusCreated, wBadge.Code, wBadge.Body.String())

	var badgeResp struct {
		Badge models.Badge `json:"badge"`
	}
	require.NoError(t, json.Unmarshal(wBadge.Body.Bytes(), &badgeResp))

	wBadgeNeg := performRequest(r, "PUT", "/api/admin/badges/"+badgeResp.Badge.ID, map[string]interface{}{
		"name":       "Pionnier",
		"xpRequired": -1,
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, wBadgeNeg.Code)

	wBadgeUp := performRequest(r, "PUT", "/api/admin/badges/"+badgeResp.Badge.ID, map[string]interface{}{
		"name":       "Pionnier",
		"xpRequired": 15,
	}, adminToken)
	require.Equal(t, http.StatusOK, wBadgeUp.Code, wBadgeUp.Body.String())

	var badge models.Badge
	require.NoError(t, database.DB.First(&badge, "id = ?", badgeResp.Badge.ID).Error)
	assert.Equal(t, 15, badge.XPRequired)

	// Non-admins are locked out entirely
	wForbidden := performRequest(r, "GET", "/api/admin/gamification/actions", nil, userToken)
	assert.Equal(t, http.StatusForbidden, wForbidden.Code)

	// The write left an audit trail
	var audits int64
	database.DB.Model(&models.AdminAction{}).Where("action = ?", models.ActionManageGamification).Count(&audits)
	assert.Equal(t, int64(1), audits)
}
