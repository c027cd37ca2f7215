package services

import (
	"sync"
	"time"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Badges   int64  `json:"badges"`
}

type cachedLeaderboard struct {
	Entries   []LeaderboardEntry
	ExpiresAt time.Time
}

var (
	lbCache cachedLeaderboard
	lbMutex sync.RWMutex
	lbTTL   = 30 * time.Second
)

// InvalidateLeaderboardCache clears the cached ranking; admin XP corrections
// call this so the board reflects them immediately.
func InvalidateLeaderboardCache() {
	lbMutex.Lock()
	defer lbMutex.Unlock()
	lbCache = cachedLeaderboard{}
}

// GetLeaderboard returns the top N active users by XP, ties broken by earlier
// signup. Served from a short-TTL in-process cache.
func GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	lbMutex.RLock()
	if time.Now().Before(lbCache.ExpiresAt) && len(lbCache.Entries) >= limit {
		entries := lbCache.Entries[:limit]
		lbMutex.RUnlock()
		return entries, nil
	}
	lbMutex.RUnlock()

	var users []models.User
	if err := database.DB.
		Where("is_active = ?", true).
		Order("xp desc, created_at asc").
		Limit(100).
		Find(&users).Error; err != nil {
		return nil, translateDBError(err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		var badgeCount int64
		database.DB.Model(&models.UserBadge{}).Where("user_id = ?", u.ID).Count(&badgeCount)

		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			Name:     u.Name,
			Avatar:   u.Avatar,
			XP:       u.XP,
			Level:    u.Level,
			Badges:   badgeCount,
		})
	}

	lbMutex.Lock()
	lbCache = cachedLeaderboard{Entries: entries, ExpiresAt: time.Now().Add(lbTTL)}
	lbMutex.Unlock()

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
