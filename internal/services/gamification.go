package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/internal/config"
	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/pkg/apperr"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
)

const gamificationConfigCacheKey = "gamification:config"

// GamificationConfig is the snapshot the engine works against for one award.
// It is fetched per call (Redis-cached with a short TTL, invalidated on admin
// writes) so config edits take effect without a restart and tests can supply
// deterministic fixtures.
type GamificationConfig struct {
	Actions    map[string]int          `json:"actions"`
	Thresholds []models.LevelThreshold `json:"thresholds"` // sorted by XPRequired asc, Level asc
}

// LoadGamificationConfig returns the current config snapshot, going through
// Redis when available and falling back to a direct read.
func LoadGamificationConfig(db *gorm.DB) (*GamificationConfig, error) {
	var cached GamificationConfig
	if err := database.CacheGet(gamificationConfigCacheKey, &cached); err == nil && cached.Actions != nil {
		return &cached, nil
	}

	cfg, err := loadGamificationConfigFromDB(db)
	if err != nil {
		return nil, err
	}

	ttl := 60
	if config.AppConfig != nil && config.AppConfig.GamificationCacheTTL > 0 {
		ttl = config.AppConfig.GamificationCacheTTL
	}
	if err := database.CacheSet(gamificationConfigCacheKey, cfg, time.Duration(ttl)*time.Second); err != nil {
		// Redis being down only costs us the cache
		logger.Debug().Err(err).Msg("gamification config cache write skipped")
	}
	return cfg, nil
}

func loadGamificationConfigFromDB(db *gorm.DB) (*GamificationConfig, error) {
	var actions []models.XPAction
	if err := db.Where("enabled = ?", true).Find(&actions).Error; err != nil {
		return nil, translateDBError(err)
	}

	var thresholds []models.LevelThreshold
	if err := db.Find(&thresholds).Error; err != nil {
		return nil, translateDBError(err)
	}

	cfg := &GamificationConfig{Actions: make(map[string]int, len(actions))}
	for _, a := range actions {
		cfg.Actions[a.Action] = a.XPAmount
	}
	cfg.Thresholds = thresholds
	sort.SliceStable(cfg.Thresholds, func(i, j int) bool {
		if cfg.Thresholds[i].XPRequired != cfg.Thresholds[j].XPRequired {
			return cfg.Thresholds[i].XPRequired < cfg.Thresholds[j].XPRequired
		}
		return cfg.Thresholds[i].Level < cfg.Thresholds[j].Level
	})
	return cfg, nil
}

// InvalidateGamificationConfig drops the cached snapshot. Called by every
// admin write to XP actions or level thresholds.
func InvalidateGamificationConfig() {
	if err := database.CacheInvalidate(gamificationConfigCacheKey); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate gamification config cache")
	}
}

// RecomputeLevel returns the greatest level whose threshold is <= xp.
// When two thresholds share the same XP requirement the higher level wins.
// Pure; thresholds must be sorted as LoadGamificationConfig leaves them.
func RecomputeLevel(xp int, thresholds []models.LevelThreshold) int {
	level := 0
	for _, t := range thresholds {
		if t.XPRequired <= xp && t.Level > level {
			level = t.Level
		}
	}
	return level
}

// AwardResult is what the caller may surface ("+5 XP", level-up toast,
// badge unlock list). The engine itself renders nothing.
type AwardResult struct {
	Action         string         `json:"action"`
	XPGranted      int            `json:"xpGranted"`
	NewXP          int            `json:"newXp"`
	NewLevel       int            `json:"newLevel"`
	LeveledUp      bool           `json:"leveledUp"`
	UnlockedBadges []models.Badge `json:"unlockedBadges"`
}

// AwardXP grants the configured XP for action to a user inside tx.
//
// The increment is a single atomic SQL update, never read-modify-write, so
// concurrent awards to the same account cannot lose updates. The level is
// recomputed from the fresh XP and persisted in the same transaction, and the
// badge sweep reads that same fresh value. An unconfigured action is an error,
// never a silent no-op.
func AwardXP(tx *gorm.DB, userID, action string, cfg *GamificationConfig) (*AwardResult, error) {
	amount, ok := cfg.Actions[action]
	if !ok {
		logger.Warn().Str("action", action).Msg("XP award requested for unconfigured action")
		return nil, apperr.UnknownAction(fmt.Sprintf("no XP amount configured for action %q", action))
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount))
	if res.Error != nil {
		return nil, translateDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("user not found")
	}

	var user models.User
	if err := tx.Select("id", "xp", "level").First(&user, "id = ?", userID).Error; err != nil {
		return nil, translateDBError(err)
	}

	result := &AwardResult{
		Action:    action,
		XPGranted: amount,
		NewXP:     user.XP,
		NewLevel:  user.Level,
	}

	newLevel := RecomputeLevel(user.XP, cfg.Thresholds)
	if newLevel != user.Level {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("level", newLevel).Error; err != nil {
			return nil, translateDBError(err)
		}
		result.LeveledUp = newLevel > user.Level
		result.NewLevel = newLevel
	}

	unlocked, err := sweepBadges(tx, userID, user.XP)
	if err != nil {
		return nil, err
	}
	result.UnlockedBadges = unlocked

	if result.LeveledUp {
		notifyLevelUp(tx, userID, result.NewLevel)
	}
	for _, b := range unlocked {
		notifyBadgeUnlocked(tx, userID, b)
	}

	return result, nil
}

// sweepBadges grants every badge the user now qualifies for but does not yet
// hold. Returned ascending by xp_required, ties by definition order, which is
// the order the caller reports them in.
func sweepBadges(tx *gorm.DB, userID string, xp int) ([]models.Badge, error) {
	var candidates []models.Badge
	err := tx.
		Where("xp_required <= ?", xp).
		Where("id NOT IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.UserBadge{}).Select("badge_id").Where("user_id = ?", userID)).
		Order("xp_required asc, created_at asc").
		Find(&candidates).Error
	if err != nil {
		return nil, translateDBError(err)
	}

	var unlocked []models.Badge
	for _, badge := range candidates {
		grant := models.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}
		if err := tx.Create(&grant).Error; err != nil {
			if isUniqueViolation(err) {
				// Another award granted it concurrently; not ours to report
				continue
			}
			return nil, translateDBError(err)
		}
		unlocked = append(unlocked, badge)
	}
	return unlocked, nil
}

func notifyLevelUp(tx *gorm.DB, userID string, level int) {
	n := models.Notification{
		UserID:  userID,
		ActorID: userID,
		Type:    models.NotificationTypeLevelUp,
		Message: fmt.Sprintf("You reached level %d!", level),
	}
	if err := tx.Create(&n).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to create level-up notification")
	}
	LogActivity(tx, userID, models.ActivityLevelUp, "", fmt.Sprintf("reached level %d", level))
}

func notifyBadgeUnlocked(tx *gorm.DB, userID string, badge models.Badge) {
	n := models.Notification{
		UserID:  userID,
		ActorID: userID,
		Type:    models.NotificationTypeBadge,
		BadgeID: &badge.ID,
		Message: fmt.Sprintf("Badge unlocked: %s", badge.Name),
	}
	if err := tx.Create(&n).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to create badge notification")
	}
	LogActivity(tx, userID, models.ActivityBadge, badge.ID, fmt.Sprintf("unlocked badge %s", badge.Name))
}

// AdjustXP is the out-of-band admin correction path. It sets XP to an explicit
// non-negative value and recomputes the level so the two never drift. Earned
// badges are kept even if the new XP falls below their threshold; grants are
// one-way.
func AdjustXP(tx *gorm.DB, userID string, newXP int, cfg *GamificationConfig) error {
	if newXP < 0 {
		return apperr.ValidationFailed("xp cannot be negative")
	}
	level := RecomputeLevel(newXP, cfg.Thresholds)
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{"xp": newXP, "level": level})
	if res.Error != nil {
		return translateDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
