package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
)

var testDBSeq int64

// setupTestDB gives each test a fresh in-memory database and points the
// package-global handle at it, the same way the integration suite does.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Init("test")

	// Named shared-memory DSN so every pooled connection sees the same DB,
	// while each test still gets its own
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.ArticleImage{},
		&models.Like{},
		&models.Comment{},
		&models.Badge{},
		&models.UserBadge{},
		&models.XPAction{},
		&models.LevelThreshold{},
		&models.Setting{},
		&models.AdminAction{},
		&models.Notification{},
		&models.UserActivity{},
	); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	database.DB = db
	database.Redis = nil // config path falls back to direct DB reads
	InvalidateLeaderboardCache()

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, xp int) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@moomel.test",
		Role:     role,
		IsActive: true,
		XP:       xp,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createArticle(t *testing.T, db *gorm.DB, author models.User, title string) models.Article {
	t.Helper()
	article := models.Article{
		Title:     title,
		Slug:      title,
		Content:   "content",
		Published: true,
		AuthorID:  author.ID,
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	return article
}

func seedXPActions(t *testing.T, db *gorm.DB, actions map[string]int) {
	t.Helper()
	for action, amount := range actions {
		row := models.XPAction{Action: action, XPAmount: amount, Enabled: true}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to seed xp action %s: %v", action, err)
		}
	}
}

func seedThresholds(t *testing.T, db *gorm.DB, pairs [][2]int) {
	t.Helper()
	for _, p := range pairs {
		row := models.LevelThreshold{Level: p[0], XPRequired: p[1]}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to seed threshold %v: %v", p, err)
		}
	}
}
