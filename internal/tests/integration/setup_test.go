package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DS1003/blog-moomel-sub001/internal/config"
	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/routes"
	"github.com/DS1003/blog-moomel-sub001/pkg/logger"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}
	logger.Init("test")

	// Named shared-memory DB so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
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
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
	database.Redis = nil

	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api)
		routes.RegisterAdminRoutes(api)
		routes.RegisterArticleRoutes(api)
		routes.RegisterEngagementRoutes(api)
		routes.RegisterUserRoutes(api)
	}

	return r
}

func createTestUser(t *testing.T, prefix string, role models.Role) (models.User, string) {
	passHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	user := models.User{
		Username: prefix,
		Email:    prefix + "@test.sn",
		Password: string(passHash),
		Name:     prefix + " Test",
		Role:     role,
		IsActive: true,
		Level:    1,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", prefix, err)
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return user, token
}

func seedConfig(t *testing.T) {
	actions := []models.XPAction{
		{Action: models.ActionLikeArticle, XPAmount: 5, Enabled: true},
		{Action: models.ActionPostComment, XPAmount: 10, Enabled: true},
		{Action: models.ActionPublishArticle, XPAmount: 25, Enabled: true},
	}
	for _, a := range actions {
		if err := database.DB.Create(&a).Error; err != nil {
			t.Fatalf("Failed to seed XP action: %v", err)
		}
	}

	thresholds := []models.LevelThreshold{
		{Level: 1, XPRequired: 0},
		{Level: 2, XPRequired: 50},
		{Level: 3, XPRequired: 150},
	}
	for _, th := range thresholds {
		if err := database.DB.Create(&th).Error; err != nil {
			t.Fatalf("Failed to seed level threshold: %v", err)
		}
	}
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(jsonBytes))
	} else {
		bodyReader = strings.NewReader("")
	}

	req, _ := http.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
