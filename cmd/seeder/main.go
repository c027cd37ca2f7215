package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/DS1003/blog-moomel-sub001/internal/config"
	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
	"github.com/DS1003/blog-moomel-sub001/internal/seeds"
	"github.com/DS1003/blog-moomel-sub001/pkg/utils"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	database.DB.AutoMigrate(
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
	)

	admin, err := seeds.GetOrCreateAdminUser()
	if err != nil {
		log.Fatalf("❌ Failed to ensure admin user: %v", err)
	}
	log.Printf("👉 Using Author: %s (%s)", admin.Username, admin.ID)

	seeds.SeedGamification()
	seeds.SeedBadges()
	seeds.SeedSettings()
	seedCategories()
	seedArticles(admin)

	log.Println("✅ Database Seeding Complete!")
}

func seedCategories() {
	log.Println("🗂️ Seeding Categories...")

	names := []string{"Histoires", "Culture", "Jeunesse", "Cuisine", "Actualités"}
	for _, name := range names {
		var existing models.Category
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}
		cat := models.Category{
			ID:   uuid.New().String(),
			Name: name,
			Slug: utils.GenerateSlug(name),
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			log.Printf("   ❌ Failed to create category %s: %v", name, err)
		} else {
			log.Printf("   🗂️ Category Added: %s", name)
		}
	}
}

func seedArticles(author models.User) {
	log.Println("📰 Seeding Articles...")

	var count int64
	database.DB.Model(&models.Article{}).Count(&count)
	if count > 0 {
		log.Println("   ℹ️ Articles already present, skipping.")
		return
	}

	var category models.Category
	database.DB.First(&category)

	now := time.Now()
	articles := []models.Article{
		{
			Title:     "Bienvenue sur le Trésor Moomel",
			Excerpt:   "Le blog communautaire qui raconte nos histoires.",
			Content:   "Le Trésor Moomel ouvre ses portes. Ici, chaque lecture, chaque like et chaque commentaire compte. Participez et gagnez des points d'expérience !",
			Published: true,
		},
		{
			Title:     "Comment fonctionnent les badges",
			Excerpt:   "Tout savoir sur les niveaux et les récompenses.",
			Content:   "Chaque action sur le blog rapporte des points d'expérience. En accumulant des points, vous montez de niveau et débloquez des badges, du plus commun au plus légendaire.",
			Published: true,
		},
	}

	for _, a := range articles {
		a.ID = uuid.New().String()
		a.Slug = utils.GenerateSlug(a.Title)
		a.AuthorID = author.ID
		if category.ID != "" {
			a.CategoryID = &category.ID
		}
		publishedAt := now
		a.PublishedAt = &publishedAt
		if err := database.DB.Create(&a).Error; err != nil {
			log.Printf("   ❌ Failed to create article %s: %v", a.Title, err)
		} else {
			log.Printf("   📰 Article Added: %s", a.Title)
		}
	}
}
