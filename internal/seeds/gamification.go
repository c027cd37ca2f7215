package seeds

import (
	"log"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

func SeedGamification() {
	log.Println("⚡ Seeding Gamification Config...")

	actions := []models.XPAction{
		{Action: models.ActionLikeArticle, XPAmount: 5, Enabled: true},
		{Action: models.ActionPostComment, XPAmount: 10, Enabled: true},
		{Action: models.ActionPublishArticle, XPAmount: 25, Enabled: true},
	}

	for _, a := range actions {
		var existing models.XPAction
		if err := database.DB.Where("action = ?", a.Action).First(&existing).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&a).Error; err != nil {
			log.Printf("   ❌ Failed to create XP action %s: %v", a.Action, err)
		} else {
			log.Printf("   ⚡ XP Action: %s = %d", a.Action, a.XPAmount)
		}
	}

	thresholds := []models.LevelThreshold{
		{Level: 1, XPRequired: 0},
		{Level: 2, XPRequired: 50},
		{Level: 3, XPRequired: 150},
		{Level: 4, XPRequired: 350},
		{Level: 5, XPRequired: 700},
		{Level: 6, XPRequired: 1200},
		{Level: 7, XPRequired: 2000},
	}

	for _, t := range thresholds {
		var existing models.LevelThreshold
		if err := database.DB.Where("level = ?", t.Level).First(&existing).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&t).Error; err != nil {
			log.Printf("   ❌ Failed to create level threshold %d: %v", t.Level, err)
		} else {
			log.Printf("   📈 Level %d at %d XP", t.Level, t.XPRequired)
		}
	}
}
