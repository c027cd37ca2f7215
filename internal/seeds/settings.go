package seeds

import (
	"log"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

func SeedSettings() {
	log.Println("⚙️ Seeding Platform Settings...")

	defaults := map[string]string{
		models.SettingMaintenanceMode:  "false",
		models.SettingRegistrationOpen: "true",
		models.SettingCommentsEnabled:  "true",
	}

	for key, value := range defaults {
		var existing models.Setting
		if err := database.DB.Where("key = ?", key).First(&existing).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			log.Printf("   ❌ Failed to seed setting %s: %v", key, err)
		} else {
			log.Printf("   ⚙️ %s = %s", key, value)
		}
	}
}
