package seeds

import (
	"log"

	"github.com/google/uuid"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

func SeedBadges() {
	log.Println("🎖️ Seeding Badges...")

	badges := []models.Badge{
		{
			Name:        "Première Plume",
			Description: "Bienvenue sur le Trésor Moomel ! Tes premiers points d'expérience.",
			Icon:        "feather",
			Rarity:      models.RarityCommon,
			XPRequired:  5,
		},
		{
			Name:        "Lecteur Assidu",
			Description: "50 points d'expérience gagnés en participant à la communauté.",
			Icon:        "book-open",
			Rarity:      models.RarityCommon,
			XPRequired:  50,
		},
		{
			Name:        "Voix du Quartier",
			Description: "200 points d'expérience. Tes commentaires comptent.",
			Icon:        "megaphone",
			Rarity:      models.RarityRare,
			XPRequired:  200,
		},
		{
			Name:        "Chroniqueur",
			Description: "500 points d'expérience. Un pilier du blog.",
			Icon:        "pen-tool",
			Rarity:      models.RarityEpic,
			XPRequired:  500,
		},
		{
			Name:        "Gardien du Trésor",
			Description: "2000 points d'expérience. La légende du Trésor Moomel.",
			Icon:        "crown",
			Rarity:      models.RarityLegendary,
			XPRequired:  2000,
		},
	}

	for _, b := range badges {
		var existing models.Badge
		if err := database.DB.Where("name = ?", b.Name).First(&existing).Error; err == nil {
			log.Printf("   ℹ️ Badge already exists: %s", b.Name)
			continue
		}

		b.ID = uuid.New().String()
		if err := database.DB.Create(&b).Error; err != nil {
			log.Printf("   ❌ Failed to create badge %s: %v", b.Name, err)
		} else {
			log.Printf("   🎖️ Badge Defined: %s", b.Name)
		}
	}
}
