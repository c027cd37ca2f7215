package seeds

import (
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DS1003/blog-moomel-sub001/internal/database"
	"github.com/DS1003/blog-moomel-sub001/internal/models"
)

// GetOrCreateAdminUser makes sure a platform admin exists. Credentials can be
// overridden with ADMIN_EMAIL / ADMIN_PASSWORD for first deployments.
func GetOrCreateAdminUser() (models.User, error) {
	log.Println("👤 Checking Admin User...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@moomel.sn"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "MoomelAdmin2024!"
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil {
		log.Printf("   ✅ Admin found: %s", user.Username)
		return user, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user = models.User{
		ID:       uuid.New().String(),
		Username: "moomel",
		Email:    email,
		Password: string(hash),
		Name:     "Équipe Moomel",
		Bio:      "Compte officiel du Trésor Moomel.",
		Role:     models.RoleAdmin,
		IsActive: true,
		Level:    1,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   ✅ Admin Created: %s", user.Username)
	return user, nil
}
