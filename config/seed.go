package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"
)

// SeedAdmin creates the first admin account when SEED_ADMIN_PASSWORD is set.
// Does nothing once any admin exists.
func SeedAdmin() {
	if App.SeedAdminPassword == "" {
		return
	}

	var cnt int64
	DB.Model(&models.Admin{}).Count(&cnt)
	if cnt > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(App.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️  Failed to hash seed admin password: %v", err)
		return
	}

	admin := models.Admin{
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: string(hash),
		AvatarURL:    utils.DefaultAvatar("Administrator"),
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("⚠️  Failed to seed admin: %v", err)
		return
	}
	log.Printf("✅ Seeded admin account (username=admin)")
}

func SeedCategories() {
	names := []string{
		"Groceries",
		"Dry Goods",
		"Beverages",
		"Household",
	}
	for _, n := range names {
		var cnt int64
		DB.Model(&models.Category{}).Where("name = ?", n).Count(&cnt)
		if cnt == 0 {
			DB.Create(&models.Category{Name: n})
		}
	}
}
