package main

import (
	"log"

	"gorm.io/gorm"

	"home-services-server/models"
	"home-services-server/utils"
)

// Seed populates reference data on an empty database: the admin
// account, the starter categories and one sample service per category.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount == 0 {
		hash, err := utils.HashPassword("password")
		if err != nil {
			return err
		}
		admin := models.User{
			Name:         "Admin User",
			Email:        "admin@services.com",
			PasswordHash: hash,
			Phone:        "+10000000000",
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded admin user")
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount > 0 {
		return nil
	}

	seeds := []struct {
		category models.Category
		service  *models.Service
	}{
		{
			category: models.Category{Name: "Cleaning", Description: "Home and facade cleaning services"},
			service: &models.Service{
				Name:          "Full apartment cleaning",
				Description:   "Deep cleaning of all rooms, kitchen and bathroom.",
				Price:         500,
				EstimatedTime: "4 hours",
			},
		},
		{
			category: models.Category{Name: "Electrical", Description: "Repair and installation of electrical wiring"},
			service: &models.Service{
				Name:          "Electrical fault repair",
				Description:   "Inspect and fix sudden faults in the panel or wiring.",
				Price:         200,
				EstimatedTime: "1 hour",
			},
		},
		{
			category: models.Category{Name: "Plumbing", Description: "Plumbing maintenance and leak repair"},
		},
		{
			category: models.Category{Name: "Air Conditioning", Description: "AC refill and maintenance"},
		},
	}

	for _, seed := range seeds {
		category := seed.category
		if err := db.Create(&category).Error; err != nil {
			return err
		}
		if seed.service != nil {
			service := *seed.service
			service.CategoryID = category.ID
			if err := db.Create(&service).Error; err != nil {
				return err
			}
		}
	}

	log.Println("✅ Seeded categories and sample services")
	return nil
}
