package migrations

import (
	"errors"
	"log"

	"github.com/commonmail820/techwizards-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and creates default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds the admin account and the menu categories.
func createDefaultData(db *gorm.DB) error {
	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Creating admin user...")
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin = models.User{
		Username:     "admin",
		Email:        "admin@restaurant.local",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Admin user created (username: admin)")

	categories := []models.MenuCategory{
		{Name: string(models.CategoryAppetizer), Description: "Starters and small plates", DisplayOrder: 1},
		{Name: string(models.CategoryMainCourse), Description: "Main dishes", DisplayOrder: 2},
		{Name: string(models.CategorySide), Description: "Sides", DisplayOrder: 3},
		{Name: string(models.CategoryDessert), Description: "Desserts", DisplayOrder: 4},
		{Name: string(models.CategoryBeverage), Description: "Drinks", DisplayOrder: 5},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Printf("Warning: Failed to seed category %s: %v", categories[i].Name, err)
		}
	}

	return nil
}
