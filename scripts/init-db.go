package main

import (
	"log"

	"github.com/commonmail820/techwizards-backend/internal/config"
	"github.com/commonmail820/techwizards-backend/internal/database"
	"github.com/commonmail820/techwizards-backend/internal/migrations"
	"github.com/commonmail820/techwizards-backend/internal/models"

	"gorm.io/gorm"
)

// Seeds the database with the default admin, the menu categories and a
// small sample menu. Run with: go run ./scripts
func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := seedMenu(db); err != nil {
		log.Fatal("Failed to seed menu:", err)
	}

	log.Println("Database initialized successfully")
}

func seedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Menu items already exist, skipping sample menu")
		return nil
	}

	log.Println("Seeding sample menu...")
	items := []models.MenuItem{
		{Name: "Guacamole", Description: "Fresh avocado dip with tortilla chips", Price: 6.50, Category: string(models.CategoryAppetizer), SpiceLevel: int(models.SpiceMild), IsVegetarian: true, IsAvailable: true},
		{Name: "Taco al Pastor", Description: "Marinated pork taco with pineapple", Price: 3.50, Category: string(models.CategoryMainCourse), SpiceLevel: int(models.SpiceMedium), IsAvailable: true},
		{Name: "Enchiladas Verdes", Description: "Chicken enchiladas with green salsa", Price: 11.00, Category: string(models.CategoryMainCourse), SpiceLevel: int(models.SpiceHot), IsAvailable: true},
		{Name: "Frijoles", Description: "Refried beans", Price: 3.00, Category: string(models.CategorySide), IsVegetarian: true, IsAvailable: true},
		{Name: "Churros", Description: "Fried dough with cinnamon sugar", Price: 5.00, Category: string(models.CategoryDessert), IsVegetarian: true, IsAvailable: true},
		{Name: "Horchata", Description: "Rice and cinnamon drink", Price: 3.00, Category: string(models.CategoryBeverage), IsVegetarian: true, IsAvailable: true},
	}
	return db.Create(&items).Error
}
