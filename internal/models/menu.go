package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null;index"`
	Description  string         `json:"description"`
	Price        float64        `json:"price" gorm:"not null"`
	Category     string         `json:"category" gorm:"not null;index"`
	ImageURL     string         `json:"image_url"`
	SpiceLevel   int            `json:"spice_level"`
	IsVegetarian bool           `json:"is_vegetarian" gorm:"default:false"`
	IsAvailable  bool           `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

type MenuCategory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"unique;not null"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ItemCategory string

const (
	CategoryAppetizer  ItemCategory = "Appetizer"
	CategoryMainCourse ItemCategory = "Main Course"
	CategoryDessert    ItemCategory = "Dessert"
	CategoryBeverage   ItemCategory = "Beverage"
	CategorySide       ItemCategory = "Side"
)

// ValidItemCategory reports whether s is one of the closed set of menu
// item categories.
func ValidItemCategory(s string) bool {
	switch ItemCategory(s) {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySide:
		return true
	}
	return false
}

type SpiceLevel int

const (
	SpiceNone     SpiceLevel = 0
	SpiceMild     SpiceLevel = 1
	SpiceMedium   SpiceLevel = 2
	SpiceHot      SpiceLevel = 3
	SpiceExtraHot SpiceLevel = 4
)
