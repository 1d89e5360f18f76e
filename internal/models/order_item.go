package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a line of an order. UnitPrice is the menu price captured
// when the order was placed; later menu repricing never changes it.
// Items soft-delete together with their order.
type OrderItem struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	OrderID             uint           `json:"order_id" gorm:"not null;index"`
	MenuItemID          uint           `json:"menu_item_id" gorm:"not null"`
	Quantity            int            `json:"quantity" gorm:"not null"`
	UnitPrice           float64        `json:"unit_price" gorm:"not null"`
	TotalPrice          float64        `json:"total_price" gorm:"not null"`
	SpecialInstructions string         `json:"special_instructions"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}
