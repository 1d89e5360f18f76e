package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	OrderNumber         string         `json:"order_number" gorm:"unique;not null"`
	UserID              uint           `json:"user_id" gorm:"not null;index"`
	TotalAmount         float64        `json:"total_amount" gorm:"not null"`
	Status              string         `json:"status" gorm:"default:'pending';index"`
	PaymentStatus       string         `json:"payment_status" gorm:"default:'pending';index"`
	PaymentMethod       string         `json:"payment_method"`
	IsTakeout           bool           `json:"is_takeout" gorm:"default:false"`
	TableNumber         *int           `json:"table_number"`
	SpecialInstructions string         `json:"special_instructions"`
	Items               []OrderItem    `json:"items"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentOnline     PaymentMethod = "online"
)

func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentOnline:
		return true
	}
	return false
}
