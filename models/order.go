package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // Awaiting payment
	PaymentStatusPaid    PaymentStatus = "paid"    // Payment completed, terminal
)

type Order struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	// Sum of item subtotals at the moment the order was last recalculated
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:total_price >= 0" json:"total_price"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	// Unique external reference, also handed to the payment provider
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Quantity int `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`

	// Product price copied at order creation, decoupled from later
	// catalog changes.
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:price >= 0" json:"price"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
}

// Subtotal is quantity × snapshot price.
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
