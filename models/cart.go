package models

import "time"

type CartItem struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// One row per (user, product): a repeated add bumps the quantity
	// instead of inserting a duplicate.
	UserID    uint `gorm:"not null;index;uniqueIndex:uq_cart_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;index;uniqueIndex:uq_cart_user_product" json:"product_id"`

	Quantity int `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
}
