package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Unit price in major currency units, fixed-point
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null;default:1;check:price >= 0" json:"price"`

	ImageURL *string `json:"image_url"`

	// Units in stock, can't go negative
	Inventory int `gorm:"not null;default:0;check:inventory >= 0" json:"inventory"`

	// Controls whether the product can be added to carts at all
	Available bool `gorm:"not null;default:true" json:"available"`

	Description *string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
