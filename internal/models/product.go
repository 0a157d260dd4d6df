package models

import "github.com/shopspring/decimal"

// Product represents an item sold at the bar.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"uniqueIndex:idx_products_name_category;type:varchar(127);not null" validate:"required,max=127"`
	CategoryID uint            `json:"category_id" gorm:"uniqueIndex:idx_products_name_category;not null" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null;default:0"` // Alcohol by volume
}
