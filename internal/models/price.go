package models

import "github.com/shopspring/decimal"

// PriceDescriptor is a named price tier of a category, e.g. "Pinte" or "Demi".
type PriceDescriptor struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Label      string `json:"label" gorm:"type:varchar(127);not null"`
	CategoryID uint   `json:"category_id" gorm:"index;not null"`
	Quantity   int    `json:"quantity" gorm:"not null"` // Centilitres served, 0 for solids
}

func (PriceDescriptor) TableName() string { return "price_description" }

// Price is the value of one descriptor for one product.
type Price struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	DescriptorID uint            `json:"descriptor_id" gorm:"column:price_description_id;index;not null"`
	ProductID    uint            `json:"product_id" gorm:"index;not null"`
	Value        decimal.Decimal `json:"value" gorm:"type:decimal(10,2);not null"`
}

// PriceEntry is a price joined with its descriptor.
type PriceEntry struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	DescriptorID uint            `json:"descriptor_id"`
	Label        string          `json:"label"`
	Quantity     int             `json:"quantity"`
	Value        decimal.Decimal `json:"value"`
}

// PriceUpdate sets the value of a single price.
type PriceUpdate struct {
	ID    uint            `json:"id" validate:"required"`
	Value decimal.Decimal `json:"value"`
}
