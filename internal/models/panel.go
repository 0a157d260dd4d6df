package models

// Panel is a named menu grouping products for quick sale.
type Panel struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(127);not null"`
}

// PanelContent associates a product with a panel.
type PanelContent struct {
	PanelID   uint `json:"panel_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
}

func (PanelContent) TableName() string { return "panel_content" }

// PanelContentEntry is a denormalized panel content row.
type PanelContentEntry struct {
	PanelID      uint   `json:"panel_id"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
}
