package models

// Category groups products and carries their display settings.
type Category struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;type:varchar(127);not null"`
	Alcoholic bool   `json:"alcoholic" gorm:"not null"`
	Color     string `json:"color" gorm:"type:varchar(32);not null"`
}
