package models

// Rights are the capability flags of an admin.
type Rights struct {
	ManageUsers    bool `json:"manage_users" gorm:"not null"`
	ManageNotes    bool `json:"manage_notes" gorm:"not null"`
	ManageProducts bool `json:"manage_products" gorm:"not null"`
}

// Admin represents a bar staff account.
type Admin struct {
	Login    string `json:"login" gorm:"primaryKey;type:varchar(127)"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt digest, never serialized
	Rights   `gorm:"embedded"`
}

// Right names, as used in JSON payloads and route guards.
const (
	RightManageUsers    = "manage_users"
	RightManageNotes    = "manage_notes"
	RightManageProducts = "manage_products"
)

// Has reports whether the named right is granted. Unknown names are never granted.
func (r Rights) Has(right string) bool {
	switch right {
	case RightManageUsers:
		return r.ManageUsers
	case RightManageNotes:
		return r.ManageNotes
	case RightManageProducts:
		return r.ManageProducts
	default:
		return false
	}
}
