package repositories

import (
	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// Ptr returns a pointer to v, for building filters inline.
func Ptr[T any](v T) *T {
	return &v
}

// CategoryFilter restricts a category query. Nil fields are ignored.
type CategoryFilter struct {
	ID        *uint
	Name      *string
	Alcoholic *bool
	Color     *string
}

func (f CategoryFilter) apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		db = db.Where("name = ?", *f.Name)
	}
	if f.Alcoholic != nil {
		db = db.Where("alcoholic = ?", *f.Alcoholic)
	}
	if f.Color != nil {
		db = db.Where("color = ?", *f.Color)
	}
	return db
}

// ProductFilter restricts a product query. Nil fields are ignored.
type ProductFilter struct {
	ID         *uint
	Name       *string
	CategoryID *uint
}

func (f ProductFilter) apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		db = db.Where("name = ?", *f.Name)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	return db
}

// DescriptorFilter restricts a price descriptor query. Nil fields are ignored.
type DescriptorFilter struct {
	ID         *uint
	Label      *string
	CategoryID *uint
}

func (f DescriptorFilter) apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Label != nil {
		db = db.Where("label = ?", *f.Label)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	return db
}

// PriceFilter restricts a price query. Nil fields are ignored.
type PriceFilter struct {
	ID           *uint
	ProductID    *uint
	DescriptorID *uint
}

func (f PriceFilter) eq() sq.Eq {
	eq := sq.Eq{}
	if f.ID != nil {
		eq["prices.id"] = *f.ID
	}
	if f.ProductID != nil {
		eq["prices.product_id"] = *f.ProductID
	}
	if f.DescriptorID != nil {
		eq["prices.price_description_id"] = *f.DescriptorID
	}
	return eq
}

// PanelFilter restricts a panel query. Nil fields are ignored.
type PanelFilter struct {
	ID   *uint
	Name *string
}

func (f PanelFilter) apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		db = db.Where("name = ?", *f.Name)
	}
	return db
}

// PanelContentFilter restricts a panel content query on panel_content's own
// columns. Nil fields are ignored.
type PanelContentFilter struct {
	PanelID   *uint
	ProductID *uint
}

func (f PanelContentFilter) eq() sq.Eq {
	eq := sq.Eq{}
	if f.PanelID != nil {
		eq["panel_content.panel_id"] = *f.PanelID
	}
	if f.ProductID != nil {
		eq["panel_content.product_id"] = *f.ProductID
	}
	return eq
}

// rawQuery renders a squirrel builder into SQL gorm can run with Raw. The
// default "?" placeholders are rebound by gorm for the active dialect.
func rawQuery(db *gorm.DB, builder sq.SelectBuilder, where sq.Eq) (*gorm.DB, error) {
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return db.Raw(query, args...), nil
}
