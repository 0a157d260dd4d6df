package repositories

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enibar/internal/models"
)

func TestProductRepository_CreateAddsPricesForDescriptors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMProductRepository(db)
	category := seedCategory(t, db, "Biere")
	require.NoError(t, db.Create(&models.PriceDescriptor{Label: "Pinte", CategoryID: category.ID, Quantity: 50}).Error)
	require.NoError(t, db.Create(&models.PriceDescriptor{Label: "Demi", CategoryID: category.ID, Quantity: 25}).Error)

	product := &models.Product{Name: " Kro ", CategoryID: category.ID}
	require.NoError(t, repo.Create(product))

	assert.NotZero(t, product.ID)
	assert.Equal(t, "Kro", product.Name)
	var prices []models.Price
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&prices).Error)
	assert.Len(t, prices, 2)
	for _, price := range prices {
		assert.True(t, price.Value.IsZero())
	}
}

func TestProductRepository_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMProductRepository(db)
	category := seedCategory(t, db, "Soda")

	assert.ErrorIs(t, repo.Create(&models.Product{Name: "  ", CategoryID: category.ID}), ErrEmptyName)
	assert.ErrorIs(t, repo.Create(&models.Product{Name: "Coca", CategoryID: 999}), ErrCategoryNotFound)

	require.NoError(t, repo.Create(&models.Product{Name: "Coca", CategoryID: category.ID}))
	assert.Error(t, repo.Create(&models.Product{Name: "Coca", CategoryID: category.ID}))
	assert.Equal(t, int64(1), countRows(t, db, &models.Product{}))
}

func TestProductRepository_GetAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMProductRepository(db)
	soda := seedCategory(t, db, "Soda")
	beer := seedCategory(t, db, "Biere")
	coca := seedProduct(t, db, "Coca", soda.ID)
	seedProduct(t, db, "Orangina", soda.ID)
	seedProduct(t, db, "Kro", beer.ID)

	sodas, err := repo.Get(ProductFilter{CategoryID: &soda.ID})
	require.NoError(t, err)
	assert.Len(t, sodas, 2)

	product, err := repo.GetByID(coca.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coca", product.Name)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_RenameAndSetPercentage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMProductRepository(db)
	beer := seedCategory(t, db, "Biere")
	kro := seedProduct(t, db, "Kro", beer.ID)

	require.NoError(t, repo.Rename(kro.ID, "Kronenbourg"))
	require.NoError(t, repo.SetPercentage(kro.ID, decimal.RequireFromString("4.2")))

	product, err := repo.GetByID(kro.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kronenbourg", product.Name)
	assert.True(t, product.Percentage.Equal(decimal.RequireFromString("4.2")), product.Percentage.String())

	assert.ErrorIs(t, repo.Rename(kro.ID, " "), ErrEmptyName)
	assert.ErrorIs(t, repo.Rename(999, "Other"), ErrProductNotFound)
	assert.ErrorIs(t, repo.SetPercentage(999, decimal.Zero), ErrProductNotFound)
}

func TestProductRepository_DeleteRemovesPricesAndPanelEntries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMProductRepository(db)
	beer := seedCategory(t, db, "Biere")
	kro := seedProduct(t, db, "Kro", beer.ID)
	descriptor := models.PriceDescriptor{Label: "Pinte", CategoryID: beer.ID}
	require.NoError(t, db.Create(&descriptor).Error)
	require.NoError(t, db.Create(&models.Price{DescriptorID: descriptor.ID, ProductID: kro.ID}).Error)
	panel := models.Panel{Name: "Menu1"}
	require.NoError(t, db.Create(&panel).Error)
	require.NoError(t, db.Create(&models.PanelContent{PanelID: panel.ID, ProductID: kro.ID}).Error)

	require.NoError(t, repo.Delete(kro.ID))

	assert.Equal(t, int64(0), countRows(t, db, &models.Product{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.Price{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.PanelContent{}))
	assert.ErrorIs(t, repo.Delete(kro.ID), ErrProductNotFound)
}
