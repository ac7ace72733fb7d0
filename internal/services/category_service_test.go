package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryCreateDerivesSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db, nil)

	category, err := service.Create("Edición Limitada")
	require.NoError(t, err)
	assert.Equal(t, "edicion-limitada", category.Slug)
	assert.NotEmpty(t, category.ID)
}

func TestCategoryListOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db, nil)

	for _, nombre := range []string{"Recargables", "Accesorios", "Desechables"} {
		_, err := service.Create(nombre)
		require.NoError(t, err)
	}

	categories, err := service.GetAll()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Accesorios", categories[0].Nombre)
	assert.Equal(t, "Desechables", categories[1].Nombre)
	assert.Equal(t, "Recargables", categories[2].Nombre)
}

func TestCategoryRenameRecomputesSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db, nil)

	category, err := service.Create("Desechables")
	require.NoError(t, err)

	renamed, err := service.Rename(category.ID, "Vapers Desechables")
	require.NoError(t, err)
	assert.Equal(t, category.ID, renamed.ID)
	assert.Equal(t, "Vapers Desechables", renamed.Nombre)
	assert.Equal(t, "vapers-desechables", renamed.Slug)
}

func TestCategoryDeleteLeavesProducts(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db, nil)
	products := NewProductService(db, nil)

	category, err := service.Create("Desechables")
	require.NoError(t, err)
	product, err := products.Create("Puff X", category.ID, "")
	require.NoError(t, err)

	require.NoError(t, service.Delete(category.ID))

	_, err = service.GetByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Products are never cascaded, they keep the dangling reference.
	kept, err := products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, kept.CategoriaID)
}
