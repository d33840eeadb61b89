// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

func seededRepository() *catalog.MemoryRepository {
	return catalog.NewMemoryRepository(
		[]catalog.Category{
			{ID: 2, Name: "Agriculture"},
			{ID: 1, Name: "Handloom"},
		},
		[]catalog.Product{
			{ID: 20, CategoryID: 2, Name: "Black Rice"},
			{ID: 10, CategoryID: 1, Name: "Silk Saree"},
			{ID: 11, CategoryID: 1, Name: "Cotton Weave"},
		},
	)
}

/*
TestMemoryRepository_StableOrdering verifies that listings come back in id
order regardless of seed order.
*/
func TestMemoryRepository_StableOrdering(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository()

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 1, categories[0].ID)
	assert.Equal(t, 2, categories[1].ID)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 10, products[0].ID)
	assert.Equal(t, 20, products[2].ID)
}

/*
TestMemoryRepository_ProductsByCategories verifies the category filter.
*/
func TestMemoryRepository_ProductsByCategories(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository()

	products, err := repo.ListProductsByCategories(ctx, []int{1})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 10, products[0].ID)
	assert.Equal(t, 11, products[1].ID)

	empty, err := repo.ListProductsByCategories(ctx, []int{99})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

/*
TestMemoryRepository_NotFound verifies lookup misses map to NOT_FOUND.
*/
func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := seededRepository()

	_, err := repo.GetCategory(ctx, 99)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	_, err = repo.GetProduct(ctx, 99)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	product, err := repo.GetProduct(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Silk Saree", product.Name)
}
