// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
)

func testCategories() []catalog.Category {
	return []catalog.Category{
		{ID: 1, Name: "Handloom"},
		{ID: 2, Name: "Agriculture"},
		{ID: 3, Name: "Handicraft"},
	}
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 10, CategoryID: 1, Name: "Silk Saree"},
		{ID: 11, CategoryID: 1, Name: "Cotton Weave"},
		{ID: 20, CategoryID: 2, Name: "Black Rice"},
		{ID: 30, CategoryID: 3, Name: "Bamboo Craft"},
	}
}

/*
TestAvailableCategories_Partition verifies the diff partition: the available
set and the claimed set are disjoint, and together they cover the full
catalog.
*/
func TestAvailableCategories_Partition(t *testing.T) {
	all := testCategories()
	prior := []registry.Registration{
		{ID: "r1", CategoryIDs: []int{1}},
		{ID: "r2", CategoryIDs: []int{3}},
	}

	available := registry.AvailableCategories(all, prior)

	// Disjoint from the claimed set.
	availableIDs := make(map[int]struct{})
	for _, category := range available {
		availableIDs[category.ID] = struct{}{}
	}
	assert.NotContains(t, availableIDs, 1)
	assert.NotContains(t, availableIDs, 3)

	// Union covers the whole catalog.
	assert.Len(t, available, 1)
	assert.Equal(t, 2, available[0].ID)
}

/*
TestAvailableProducts_UnionOfClaims verifies that both the existing and the
selected product ids of every prior registration count as claimed.
*/
func TestAvailableProducts_UnionOfClaims(t *testing.T) {
	all := testProducts()
	prior := []registry.Registration{
		{ID: "r1", ExistingProductIDs: []int{10}, SelectedProductIDs: []int{20}},
	}

	available := registry.AvailableProducts(all, prior)

	ids := make([]int, 0, len(available))
	for _, product := range available {
		ids = append(ids, product.ID)
	}
	assert.Equal(t, []int{11, 30}, ids)
}

/*
TestAvailable_PreservesCatalogOrder verifies that subtraction keeps the
catalog's stable ordering.
*/
func TestAvailable_PreservesCatalogOrder(t *testing.T) {
	prior := []registry.Registration{{ID: "r1", CategoryIDs: []int{2}}}

	available := registry.AvailableCategories(testCategories(), prior)

	assert.Len(t, available, 2)
	assert.Equal(t, 1, available[0].ID)
	assert.Equal(t, 3, available[1].ID)
}

/*
TestAvailable_NoPriorRegistrations verifies that a fresh identity sees the
full catalog.
*/
func TestAvailable_NoPriorRegistrations(t *testing.T) {
	assert.Len(t, registry.AvailableCategories(testCategories(), nil), 3)
	assert.Len(t, registry.AvailableProducts(testProducts(), nil), 4)
}
