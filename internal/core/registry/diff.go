package registry

import (
	"github.com/taibuivan/bhugol/internal/core/catalog"
)

// Availability is the unclaimed remainder of the catalog for one identity.
//
// It is always computed fresh from the prior registrations visible at the
// moment of the call — never cached — because the uniqueness guarantee must
// hold again at commit time regardless of what verification saw earlier.
type Availability struct {
	Categories []catalog.Category `json:"availableCategories"`
	Products   []catalog.Product  `json:"availableProducts"`
}

// AvailableCategories subtracts every category claimed by the prior
// registrations from the full catalog, preserving catalog order.
func AvailableCategories(all []catalog.Category, prior []Registration) []catalog.Category {
	claimed := make(map[int]struct{})
	for _, registration := range prior {
		for _, id := range registration.CategoryIDs {
			claimed[id] = struct{}{}
		}
	}

	available := make([]catalog.Category, 0, len(all))
	for _, category := range all {
		if _, ok := claimed[category.ID]; !ok {
			available = append(available, category)
		}
	}
	return available
}

// AvailableProducts subtracts every product claimed by the prior
// registrations (existing ∪ selected) from the full catalog, preserving
// catalog order.
func AvailableProducts(all []catalog.Product, prior []Registration) []catalog.Product {
	claimed := make(map[int]struct{})
	for _, registration := range prior {
		for _, id := range registration.ProductIDs() {
			claimed[id] = struct{}{}
		}
	}

	available := make([]catalog.Product, 0, len(all))
	for _, product := range all {
		if _, ok := claimed[product.ID]; !ok {
			available = append(available, product)
		}
	}
	return available
}

// CategoryIDSet collapses availability into a lookup set of category ids.
func (availability Availability) CategoryIDSet() map[int]struct{} {
	set := make(map[int]struct{}, len(availability.Categories))
	for _, category := range availability.Categories {
		set[category.ID] = struct{}{}
	}
	return set
}

// ProductIDSet collapses availability into a lookup set of product ids.
func (availability Availability) ProductIDSet() map[int]struct{} {
	set := make(map[int]struct{}, len(availability.Products))
	for _, product := range availability.Products {
		set[product.ID] = struct{}{}
	}
	return set
}
