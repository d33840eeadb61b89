package catalog

import "context"

// Repository reads the global category/product catalog.
//
// Implementations must return results in stable catalog order (by id) so
// that availability diffs preserve ordering for clients.
type Repository interface {
	ListCategories(context context.Context) ([]Category, error)
	ListProducts(context context.Context) ([]Product, error)
	ListProductsByCategories(context context.Context, categoryIDs []int) ([]Product, error)
	GetCategory(context context.Context, id int) (*Category, error)
	GetProduct(context context.Context, id int) (*Product, error)
}
