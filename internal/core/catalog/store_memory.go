package catalog

import (
	"context"
	"sort"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
	"github.com/taibuivan/bhugol/pkg/slug"
)

// MemoryRepository is an in-memory catalog used by unit tests and local
// development seeds. It mirrors the ordering guarantees of the Postgres store.
type MemoryRepository struct {
	categories []Category
	products   []Product
}

// NewMemoryRepository builds a MemoryRepository from fixed catalog data.
// The input slices are copied and sorted by id; missing slugs are derived
// from the entity name, matching what upstream data releases populate.
func NewMemoryRepository(categories []Category, products []Product) *MemoryRepository {
	cs := make([]Category, len(categories))
	copy(cs, categories)
	for i := range cs {
		if cs[i].Slug == "" {
			cs[i].Slug = slug.From(cs[i].Name)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })

	ps := make([]Product, len(products))
	copy(ps, products)
	for i := range ps {
		if ps[i].Slug == "" {
			ps[i].Slug = slug.From(ps[i].Name)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })

	return &MemoryRepository{categories: cs, products: ps}
}

func (repository *MemoryRepository) ListCategories(_ context.Context) ([]Category, error) {
	result := make([]Category, len(repository.categories))
	copy(result, repository.categories)
	return result, nil
}

func (repository *MemoryRepository) ListProducts(_ context.Context) ([]Product, error) {
	result := make([]Product, len(repository.products))
	copy(result, repository.products)
	return result, nil
}

func (repository *MemoryRepository) ListProductsByCategories(_ context.Context, categoryIDs []int) ([]Product, error) {
	wanted := make(map[int]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}

	result := make([]Product, 0)
	for _, p := range repository.products {
		if _, ok := wanted[p.CategoryID]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (repository *MemoryRepository) GetCategory(_ context.Context, id int) (*Category, error) {
	for _, c := range repository.categories {
		if c.ID == id {
			result := c
			return &result, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (repository *MemoryRepository) GetProduct(_ context.Context, id int) (*Product, error) {
	for _, p := range repository.products {
		if p.ID == id {
			result := p
			return &result, nil
		}
	}
	return nil, apperr.NotFound("Product")
}
