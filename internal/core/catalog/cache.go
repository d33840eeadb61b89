// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bhugol/internal/platform/constants"
)

// CachedRepository decorates a [Repository] with a Redis read-through cache
// for the two full-catalog listings.
//
// # Why only the listings?
//
// Availability diffs are recomputed fresh on every verification and commit,
// but the catalog itself changes rarely (program-office releases). Caching
// the raw listings keeps verify() cheap without ever caching a diff result.
// Point lookups and category-filtered listings are derived from the cached
// product list, so a single pair of keys covers the whole read surface.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	logger *slog.Logger
}

// NewCachedRepository wraps inner with a Redis cache.
func NewCachedRepository(inner Repository, client *redis.Client, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, client: client, logger: logger}
}

func (repository *CachedRepository) ListCategories(context context.Context) ([]Category, error) {
	cached, err := repository.client.Get(context, constants.RedisPrefixCatalogCategory).Bytes()
	if err == nil {
		var categories []Category
		if jsonErr := json.Unmarshal(cached, &categories); jsonErr == nil {
			return categories, nil
		}
		// Corrupt cache entries fall through to the source of truth.
	}

	categories, err := repository.inner.ListCategories(context)
	if err != nil {
		return nil, err
	}

	repository.store(context, constants.RedisPrefixCatalogCategory, categories)
	return categories, nil
}

func (repository *CachedRepository) ListProducts(context context.Context) ([]Product, error) {
	cached, err := repository.client.Get(context, constants.RedisPrefixCatalogProduct).Bytes()
	if err == nil {
		var products []Product
		if jsonErr := json.Unmarshal(cached, &products); jsonErr == nil {
			return products, nil
		}
	}

	products, err := repository.inner.ListProducts(context)
	if err != nil {
		return nil, err
	}

	repository.store(context, constants.RedisPrefixCatalogProduct, products)
	return products, nil
}

func (repository *CachedRepository) ListProductsByCategories(context context.Context, categoryIDs []int) ([]Product, error) {
	products, err := repository.ListProducts(context)
	if err != nil {
		return nil, err
	}

	wanted := make(map[int]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}

	filtered := make([]Product, 0)
	for _, p := range products {
		if _, ok := wanted[p.CategoryID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (repository *CachedRepository) GetCategory(context context.Context, id int) (*Category, error) {
	categories, err := repository.ListCategories(context)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			result := c
			return &result, nil
		}
	}
	return repository.inner.GetCategory(context, id)
}

func (repository *CachedRepository) GetProduct(context context.Context, id int) (*Product, error) {
	products, err := repository.ListProducts(context)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			result := p
			return &result, nil
		}
	}
	return repository.inner.GetProduct(context, id)
}

// store writes a cache entry with the catalog TTL. Cache write failures are
// logged and ignored — the source of truth already answered.
func (repository *CachedRepository) store(context context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := repository.client.Set(context, key, payload, constants.CatalogCacheTTL).Err(); err != nil {
		repository.logger.Warn("catalog_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
