package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bhugol/internal/platform/database/schema"
	"github.com/taibuivan/bhugol/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context) ([]Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Description, schema.CatalogCategory.SortOrder,
		schema.CatalogCategory.Table, schema.CatalogCategory.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		c := Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (repository *PostgresRepository) ListProducts(context context.Context) ([]Product, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogProduct.ID, schema.CatalogProduct.CategoryID, schema.CatalogProduct.Name,
		schema.CatalogProduct.Slug, schema.CatalogProduct.Description,
		schema.CatalogProduct.Table, schema.CatalogProduct.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_products")
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (repository *PostgresRepository) ListProductsByCategories(context context.Context, categoryIDs []int) ([]Product, error) {
	if len(categoryIDs) == 0 {
		return []Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		schema.CatalogProduct.ID, schema.CatalogProduct.CategoryID, schema.CatalogProduct.Name,
		schema.CatalogProduct.Slug, schema.CatalogProduct.Description,
		schema.CatalogProduct.Table, schema.CatalogProduct.CategoryID, schema.CatalogProduct.ID)

	rows, err := repository.db.Query(context, query, categoryIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_products_by_categories")
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (repository *PostgresRepository) GetCategory(context context.Context, id int) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Description, schema.CatalogCategory.SortOrder,
		schema.CatalogCategory.Table, schema.CatalogCategory.ID)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}

	return c, nil
}

func (repository *PostgresRepository) GetProduct(context context.Context, id int) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogProduct.ID, schema.CatalogProduct.CategoryID, schema.CatalogProduct.Name,
		schema.CatalogProduct.Slug, schema.CatalogProduct.Description,
		schema.CatalogProduct.Table, schema.CatalogProduct.ID)

	p := &Product{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_product")
	}

	return p, nil
}

// scanProducts drains a product result set into a slice.
type productRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows productRows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p := Product{}
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
