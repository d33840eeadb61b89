// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bhugol/internal/platform/database/schema"
	"github.com/taibuivan/bhugol/internal/platform/dberr"
)

// querier abstracts over *pgxpool.Pool and pgx.Tx so the same query code
// serves both direct reads and reads inside the identity-locked transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	q querier

	// pool is non-nil only for the root repository; a tx-scoped view created
	// by WithIdentityLock leaves it nil so nested locking degrades to a no-op
	// inside the already-held boundary.
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{q: pool, pool: pool}
}

// # Lookup

func (repository *PostgresRepository) FindByIdentity(context context.Context, identity Identity) ([]Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE (%s = $1 AND $1 <> '') OR (%s = $2 AND $2 <> '')
		ORDER BY %s ASC
	`,
		registrationColumns(), schema.GIRegistration.Table,
		schema.GIRegistration.AadharNumber, schema.GIRegistration.VoterID,
		schema.GIRegistration.CreatedAt,
	)

	rows, err := repository.q.Query(context, query, identity.AadharNumber, identity.VoterID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_by_identity")
	}
	defer rows.Close()

	registrations, err := scanRegistrations(rows)
	if err != nil {
		return nil, err
	}

	if err := repository.loadAssociations(context, registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		registrationColumns(), schema.GIRegistration.Table, schema.GIRegistration.ID)

	row := repository.q.QueryRow(context, query, id)
	registration, err := scanRegistration(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_registration_by_id")
	}

	list := []Registration{*registration}
	if err := repository.loadAssociations(context, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// # Insert

/*
Create persists a registration and all its associated rows.

Description: Executes the insertion as a single unit. When called inside
WithIdentityLock the surrounding transaction provides atomicity; when called
directly it opens its own transaction, so a failed junction insert can never
leave a partial registration behind.
*/
func (repository *PostgresRepository) Create(context context.Context, registration *Registration) error {
	if repository.pool == nil {
		// Already inside the identity-locked transaction.
		return repository.insert(context, repository.q, registration)
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := repository.insert(context, transaction, registration); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) insert(context context.Context, q querier, registration *Registration) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, $10, $11)
	`,
		schema.GIRegistration.Table,
		schema.GIRegistration.ID, schema.GIRegistration.AadharNumber, schema.GIRegistration.VoterID,
		schema.GIRegistration.Name, schema.GIRegistration.Address, schema.GIRegistration.Age,
		schema.GIRegistration.Gender, schema.GIRegistration.Phone,
		schema.GIRegistration.BaseRegistrationID, schema.GIRegistration.ReusedFiles,
		schema.GIRegistration.CreatedAt,
	)

	_, err := q.Exec(context, query,
		registration.ID,
		registration.Identity.AadharNumber,
		registration.Identity.VoterID,
		registration.PersonalInfo.Name,
		registration.PersonalInfo.Address,
		registration.PersonalInfo.Age,
		registration.PersonalInfo.Gender,
		registration.PersonalInfo.Phone,
		registration.BaseRegistrationID,
		registration.ReusedFiles,
		registration.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_registration")
	}

	for _, categoryID := range registration.CategoryIDs {
		_, err := q.Exec(context,
			fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
				schema.GIRegistrationCategory.Table,
				schema.GIRegistrationCategory.RegistrationID, schema.GIRegistrationCategory.CategoryID),
			registration.ID, categoryID,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_registration_category")
		}
	}

	if err := repository.insertProducts(context, q, registration.ID, registration.ExistingProductIDs, "existing"); err != nil {
		return err
	}
	if err := repository.insertProducts(context, q, registration.ID, registration.SelectedProductIDs, "selected"); err != nil {
		return err
	}

	for _, detail := range registration.ProductionDetails {
		_, err := q.Exec(context,
			fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))`,
				schema.GIProductionDetail.Table,
				schema.GIProductionDetail.RegistrationID, schema.GIProductionDetail.ProductID,
				schema.GIProductionDetail.Quantity, schema.GIProductionDetail.Unit,
				schema.GIProductionDetail.Area, schema.GIProductionDetail.YearsOfProduction,
				schema.GIProductionDetail.Turnover, schema.GIProductionDetail.TurnoverUnit,
				schema.GIProductionDetail.Notes),
			registration.ID, detail.ProductID, detail.Quantity, detail.Unit,
			detail.Area, detail.YearsOfProduction, detail.Turnover, detail.TurnoverUnit, detail.Notes,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_production_detail")
		}
	}

	_, err = q.Exec(context,
		fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))`,
			schema.GIDocumentBundle.Table,
			schema.GIDocumentBundle.RegistrationID, schema.GIDocumentBundle.AadharCard,
			schema.GIDocumentBundle.PanCard, schema.GIDocumentBundle.ProofOfProduction,
			schema.GIDocumentBundle.Signature, schema.GIDocumentBundle.Photo),
		registration.ID,
		registration.Documents.AadharCard,
		registration.Documents.PanCard,
		registration.Documents.ProofOfProduction,
		registration.Documents.Signature,
		registration.Documents.Photo,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_document_bundle")
	}

	return nil
}

func (repository *PostgresRepository) insertProducts(context context.Context, q querier, registrationID string, productIDs []int, kind string) error {
	for _, productID := range productIDs {
		_, err := q.Exec(context,
			fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
				schema.GIRegistrationProduct.Table,
				schema.GIRegistrationProduct.RegistrationID, schema.GIRegistrationProduct.ProductID,
				schema.GIRegistrationProduct.Kind),
			registrationID, productID, kind,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_registration_product")
		}
	}
	return nil
}

// # Serialization Boundary

/*
WithIdentityLock serializes commits per identity using transaction-scoped
Postgres advisory locks.

Description: Locks are taken on every non-empty natural-key field
(pg_advisory_xact_lock over hashtext of the field key), in the deterministic
order produced by [Identity.LockKeys]. Any concurrent commit sharing either
field blocks until this transaction finishes, so the check-then-insert
sequence inside fn observes a stable registry state. Locks release
automatically at commit or rollback.
*/
func (repository *PostgresRepository) WithIdentityLock(context context.Context, identity Identity, fn func(context context.Context, repository Repository) error) error {
	if repository.pool == nil {
		// Nested call inside an already-locked transaction.
		return fn(context, repository)
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin identity-lock transaction: %w", err)
	}
	defer transaction.Rollback(context)

	for _, key := range identity.LockKeys() {
		if _, err := transaction.Exec(context, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return dberr.Wrap(err, "acquire_identity_lock")
		}
	}

	scoped := &PostgresRepository{q: transaction}
	if err := fn(context, scoped); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit identity-lock transaction: %w", err)
	}
	return nil
}

// # Row Mapping

func registrationColumns() string {
	t := schema.GIRegistration
	return fmt.Sprintf("%s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s, %s, %s, COALESCE(%s::text, ''), %s, %s",
		t.ID, t.AadharNumber, t.VoterID, t.Name, t.Address, t.Age, t.Gender, t.Phone,
		t.BaseRegistrationID, t.ReusedFiles, t.CreatedAt)
}

func scanRegistration(row pgx.Row) (*Registration, error) {
	r := &Registration{}
	err := row.Scan(
		&r.ID,
		&r.Identity.AadharNumber,
		&r.Identity.VoterID,
		&r.PersonalInfo.Name,
		&r.PersonalInfo.Address,
		&r.PersonalInfo.Age,
		&r.PersonalInfo.Gender,
		&r.PersonalInfo.Phone,
		&r.BaseRegistrationID,
		&r.ReusedFiles,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanRegistrations(rows pgx.Rows) ([]Registration, error) {
	registrations := make([]Registration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_registration")
		}
		registrations = append(registrations, *registration)
	}
	return registrations, rows.Err()
}

// loadAssociations populates categories, products, production details, and
// the document bundle for every registration in the slice with one query per
// table.
func (repository *PostgresRepository) loadAssociations(context context.Context, registrations []Registration) error {
	if len(registrations) == 0 {
		return nil
	}

	ids := make([]string, len(registrations))
	index := make(map[string]*Registration, len(registrations))
	for i := range registrations {
		ids[i] = registrations[i].ID
		index[registrations[i].ID] = &registrations[i]
		registrations[i].CategoryIDs = make([]int, 0)
		registrations[i].ExistingProductIDs = make([]int, 0)
		registrations[i].SelectedProductIDs = make([]int, 0)
		registrations[i].ProductionDetails = make([]ProductionDetail, 0)
	}

	// Categories
	categoryQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		schema.GIRegistrationCategory.RegistrationID, schema.GIRegistrationCategory.CategoryID,
		schema.GIRegistrationCategory.Table, schema.GIRegistrationCategory.RegistrationID,
		schema.GIRegistrationCategory.CategoryID)

	categoryRows, err := repository.q.Query(context, categoryQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_registration_categories")
	}
	defer categoryRows.Close()
	for categoryRows.Next() {
		var registrationID string
		var categoryID int
		if err := categoryRows.Scan(&registrationID, &categoryID); err != nil {
			return dberr.Wrap(err, "scan_registration_category")
		}
		if registration, ok := index[registrationID]; ok {
			registration.CategoryIDs = append(registration.CategoryIDs, categoryID)
		}
	}
	categoryRows.Close()

	// Products (existing + selected)
	productQuery := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		schema.GIRegistrationProduct.RegistrationID, schema.GIRegistrationProduct.ProductID,
		schema.GIRegistrationProduct.Kind, schema.GIRegistrationProduct.Table,
		schema.GIRegistrationProduct.RegistrationID, schema.GIRegistrationProduct.ProductID)

	productRows, err := repository.q.Query(context, productQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_registration_products")
	}
	defer productRows.Close()
	for productRows.Next() {
		var registrationID, kind string
		var productID int
		if err := productRows.Scan(&registrationID, &productID, &kind); err != nil {
			return dberr.Wrap(err, "scan_registration_product")
		}
		registration, ok := index[registrationID]
		if !ok {
			continue
		}
		if kind == "existing" {
			registration.ExistingProductIDs = append(registration.ExistingProductIDs, productID)
		} else {
			registration.SelectedProductIDs = append(registration.SelectedProductIDs, productID)
		}
	}
	productRows.Close()

	// Production details
	detailQuery := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s, '')
		FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		schema.GIProductionDetail.RegistrationID, schema.GIProductionDetail.ProductID,
		schema.GIProductionDetail.Quantity, schema.GIProductionDetail.Unit,
		schema.GIProductionDetail.Area, schema.GIProductionDetail.YearsOfProduction,
		schema.GIProductionDetail.Turnover, schema.GIProductionDetail.TurnoverUnit,
		schema.GIProductionDetail.Notes, schema.GIProductionDetail.Table,
		schema.GIProductionDetail.RegistrationID, schema.GIProductionDetail.ProductID)

	detailRows, err := repository.q.Query(context, detailQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_production_details")
	}
	defer detailRows.Close()
	for detailRows.Next() {
		var registrationID string
		detail := ProductionDetail{}
		if err := detailRows.Scan(&registrationID, &detail.ProductID, &detail.Quantity, &detail.Unit,
			&detail.Area, &detail.YearsOfProduction, &detail.Turnover, &detail.TurnoverUnit, &detail.Notes); err != nil {
			return dberr.Wrap(err, "scan_production_detail")
		}
		if registration, ok := index[registrationID]; ok {
			registration.ProductionDetails = append(registration.ProductionDetails, detail)
		}
	}
	detailRows.Close()

	// Document bundle
	bundleQuery := fmt.Sprintf(`SELECT %s, COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, '')
		FROM %s WHERE %s = ANY($1)`,
		schema.GIDocumentBundle.RegistrationID, schema.GIDocumentBundle.AadharCard,
		schema.GIDocumentBundle.PanCard, schema.GIDocumentBundle.ProofOfProduction,
		schema.GIDocumentBundle.Signature, schema.GIDocumentBundle.Photo,
		schema.GIDocumentBundle.Table, schema.GIDocumentBundle.RegistrationID)

	bundleRows, err := repository.q.Query(context, bundleQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_document_bundles")
	}
	defer bundleRows.Close()
	for bundleRows.Next() {
		var registrationID string
		bundle := DocumentBundleRef{}
		if err := bundleRows.Scan(&registrationID, &bundle.AadharCard, &bundle.PanCard,
			&bundle.ProofOfProduction, &bundle.Signature, &bundle.Photo); err != nil {
			return dberr.Wrap(err, "scan_document_bundle")
		}
		if registration, ok := index[registrationID]; ok {
			registration.Documents = bundle
		}
	}

	return bundleRows.Err()
}
