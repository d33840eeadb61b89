// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package enrollment implements the registration builder: the only component
allowed to commit registrations.

Both commit paths are check-then-insert and therefore run inside the
registry's per-identity serialization boundary:

  - CreateNew re-checks that the identity is still unregistered.
  - CreateAdditional recomputes catalog availability and re-validates the
    requested ids against it.

Verification results are advisory; whatever a collector saw during verify()
is revalidated here before anything is persisted.
*/
package enrollment

import (
	"context"
	stdcontext "context"
	"log/slog"
	"time"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/docstore"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	"github.com/taibuivan/bhugol/internal/platform/validate"
	"github.com/taibuivan/bhugol/pkg/slice"
	"github.com/taibuivan/bhugol/pkg/uuid"
)

// Service commits new and additional registrations.
type Service struct {
	repo      registry.Repository
	catalog   catalog.Repository
	documents docstore.Storage
	logger    *slog.Logger

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewService constructs the enrollment [Service].
func NewService(repo registry.Repository, catalogRepo catalog.Repository, documents docstore.Storage, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalogRepo,
		documents: documents,
		logger:    logger,
		now:       time.Now,
	}
}

// # Inputs

// NewRegistrationInput carries a complete first-time submission.
type NewRegistrationInput struct {
	AadharNumber string
	VoterID      string
	PersonalInfo registry.PersonalInfo

	CategoryIDs        []int
	ExistingProductIDs []int
	SelectedProductIDs []int
	ProductionDetails  []registry.ProductionDetail

	// Documents maps slot name → uploaded file bytes.
	Documents map[string][]byte
}

// AdditionalRegistrationInput carries a follow-up submission that claims
// previously unclaimed catalog entries and reuses the base documents.
type AdditionalRegistrationInput struct {
	BaseRegistrationID string
	AadharNumber       string
	VoterID            string

	CategoryIDs        []int
	ExistingProductIDs []int
	SelectedProductIDs []int
	ProductionDetails  []registry.ProductionDetail
}

// # New Registration

/*
CreateNew validates and commits a first-time registration.

Description: After input validation, the commit re-checks the identity
registry inside the per-identity lock. Any prior registration — even one
committed after the collector's verify() call — rejects the submission with
DUPLICATE_IDENTITY; the collector must switch to the additional path.
Document bytes are stored through the external storage collaborator only
after the duplicate check passes.

Parameters:
  - context: context.Context
  - input: NewRegistrationInput

Returns:
  - *registry.Registration: The committed registration
  - error: VALIDATION_ERROR, DUPLICATE_IDENTITY, or storage errors
*/
func (service *Service) CreateNew(context context.Context, input NewRegistrationInput) (*registry.Registration, error) {
	identity, err := registry.NewIdentity(input.AadharNumber, input.VoterID)
	if err != nil {
		return nil, err
	}

	if err := validatePersonalInfo(input.PersonalInfo); err != nil {
		return nil, err
	}
	if err := validateSelection(input.CategoryIDs, input.ExistingProductIDs, input.ProductionDetails); err != nil {
		return nil, err
	}
	if err := validateMandatoryDocuments(input.Documents); err != nil {
		return nil, err
	}

	registrationID := uuid.New()
	var committed *registry.Registration

	err = service.repo.WithIdentityLock(context, identity, func(context stdcontext.Context, repo registry.Repository) error {
		prior, err := repo.FindByIdentity(context, identity)
		if err != nil {
			return err
		}
		if len(prior) > 0 {
			return apperr.DuplicateIdentity()
		}

		bundle, err := service.storeDocuments(context, registrationID, input.Documents)
		if err != nil {
			return err
		}

		registration := &registry.Registration{
			ID:                 registrationID,
			Identity:           identity,
			PersonalInfo:       input.PersonalInfo,
			CategoryIDs:        input.CategoryIDs,
			ExistingProductIDs: input.ExistingProductIDs,
			SelectedProductIDs: input.SelectedProductIDs,
			ProductionDetails:  input.ProductionDetails,
			Documents:          bundle,
			CreatedAt:          service.now().UTC(),
		}
		if err := repo.Create(context, registration); err != nil {
			return err
		}
		committed = registration
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "registration_committed",
		slog.String("registration_id", committed.ID),
		slog.Int("categories", len(committed.CategoryIDs)),
		slog.Int("products", len(committed.ProductIDs())),
	)
	return committed, nil
}

// # Additional Registration

/*
CreateAdditional validates and commits a follow-up registration for an
already-registered identity.

Description: The base registration must exist and belong to the supplied
identity (cross-identity spoofing is answered with NOT_FOUND, revealing
nothing). Inside the per-identity lock, catalog availability is recomputed
from committed state; any requested category or product outside the fresh
availability fails with CATALOG_CONFLICT naming the offending ids. This is
the guard that makes two overlapping concurrent submissions resolve to
exactly one winner. On success the base bundle's references are copied — no
bytes move.

Parameters:
  - context: context.Context
  - input: AdditionalRegistrationInput

Returns:
  - *registry.Registration: The committed additional registration (ReusedFiles=true)
  - error: NOT_FOUND, VALIDATION_ERROR, CATALOG_CONFLICT, or storage errors
*/
func (service *Service) CreateAdditional(context context.Context, input AdditionalRegistrationInput) (*registry.Registration, error) {
	identity, err := registry.NewIdentity(input.AadharNumber, input.VoterID)
	if err != nil {
		return nil, err
	}

	base, err := service.repo.GetByID(context, input.BaseRegistrationID)
	if err != nil {
		return nil, err
	}
	if !base.Identity.Matches(identity) {
		// Do not disclose that the registration exists for someone else.
		return nil, apperr.NotFound("Registration")
	}

	if err := validateSelection(input.CategoryIDs, input.ExistingProductIDs, input.ProductionDetails); err != nil {
		return nil, err
	}

	registrationID := uuid.New()
	var committed *registry.Registration

	err = service.repo.WithIdentityLock(context, identity, func(context stdcontext.Context, repo registry.Repository) error {
		prior, err := repo.FindByIdentity(context, identity)
		if err != nil {
			return err
		}

		availability, err := registry.ComputeAvailability(context, service.catalog, prior)
		if err != nil {
			return err
		}

		if conflicting := outsideSet(input.CategoryIDs, availability.CategoryIDSet()); len(conflicting) > 0 {
			return apperr.CatalogConflict("category", conflicting)
		}
		requestedProducts := append(append([]int{}, input.ExistingProductIDs...), input.SelectedProductIDs...)
		if conflicting := outsideSet(requestedProducts, availability.ProductIDSet()); len(conflicting) > 0 {
			return apperr.CatalogConflict("product", conflicting)
		}

		registration := &registry.Registration{
			ID:                 registrationID,
			Identity:           identity,
			PersonalInfo:       base.PersonalInfo,
			CategoryIDs:        input.CategoryIDs,
			ExistingProductIDs: input.ExistingProductIDs,
			SelectedProductIDs: input.SelectedProductIDs,
			ProductionDetails:  input.ProductionDetails,

			// Reference copy of whatever slots the base bundle holds;
			// missing optional slots are not backfilled.
			Documents: base.Documents,

			BaseRegistrationID: base.ID,
			ReusedFiles:        true,
			CreatedAt:          service.now().UTC(),
		}
		if err := repo.Create(context, registration); err != nil {
			return err
		}
		committed = registration
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "additional_registration_committed",
		slog.String("registration_id", committed.ID),
		slog.String("base_registration_id", committed.BaseRegistrationID),
	)
	return committed, nil
}

// # Validation Helpers

func validatePersonalInfo(info registry.PersonalInfo) error {
	v := &validate.Validator{}
	v.Required("name", info.Name).MaxLen("name", info.Name, 200)
	v.Required("address", info.Address)
	v.Range("age", info.Age, 18, 120)
	v.Required("gender", info.Gender)
	v.Phone("phone", info.Phone)
	return v.Err()
}

// validateSelection enforces the committed-registration invariants:
// at least one category, at least one existing product, and a complete
// production detail for every existing product.
func validateSelection(categoryIDs, existingProductIDs []int, details []registry.ProductionDetail) error {
	v := &validate.Validator{}
	v.Custom("productCategoryIds", len(categoryIDs) == 0, "At least one category is required")
	v.Custom("existingProducts", len(existingProductIDs) == 0, "At least one existing product is required")
	if err := v.Err(); err != nil {
		return err
	}

	detailIndex := make(map[int]registry.ProductionDetail, len(details))
	for _, detail := range details {
		detailIndex[detail.ProductID] = detail
	}
	for _, productID := range existingProductIDs {
		detail, ok := detailIndex[productID]
		if !ok || !detail.IsComplete() {
			return validate.RequiredError("productionDetails",
				"Every existing product needs complete production details (quantity, unit, area, years, turnover)")
		}
	}
	return nil
}

func validateMandatoryDocuments(documents map[string][]byte) error {
	v := &validate.Validator{}
	for _, slot := range []string{constants.SlotAadharCard, constants.SlotSignature, constants.SlotPhoto} {
		v.Custom(slot, len(documents[slot]) == 0, "This document is required")
	}
	return v.Err()
}

// storeDocuments writes every provided slot through the storage collaborator
// and assembles the bundle of returned references.
func (service *Service) storeDocuments(context context.Context, registrationID string, documents map[string][]byte) (registry.DocumentBundleRef, error) {
	bundle := registry.DocumentBundleRef{}

	targets := map[string]*string{
		constants.SlotAadharCard:        &bundle.AadharCard,
		constants.SlotPanCard:           &bundle.PanCard,
		constants.SlotProofOfProduction: &bundle.ProofOfProduction,
		constants.SlotSignature:         &bundle.Signature,
		constants.SlotPhoto:             &bundle.Photo,
	}

	for slot, target := range targets {
		data := documents[slot]
		if len(data) == 0 {
			continue
		}
		reference, err := service.documents.Store(context, registrationID, slot, data)
		if err != nil {
			return registry.DocumentBundleRef{}, err
		}
		*target = reference
	}
	return bundle, nil
}

// outsideSet returns the requested ids missing from the allowed set,
// preserving request order.
func outsideSet(requested []int, allowed map[int]struct{}) []int {
	return slice.Filter(requested, func(id int) bool {
		_, ok := allowed[id]
		return !ok
	})
}
