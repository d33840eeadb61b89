// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package verification implements the read-only identity status check that
drives the intake wizard's branch decision.

It orchestrates the identity registry and the catalog availability diff into
one advisory call. The result is a snapshot: nothing is locked or reserved,
and the registration builder re-runs the same checks at commit time.
*/
package verification

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/pkg/pointer"
)

// RegistrationSummary is the per-prior-registration block in a verify result.
type RegistrationSummary struct {
	ID                 string    `json:"id"`
	CategoryIDs        []int     `json:"categoryIds"`
	CategoryNames      []string  `json:"categoryNames"`
	SelectedProductIDs []int     `json:"selectedProductIds"`
	ExistingProductIDs []int     `json:"existingProductIds"`
	RegistrationDate   time.Time `json:"registrationDate"`

	// DocumentSlots names the document slots present on this registration's
	// bundle. The intake wizard uses the first registration's slots to mark
	// inherited documents as pre-satisfied in additional mode.
	DocumentSlots []string `json:"documentSlots"`
}

// Result is the advisory verification snapshot for one identity.
type Result struct {
	IsRegistered bool `json:"isRegistered"`

	// RegistrationID, Name, and RegistrationDate describe the latest prior
	// registration when one exists.
	RegistrationID   string     `json:"registrationId,omitempty"`
	Name             string     `json:"name,omitempty"`
	RegistrationDate *time.Time `json:"registrationDate,omitempty"`

	ExistingRegistrations []RegistrationSummary `json:"existingRegistrations,omitempty"`

	// AvailableCategories/AvailableProducts are the unclaimed catalog
	// remainder. Both may be empty for a fully registered identity; that is
	// a valid result, not an error — presentation is the caller's concern.
	AvailableCategories []catalog.Category `json:"availableCategories"`
	AvailableProducts   []catalog.Product  `json:"availableProducts"`
}

// Service performs the verification orchestration.
type Service struct {
	registry *registry.Service
	catalog  catalog.Repository
	logger   *slog.Logger
}

// NewService constructs a verification [Service].
func NewService(registryService *registry.Service, catalogRepo catalog.Repository, logger *slog.Logger) *Service {
	return &Service{
		registry: registryService,
		catalog:  catalogRepo,
		logger:   logger,
	}
}

/*
Verify resolves the registration status and catalog availability for an identity.

Description: Validates and normalizes the identity, looks up prior
registrations, and computes the availability diff fresh. Advisory only —
concurrent submissions may invalidate the snapshot at any time, which is why
the registration builder re-checks under its per-identity lock.

Parameters:
  - context: context.Context
  - identity: registry.Identity (construct via registry.NewIdentity)

Returns:
  - *Result: Status snapshot with prior registrations and availability
  - error: VALIDATION_ERROR for malformed/ambiguous identities, storage errors
*/
func (service *Service) Verify(context context.Context, identity registry.Identity) (*Result, error) {
	availability, prior, err := service.registry.Availability(context, identity)
	if err != nil {
		return nil, err
	}

	result := &Result{
		IsRegistered:        len(prior) > 0,
		AvailableCategories: availability.Categories,
		AvailableProducts:   availability.Products,
	}

	if len(prior) == 0 {
		return result, nil
	}

	categoryNames, err := service.categoryNameIndex(context)
	if err != nil {
		return nil, err
	}

	summaries := make([]RegistrationSummary, 0, len(prior))
	for _, registration := range prior {
		names := make([]string, 0, len(registration.CategoryIDs))
		for _, id := range registration.CategoryIDs {
			if name, ok := categoryNames[id]; ok {
				names = append(names, name)
			}
		}
		slots := make([]string, 0, 5)
		for slot := range registration.Documents.Slots() {
			slots = append(slots, slot)
		}
		sort.Strings(slots)

		summaries = append(summaries, RegistrationSummary{
			ID:                 registration.ID,
			CategoryIDs:        registration.CategoryIDs,
			CategoryNames:      names,
			SelectedProductIDs: registration.SelectedProductIDs,
			ExistingProductIDs: registration.ExistingProductIDs,
			RegistrationDate:   registration.CreatedAt,
			DocumentSlots:      slots,
		})
	}
	result.ExistingRegistrations = summaries

	latest := prior[len(prior)-1]
	result.RegistrationID = latest.ID
	result.Name = latest.PersonalInfo.Name
	result.RegistrationDate = pointer.To(latest.CreatedAt)

	service.logger.InfoContext(context, "identity_verified",
		slog.Bool("is_registered", result.IsRegistered),
		slog.Int("prior_registrations", len(prior)),
		slog.Int("available_categories", len(availability.Categories)),
	)

	return result, nil
}

// categoryNameIndex builds an id → name lookup from the catalog.
func (service *Service) categoryNameIndex(context context.Context) (map[int]string, error) {
	categories, err := service.catalog.ListCategories(context)
	if err != nil {
		return nil, err
	}
	index := make(map[int]string, len(categories))
	for _, category := range categories {
		index[category.ID] = category.Name
	}
	return index, nil
}
