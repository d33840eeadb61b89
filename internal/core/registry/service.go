package registry

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// Service is the Identity Registry: it resolves prior registrations for a
// natural-key identity and computes the catalog availability diff.
type Service struct {
	repo    Repository
	catalog catalog.Repository
	logger  *slog.Logger
}

// NewService constructs the registry [Service].
func NewService(repo Repository, catalogRepo catalog.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalogRepo,
		logger:  logger,
	}
}

/*
FindByIdentity validates the identity and returns all matching prior
registrations ordered by creation time.

Description: Format validation happens before any lookup; malformed input
never reaches storage. When both natural-key fields are supplied and they
resolve to two disjoint sets of prior registrations, the lookup is rejected
as ambiguous rather than silently preferring one field.

Parameters:
  - context: context.Context
  - identity: Identity (already normalized via NewIdentity)

Returns:
  - []Registration: Prior registrations, oldest first
  - error: VALIDATION_ERROR for malformed or ambiguous identities
*/
func (service *Service) FindByIdentity(context context.Context, identity Identity) ([]Registration, error) {
	if identity.IsZero() {
		return nil, validate.RequiredError("identity", "At least one of aadharNumber or voterId is required")
	}

	prior, err := service.repo.FindByIdentity(context, identity)
	if err != nil {
		return nil, err
	}

	if err := rejectAmbiguous(identity, prior); err != nil {
		return nil, err
	}

	return prior, nil
}

// Availability recomputes the unclaimed catalog remainder for the identity.
// Never cached; each call reads the catalog and the registry fresh.
func (service *Service) Availability(context context.Context, identity Identity) (*Availability, []Registration, error) {
	prior, err := service.FindByIdentity(context, identity)
	if err != nil {
		return nil, nil, err
	}

	availability, err := ComputeAvailability(context, service.catalog, prior)
	if err != nil {
		return nil, nil, err
	}
	return availability, prior, nil
}

// ComputeAvailability reads the full catalog and subtracts the claims held
// by the given prior registrations.
//
// It is package-level so the registration builder can re-run the exact same
// computation inside its per-identity commit boundary.
func ComputeAvailability(context context.Context, catalogRepo catalog.Repository, prior []Registration) (*Availability, error) {
	categories, err := catalogRepo.ListCategories(context)
	if err != nil {
		return nil, err
	}
	products, err := catalogRepo.ListProducts(context)
	if err != nil {
		return nil, err
	}

	return &Availability{
		Categories: AvailableCategories(categories, prior),
		Products:   AvailableProducts(products, prior),
	}, nil
}

// rejectAmbiguous fails a dual-field lookup whose Aadhar matches and Voter ID
// matches point at two different people.
//
// Two disjoint, non-empty match sets mean the supplied pair does not describe
// one applicant; committing against either would risk cross-linking records.
func rejectAmbiguous(query Identity, prior []Registration) error {
	if query.AadharNumber == "" || query.VoterID == "" {
		return nil
	}

	aadharOnly, voterOnly, both := 0, 0, 0
	for _, registration := range prior {
		matchesAadhar := registration.Identity.AadharNumber == query.AadharNumber
		matchesVoter := registration.Identity.VoterID == query.VoterID
		switch {
		case matchesAadhar && matchesVoter:
			both++
		case matchesAadhar:
			aadharOnly++
		case matchesVoter:
			voterOnly++
		}
	}

	if both == 0 && aadharOnly > 0 && voterOnly > 0 {
		return validate.RequiredError("identity",
			"aadharNumber and voterId belong to two different registered identities")
	}
	return nil
}
