package registry

import "context"

// Repository persists and looks up committed registrations.
type Repository interface {
	// FindByIdentity returns all prior registrations matching the identity
	// (OR semantics across the two natural-key fields), ordered by CreatedAt.
	FindByIdentity(context context.Context, identity Identity) ([]Registration, error)

	// GetByID resolves a single registration or apperr.NotFound.
	GetByID(context context.Context, id string) (*Registration, error)

	// Create inserts a fully-populated registration atomically.
	Create(context context.Context, registration *Registration) error

	// WithIdentityLock runs fn while holding an exclusive per-identity
	// serialization boundary. Reads and writes performed through the
	// Repository passed to fn observe committed state and commit together
	// with fn's success.
	//
	// This is the race guard for check-then-insert commits: of two
	// concurrent conflicting submissions for the same identity, the second
	// observes the first one's rows and can reject cleanly.
	WithIdentityLock(context context.Context, identity Identity, fn func(context context.Context, repository Repository) error) error
}
