package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

// MemoryRepository is an in-memory registration store used by unit tests.
//
// # Concurrency
//
// It mirrors the Postgres serialization semantics: WithIdentityLock holds a
// mutex per natural-key field, so concurrent commits for the same identity
// run one at a time while unrelated identities proceed in parallel.
type MemoryRepository struct {
	mu            sync.RWMutex
	registrations map[string]Registration

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		registrations: make(map[string]Registration),
		locks:         make(map[string]*sync.Mutex),
	}
}

func (repository *MemoryRepository) FindByIdentity(_ context.Context, identity Identity) ([]Registration, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]Registration, 0)
	for _, registration := range repository.registrations {
		if registration.Identity.Matches(identity) {
			matched = append(matched, registration)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (repository *MemoryRepository) GetByID(_ context.Context, id string) (*Registration, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	registration, ok := repository.registrations[id]
	if !ok {
		return nil, apperr.NotFound("Registration")
	}
	result := registration
	return &result, nil
}

func (repository *MemoryRepository) Create(_ context.Context, registration *Registration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.registrations[registration.ID]; exists {
		return apperr.Conflict("A record with the same unique value already exists")
	}
	repository.registrations[registration.ID] = *registration
	return nil
}

// WithIdentityLock serializes fn per identity via field-keyed mutexes,
// acquired in the deterministic [Identity.LockKeys] order.
func (repository *MemoryRepository) WithIdentityLock(context context.Context, identity Identity, fn func(context context.Context, repository Repository) error) error {
	keys := identity.LockKeys()
	for _, key := range keys {
		lock := repository.lockFor(key)
		lock.Lock()
		defer lock.Unlock()
	}
	return fn(context, repository)
}

func (repository *MemoryRepository) lockFor(key string) *sync.Mutex {
	repository.lockMu.Lock()
	defer repository.lockMu.Unlock()

	lock, ok := repository.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		repository.locks[key] = lock
	}
	return lock
}
