// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/enrollment"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

// memoryStorage is a write-once in-memory document store for tests.
type memoryStorage struct {
	mu     sync.Mutex
	stored map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{stored: make(map[string][]byte)}
}

func (storage *memoryStorage) Store(_ context.Context, registrationID, slot string, data []byte) (string, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	reference := registrationID + "/" + slot + ".jpg"
	if _, exists := storage.stored[reference]; exists {
		return "", fmt.Errorf("docstore: reference %s already exists", reference)
	}
	storage.stored[reference] = data
	return reference, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() catalog.Repository {
	return catalog.NewMemoryRepository(
		[]catalog.Category{
			{ID: 1, Name: "Handloom"},
			{ID: 2, Name: "Agriculture"},
			{ID: 3, Name: "Handicraft"},
		},
		[]catalog.Product{
			{ID: 10, CategoryID: 1, Name: "Silk Saree"},
			{ID: 11, CategoryID: 1, Name: "Cotton Weave"},
			{ID: 20, CategoryID: 2, Name: "Black Rice"},
			{ID: 30, CategoryID: 3, Name: "Bamboo Craft"},
		},
	)
}

func completeDetail(productID int) registry.ProductionDetail {
	return registry.ProductionDetail{
		ProductID:         productID,
		Quantity:          120,
		Unit:              "kg",
		Area:              2.5,
		YearsOfProduction: 6,
		Turnover:          80000,
		TurnoverUnit:      "INR",
	}
}

func mandatoryDocuments() map[string][]byte {
	return map[string][]byte{
		"aadharCard": []byte("aadhar-bytes"),
		"signature":  []byte("signature-bytes"),
		"photo":      []byte("photo-bytes"),
	}
}

func validNewInput(aadharNumber string) enrollment.NewRegistrationInput {
	return enrollment.NewRegistrationInput{
		AadharNumber: aadharNumber,
		PersonalInfo: registry.PersonalInfo{
			Name:    "Asha Devi",
			Address: "Village Rampur, District Sitapur",
			Age:     42,
			Gender:  "female",
			Phone:   "9876543210",
		},
		CategoryIDs:        []int{1},
		ExistingProductIDs: []int{10},
		ProductionDetails:  []registry.ProductionDetail{completeDetail(10)},
		Documents:          mandatoryDocuments(),
	}
}

func newBuilder(repo registry.Repository) *enrollment.Service {
	return enrollment.NewService(repo, testCatalog(), newMemoryStorage(), testLogger())
}

/*
TestCreateNew_Succeeds verifies the happy path: the registration is
committed with stored document references.
*/
func TestCreateNew_Succeeds(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()

	registration, err := newBuilder(repo).CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	assert.NotEmpty(t, registration.ID)
	assert.Equal(t, "123456789012", registration.Identity.AadharNumber)
	assert.True(t, registration.Documents.HasMandatory())
	assert.False(t, registration.ReusedFiles)

	stored, err := repo.GetByID(ctx, registration.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stored.CategoryIDs)
}

/*
TestCreateNew_DuplicateIdentity verifies that a second first-time
registration for the same identity always fails with DUPLICATE_IDENTITY.
*/
func TestCreateNew_DuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()
	builder := newBuilder(repo)

	_, err := builder.CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	// Second attempt claims different catalog entries but the same identity.
	second := validNewInput("123456789012")
	second.CategoryIDs = []int{2}
	second.ExistingProductIDs = []int{20}
	second.ProductionDetails = []registry.ProductionDetail{completeDetail(20)}

	_, err = builder.CreateNew(ctx, second)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "DUPLICATE_IDENTITY"))
}

/*
TestCreateNew_Validation verifies the preconditions: categories, products,
complete details, and mandatory documents.
*/
func TestCreateNew_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_categories", func(t *testing.T) {
		input := validNewInput("123456789012")
		input.CategoryIDs = nil
		_, err := newBuilder(registry.NewMemoryRepository()).CreateNew(ctx, input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("missing_existing_products", func(t *testing.T) {
		input := validNewInput("123456789012")
		input.ExistingProductIDs = nil
		_, err := newBuilder(registry.NewMemoryRepository()).CreateNew(ctx, input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("incomplete_production_detail", func(t *testing.T) {
		input := validNewInput("123456789012")
		input.ProductionDetails = []registry.ProductionDetail{{ProductID: 10, Quantity: 5}}
		_, err := newBuilder(registry.NewMemoryRepository()).CreateNew(ctx, input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("missing_mandatory_document", func(t *testing.T) {
		input := validNewInput("123456789012")
		delete(input.Documents, "signature")
		_, err := newBuilder(registry.NewMemoryRepository()).CreateNew(ctx, input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("malformed_identity", func(t *testing.T) {
		input := validNewInput("12345")
		_, err := newBuilder(registry.NewMemoryRepository()).CreateNew(ctx, input)
		assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	})
}

/*
TestCreateAdditional_ReusesDocuments verifies the follow-up path: the base
bundle is copied by reference, the base link recorded, and no optional slot
is backfilled.
*/
func TestCreateAdditional_ReusesDocuments(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()
	builder := newBuilder(repo)

	base, err := builder.CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	additional, err := builder.CreateAdditional(ctx, enrollment.AdditionalRegistrationInput{
		BaseRegistrationID: base.ID,
		AadharNumber:       "123456789012",
		CategoryIDs:        []int{2},
		ExistingProductIDs: []int{20},
		ProductionDetails:  []registry.ProductionDetail{completeDetail(20)},
	})
	require.NoError(t, err)

	assert.True(t, additional.ReusedFiles)
	assert.Equal(t, base.ID, additional.BaseRegistrationID)
	assert.Equal(t, base.Documents, additional.Documents)
	// Optional slots stay absent when the base never had them.
	assert.Empty(t, additional.Documents.PanCard)
	// Personal info carries over from the base registration.
	assert.Equal(t, base.PersonalInfo, additional.PersonalInfo)
}

/*
TestCreateAdditional_CatalogConflict verifies that requesting an id outside
the fresh availability always fails with CATALOG_CONFLICT naming the id.
*/
func TestCreateAdditional_CatalogConflict(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()
	builder := newBuilder(repo)

	base, err := builder.CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	// Category 1 is already claimed by the base registration.
	_, err = builder.CreateAdditional(ctx, enrollment.AdditionalRegistrationInput{
		BaseRegistrationID: base.ID,
		AadharNumber:       "123456789012",
		CategoryIDs:        []int{1},
		ExistingProductIDs: []int{11},
		ProductionDetails:  []registry.ProductionDetail{completeDetail(11)},
	})
	require.Error(t, err)
	require.True(t, apperr.IsCode(err, "CATALOG_CONFLICT"))

	appError := apperr.As(err)
	assert.Equal(t, "category", appError.ConflictKind)
	assert.Equal(t, []int{1}, appError.ConflictIDs)
}

/*
TestCreateAdditional_IdentityMismatch verifies that a base registration id
belonging to someone else is answered with NOT_FOUND, revealing nothing.
*/
func TestCreateAdditional_IdentityMismatch(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()
	builder := newBuilder(repo)

	base, err := builder.CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	_, err = builder.CreateAdditional(ctx, enrollment.AdditionalRegistrationInput{
		BaseRegistrationID: base.ID,
		AadharNumber:       "999999999999",
		CategoryIDs:        []int{2},
		ExistingProductIDs: []int{20},
		ProductionDetails:  []registry.ProductionDetail{completeDetail(20)},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestCreateAdditional_ConcurrentOverlap verifies the serialization guarantee:
of two concurrent overlapping additional registrations, exactly one
succeeds and the loser receives CATALOG_CONFLICT.
*/
func TestCreateAdditional_ConcurrentOverlap(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()
	builder := newBuilder(repo)

	base, err := builder.CreateNew(ctx, validNewInput("123456789012"))
	require.NoError(t, err)

	// Both goroutines race for category 2 / product 20.
	contested := func() enrollment.AdditionalRegistrationInput {
		return enrollment.AdditionalRegistrationInput{
			BaseRegistrationID: base.ID,
			AadharNumber:       "123456789012",
			CategoryIDs:        []int{2},
			ExistingProductIDs: []int{20},
			ProductionDetails:  []registry.ProductionDetail{completeDetail(20)},
		}
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := builder.CreateAdditional(ctx, contested())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsCode(err, "CATALOG_CONFLICT"):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	// Disjointness holds afterwards: category 2 is claimed exactly once.
	identity, err := registry.NewIdentity("123456789012", "")
	require.NoError(t, err)
	prior, err := repo.FindByIdentity(ctx, identity)
	require.NoError(t, err)

	claims := 0
	for _, registration := range prior {
		for _, id := range registration.CategoryIDs {
			if id == 2 {
				claims++
			}
		}
	}
	assert.Equal(t, 1, claims)
}
