// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/core/verification"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() catalog.Repository {
	return catalog.NewMemoryRepository(
		[]catalog.Category{
			{ID: 1, Name: "Handloom"},
			{ID: 2, Name: "Agriculture"},
		},
		[]catalog.Product{
			{ID: 10, CategoryID: 1, Name: "Silk Saree"},
			{ID: 11, CategoryID: 1, Name: "Cotton Weave"},
			{ID: 20, CategoryID: 2, Name: "Black Rice"},
		},
	)
}

func newVerificationService(repo registry.Repository) *verification.Service {
	catalogRepo := testCatalog()
	registryService := registry.NewService(repo, catalogRepo, testLogger())
	return verification.NewService(registryService, catalogRepo, testLogger())
}

/*
TestVerify_RegisteredIdentity replays the registered-identity scenario: one
prior registration claiming category 1 and product 10 must shrink the
availability sets by exactly those ids.
*/
func TestVerify_RegisteredIdentity(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()

	identity, err := registry.NewIdentity("123456789012", "")
	require.NoError(t, err)

	createdAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &registry.Registration{
		ID:                 "prior-1",
		Identity:           identity,
		PersonalInfo:       registry.PersonalInfo{Name: "Asha Devi"},
		CategoryIDs:        []int{1},
		ExistingProductIDs: []int{10},
		Documents:          registry.DocumentBundleRef{AadharCard: "a.jpg", Signature: "s.jpg", Photo: "p.jpg"},
		CreatedAt:          createdAt,
	}))

	result, err := newVerificationService(repo).Verify(ctx, identity)
	require.NoError(t, err)

	assert.True(t, result.IsRegistered)
	assert.Equal(t, "prior-1", result.RegistrationID)
	assert.Equal(t, "Asha Devi", result.Name)
	require.NotNil(t, result.RegistrationDate)
	assert.Equal(t, createdAt, *result.RegistrationDate)

	// Availability = full catalog minus the claims.
	require.Len(t, result.AvailableCategories, 1)
	assert.Equal(t, 2, result.AvailableCategories[0].ID)
	require.Len(t, result.AvailableProducts, 2)
	assert.Equal(t, 11, result.AvailableProducts[0].ID)
	assert.Equal(t, 20, result.AvailableProducts[1].ID)

	// The summary resolves category names and document slots.
	require.Len(t, result.ExistingRegistrations, 1)
	summary := result.ExistingRegistrations[0]
	assert.Equal(t, []string{"Handloom"}, summary.CategoryNames)
	assert.ElementsMatch(t, []string{"aadharCard", "signature", "photo"}, summary.DocumentSlots)
}

/*
TestVerify_UnregisteredIdentity replays the fresh-identity scenario: a voter
id with no prior registration sees the full catalog.
*/
func TestVerify_UnregisteredIdentity(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()

	identity, err := registry.NewIdentity("", "ABC1234567")
	require.NoError(t, err)

	result, err := newVerificationService(repo).Verify(ctx, identity)
	require.NoError(t, err)

	assert.False(t, result.IsRegistered)
	assert.Empty(t, result.RegistrationID)
	assert.Empty(t, result.ExistingRegistrations)
	assert.Len(t, result.AvailableCategories, 2)
	assert.Len(t, result.AvailableProducts, 3)
}

/*
TestVerify_FullyRegisteredIdentity verifies that empty availability is a
valid result, not an error.
*/
func TestVerify_FullyRegisteredIdentity(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()

	identity, err := registry.NewIdentity("123456789012", "")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &registry.Registration{
		ID:                 "prior-1",
		Identity:           identity,
		CategoryIDs:        []int{1, 2},
		ExistingProductIDs: []int{10, 11, 20},
		CreatedAt:          time.Now().UTC(),
	}))

	result, err := newVerificationService(repo).Verify(ctx, identity)
	require.NoError(t, err)

	assert.True(t, result.IsRegistered)
	assert.Empty(t, result.AvailableCategories)
	assert.Empty(t, result.AvailableProducts)
}

/*
TestVerify_AmbiguousIdentity verifies that a dual-field lookup resolving to
two different registered identities is rejected as user-correctable input.
*/
func TestVerify_AmbiguousIdentity(t *testing.T) {
	ctx := context.Background()
	repo := registry.NewMemoryRepository()

	aadharIdentity, err := registry.NewIdentity("123456789012", "")
	require.NoError(t, err)
	voterIdentity, err := registry.NewIdentity("", "ABC1234567")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &registry.Registration{
		ID: "r-aadhar", Identity: aadharIdentity, CategoryIDs: []int{1}, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.Create(ctx, &registry.Registration{
		ID: "r-voter", Identity: voterIdentity, CategoryIDs: []int{2}, CreatedAt: time.Now().UTC(),
	}))

	query, err := registry.NewIdentity("123456789012", "ABC1234567")
	require.NoError(t, err)

	_, err = newVerificationService(repo).Verify(ctx, query)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}
