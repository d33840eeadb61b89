// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

/*
TestNewIdentity_Normalization verifies that raw input is canonicalized
before validation.
*/
func TestNewIdentity_Normalization(t *testing.T) {
	tests := []struct {
		name         string
		aadharNumber string
		voterID      string
		wantAadhar   string
		wantVoter    string
	}{
		{"aadhar_with_spaces", "1234 5678 9012", "", "123456789012", ""},
		{"aadhar_with_hyphens", "1234-5678-9012", "", "123456789012", ""},
		{"voter_lowercase", "", "abc1234567", "", "ABC1234567"},
		{"voter_with_whitespace", "", " ABC 1234567 ", "", "ABC1234567"},
		{"both_fields", "123456789012", "xyz9876543", "123456789012", "XYZ9876543"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := registry.NewIdentity(tt.aadharNumber, tt.voterID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAadhar, identity.AadharNumber)
			assert.Equal(t, tt.wantVoter, identity.VoterID)
		})
	}
}

/*
TestNewIdentity_Validation verifies that malformed identities are rejected
with a VALIDATION_ERROR before any lookup could happen.
*/
func TestNewIdentity_Validation(t *testing.T) {
	tests := []struct {
		name         string
		aadharNumber string
		voterID      string
	}{
		{"both_empty", "", ""},
		{"aadhar_too_short", "12345", ""},
		{"aadhar_too_long", "1234567890123", ""},
		{"voter_bad_shape", "", "1234567ABC"},
		{"voter_too_short", "", "AB123"},
		{"valid_aadhar_invalid_voter", "123456789012", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.NewIdentity(tt.aadharNumber, tt.voterID)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		})
	}
}

/*
TestIdentity_Matches verifies the OR semantics across the two natural-key
fields.
*/
func TestIdentity_Matches(t *testing.T) {
	stored := registry.Identity{AadharNumber: "123456789012", VoterID: "ABC1234567"}

	// Either field alone is enough.
	assert.True(t, stored.Matches(registry.Identity{AadharNumber: "123456789012"}))
	assert.True(t, stored.Matches(registry.Identity{VoterID: "ABC1234567"}))

	// Both supplied: either match suffices.
	assert.True(t, stored.Matches(registry.Identity{AadharNumber: "123456789012", VoterID: "XYZ0000000"}))

	// No overlap.
	assert.False(t, stored.Matches(registry.Identity{AadharNumber: "999999999999"}))
	assert.False(t, stored.Matches(registry.Identity{}))
}

/*
TestIdentity_LockKeys verifies that lock keys are emitted per non-empty
field, in a deterministic order.
*/
func TestIdentity_LockKeys(t *testing.T) {
	both := registry.Identity{AadharNumber: "123456789012", VoterID: "ABC1234567"}
	assert.Equal(t, []string{"aadhar:123456789012", "voter:ABC1234567"}, both.LockKeys())

	aadharOnly := registry.Identity{AadharNumber: "123456789012"}
	assert.Equal(t, []string{"aadhar:123456789012"}, aadharOnly.LockKeys())

	voterOnly := registry.Identity{VoterID: "ABC1234567"}
	assert.Equal(t, []string{"voter:ABC1234567"}, voterOnly.LockKeys())
}
