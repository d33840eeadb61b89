// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

/*
TestValidator_Required verifies empty and whitespace-only detection.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"valid_string", "name", "Bhugol", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required(tt.field, tt.value).Err()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_Aadhar verifies the 12-digit Aadhar shape rule over
pre-normalized input.
*/
func TestValidator_Aadhar(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "123456789012", false},
		{"too_short", "12345678901", true},
		{"too_long", "1234567890123", true},
		{"letters", "12345678901a", true},
		{"unnormalized_spaces", "1234 5678 9012", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Aadhar("aadharNumber", tt.value).Err()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_VoterID verifies the EPIC shape rule: three uppercase letters
followed by seven digits.
*/
func TestValidator_VoterID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "ABC1234567", false},
		{"lowercase", "abc1234567", true},
		{"digits_first", "1234567ABC", true},
		{"too_short", "AB123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.VoterID("voterId", tt.value).Err()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_Phone verifies the 10-digit mobile number rule.
*/
func TestValidator_Phone(t *testing.T) {
	v := &validate.Validator{}
	require.NoError(t, v.Phone("phone", "9876543210").Err())

	v = &validate.Validator{}
	require.Error(t, v.Phone("phone", "98765").Err())
}

/*
TestValidator_Range verifies inclusive bounds.
*/
func TestValidator_Range(t *testing.T) {
	v := &validate.Validator{}
	require.NoError(t, v.Range("age", 18, 18, 120).Err())

	v = &validate.Validator{}
	require.NoError(t, v.Range("age", 120, 18, 120).Err())

	v = &validate.Validator{}
	require.Error(t, v.Range("age", 17, 18, 120).Err())
}

/*
TestValidator_CollectsAllFailures verifies that chained rules accumulate
per-field details into one VALIDATION_ERROR.
*/
func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("name", "").
		Aadhar("aadharNumber", "bad").
		Phone("phone", "123").
		Err()

	require.Error(t, err)

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
}

/*
TestValidator_UUID verifies UUID acceptance in both cases.
*/
func TestValidator_UUID(t *testing.T) {
	v := &validate.Validator{}
	require.NoError(t, v.UUID("id", "0190a8b2-5c3e-7d4f-8a9b-1c2d3e4f5a6b").Err())

	v = &validate.Validator{}
	require.NoError(t, v.UUID("id", "0190A8B2-5C3E-7D4F-8A9B-1C2D3E4F5A6B").Err())

	v = &validate.Validator{}
	require.Error(t, v.UUID("id", "not-a-uuid").Err())
}
