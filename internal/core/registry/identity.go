// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registry is the identity registry at the heart of the GI program.

It links every committed registration to a natural-key Identity (Aadhar
number and/or Voter ID), answers "what has this person already claimed?",
and computes the catalog availability diff that both the verification
service and the registration builder depend on.

Architecture:

  - Identity: normalized natural-key value type with strict format rules.
  - Registration: immutable committed enrollment snapshot.
  - Repository: lookup and insert, with a per-identity serialization boundary.
  - Diff: pure set subtraction over the catalog, computed fresh per call.
*/
package registry

import (
	"strings"

	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// Identity is the natural key linking registrations to one applicant.
//
// At least one of the two fields must be present. Values are stored
// normalized (Aadhar digits-only, Voter ID uppercase); construct through
// [NewIdentity] so comparisons never see raw input.
type Identity struct {
	AadharNumber string `json:"aadharNumber,omitempty"`
	VoterID      string `json:"voterId,omitempty"`
}

// NewIdentity normalizes and validates the raw identity fields.
//
// # Rules
//
//   - Aadhar: digits only after stripping spaces/hyphens, exactly 12 digits.
//   - Voter ID: uppercased, 3 letters followed by 7 digits.
//   - At least one field must be supplied.
//
// Malformed input fails with a VALIDATION_ERROR before any lookup happens.
func NewIdentity(aadharNumber, voterID string) (Identity, error) {
	identity := Identity{
		AadharNumber: NormalizeAadhar(aadharNumber),
		VoterID:      NormalizeVoterID(voterID),
	}

	v := &validate.Validator{}

	if identity.AadharNumber == "" && identity.VoterID == "" {
		return Identity{}, validate.RequiredError("identity", "At least one of aadharNumber or voterId is required")
	}
	if identity.AadharNumber != "" {
		v.Aadhar("aadharNumber", identity.AadharNumber)
	}
	if identity.VoterID != "" {
		v.VoterID("voterId", identity.VoterID)
	}

	if err := v.Err(); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// NormalizeAadhar strips spaces and hyphens, keeping digits only.
// Shape validation is a separate concern; this only canonicalizes.
func NormalizeAadhar(raw string) string {
	var builder strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// NormalizeVoterID uppercases and removes whitespace.
func NormalizeVoterID(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// IsZero reports whether the identity carries no natural key at all.
func (identity Identity) IsZero() bool {
	return identity.AadharNumber == "" && identity.VoterID == ""
}

// Matches reports whether a stored identity matches a query identity.
//
// # Semantics
//
// A match occurs when the stored Aadhar equals the query's Aadhar (when the
// query supplies one) OR the stored Voter ID equals the query's Voter ID
// (when supplied). Supplying both matches on either field independently.
func (identity Identity) Matches(query Identity) bool {
	if query.AadharNumber != "" && identity.AadharNumber == query.AadharNumber {
		return true
	}
	if query.VoterID != "" && identity.VoterID == query.VoterID {
		return true
	}
	return false
}

// LockKeys returns the per-field serialization keys for this identity.
//
// Commits lock every non-empty field key, so two concurrent submissions
// that share either natural key contend on at least one common lock.
// Keys are returned in a deterministic order to keep lock acquisition
// deadlock-free.
func (identity Identity) LockKeys() []string {
	keys := make([]string, 0, 2)
	if identity.AadharNumber != "" {
		keys = append(keys, "aadhar:"+identity.AadharNumber)
	}
	if identity.VoterID != "" {
		keys = append(keys, "voter:"+identity.VoterID)
	}
	return keys
}
