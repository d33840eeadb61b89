// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/core/verification"
	"github.com/taibuivan/bhugol/internal/wizard"
)

var testNow = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

// freshResult is what verify() answers for an unregistered identity: the
// full catalog is available.
func freshResult() *verification.Result {
	return &verification.Result{
		IsRegistered: false,
		AvailableCategories: []catalog.Category{
			{ID: 1, Name: "Handloom"},
			{ID: 2, Name: "Agriculture"},
		},
		AvailableProducts: []catalog.Product{
			{ID: 10, CategoryID: 1, Name: "Silk Saree"},
			{ID: 11, CategoryID: 1, Name: "Cotton Weave"},
			{ID: 20, CategoryID: 2, Name: "Black Rice"},
		},
	}
}

// registeredResult is what verify() answers when one prior registration has
// claimed category 1 / product 10.
func registeredResult() *verification.Result {
	return &verification.Result{
		IsRegistered: true,
		ExistingRegistrations: []verification.RegistrationSummary{
			{
				ID:                 "base-1",
				CategoryIDs:        []int{1},
				ExistingProductIDs: []int{10},
				DocumentSlots:      []string{"aadharCard", "photo", "signature"},
			},
		},
		AvailableCategories: []catalog.Category{{ID: 2, Name: "Agriculture"}},
		AvailableProducts:   []catalog.Product{{ID: 20, CategoryID: 2, Name: "Black Rice"}},
	}
}

func apply(t *testing.T, draft wizard.Draft, action wizard.Action) wizard.Draft {
	t.Helper()
	next, err := wizard.Apply(draft, action, testNow)
	require.NoError(t, err)
	return next
}

// verifiedDraft walks a draft through a successful identity check.
func verifiedDraft(t *testing.T, result *verification.Result) wizard.Draft {
	t.Helper()
	draft := wizard.NewDraft("run-1", testNow)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetIdentity, AadharNumber: "123456789012"})
	return apply(t, draft, wizard.Action{
		Type:         wizard.ActionVerifyResult,
		Sequence:     draft.Sequence,
		VerifyResult: result,
	})
}

/*
TestIdentityCheck_BlocksForward verifies that S0 gates the whole wizard: no
forward transition without a completed verification.
*/
func TestIdentityCheck_BlocksForward(t *testing.T) {
	draft := wizard.NewDraft("run-1", testNow)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetIdentity, AadharNumber: "123456789012"})

	_, err := wizard.Apply(draft, wizard.Action{Type: wizard.ActionNext}, testNow)
	require.Error(t, err)

	draft = apply(t, draft, wizard.Action{
		Type: wizard.ActionVerifyResult, Sequence: draft.Sequence, VerifyResult: freshResult(),
	})
	next := apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	assert.Equal(t, wizard.StepPersonalInfo, next.Step)
	assert.Equal(t, wizard.ModeNew, next.Mode)
}

/*
TestVerifyResult_StaleIsDropped verifies the stale-async guard: a result
carrying an outdated sequence never touches the draft.
*/
func TestVerifyResult_StaleIsDropped(t *testing.T) {
	draft := wizard.NewDraft("run-1", testNow)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetIdentity, AadharNumber: "123456789012"})
	issuedAt := draft.Sequence

	// The applicant edits the identity while the verify call is in flight.
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetIdentity, AadharNumber: "999999999999"})

	next := apply(t, draft, wizard.Action{
		Type: wizard.ActionVerifyResult, Sequence: issuedAt, VerifyResult: freshResult(),
	})
	assert.False(t, next.Verified)
	assert.Empty(t, next.OfferedCategories)
}

/*
TestVerifyResult_ForkToAdditional verifies the branch point: a registered
identity may fork into additional mode, which restricts the offered
universes to the availability diff, binds the base registration, and marks
inherited document slots.
*/
func TestVerifyResult_ForkToAdditional(t *testing.T) {
	draft := verifiedDraft(t, registeredResult())
	assert.True(t, draft.IsRegistered)

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionChooseMode, Additional: true})

	assert.Equal(t, wizard.ModeAdditional, draft.Mode)
	assert.Equal(t, "base-1", draft.BaseRegistrationID)

	// The offered universe never contains a claimed category.
	require.Len(t, draft.OfferedCategories, 1)
	assert.Equal(t, 2, draft.OfferedCategories[0].ID)

	// Mandatory slots held by the base bundle count as satisfied.
	assert.True(t, draft.SlotSatisfied("aadharCard"))
	assert.True(t, draft.SlotSatisfied("signature"))
	assert.True(t, draft.SlotSatisfied("photo"))
	assert.False(t, draft.SlotSatisfied("panCard"))
}

/*
TestChooseMode_AdditionalRequiresPrior verifies that the additional fork is
refused for unregistered identities.
*/
func TestChooseMode_AdditionalRequiresPrior(t *testing.T) {
	draft := verifiedDraft(t, freshResult())

	_, err := wizard.Apply(draft, wizard.Action{Type: wizard.ActionChooseMode, Additional: true}, testNow)
	require.Error(t, err)
}

/*
TestPrevious_ToIdentityCheckResetsBranch verifies that stepping back to S0
clears the branch decision and verify-derived state but keeps entered data.
*/
func TestPrevious_ToIdentityCheckResetsBranch(t *testing.T) {
	draft := verifiedDraft(t, freshResult())
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetPersonalInfo, PersonalInfo: &registry.PersonalInfo{
		Name: "Asha Devi", Address: "Rampur", Age: 42, Gender: "female", Phone: "9876543210",
	}})

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionPrevious})
	assert.Equal(t, wizard.StepIdentityCheck, draft.Step)

	assert.False(t, draft.Verified)
	assert.Empty(t, draft.OfferedCategories)
	assert.Equal(t, wizard.ModeNew, draft.Mode)

	// Later-step data survives the reset.
	assert.Equal(t, "Asha Devi", draft.PersonalInfo.Name)
}

// walkToCategories drives a fresh new-mode draft to the category step.
func walkToCategories(t *testing.T) wizard.Draft {
	t.Helper()
	draft := verifiedDraft(t, freshResult())
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetPersonalInfo, PersonalInfo: &registry.PersonalInfo{
		Name: "Asha Devi", Address: "Rampur", Age: 42, Gender: "female", Phone: "9876543210",
	}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	for _, slot := range []string{"aadharCard", "signature", "photo"} {
		draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetDocument, Slot: slot, Present: true})
	}
	return apply(t, draft, wizard.Action{Type: wizard.ActionNext})
}

/*
TestDocuments_MandatorySlotsGate verifies that S2 blocks until the three
mandatory slots are satisfied.
*/
func TestDocuments_MandatorySlotsGate(t *testing.T) {
	draft := verifiedDraft(t, freshResult())
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetPersonalInfo, PersonalInfo: &registry.PersonalInfo{
		Name: "Asha Devi", Address: "Rampur", Age: 42, Gender: "female", Phone: "9876543210",
	}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetDocument, Slot: "aadharCard", Present: true})
	_, err := wizard.Apply(draft, wizard.Action{Type: wizard.ActionNext}, testNow)
	require.Error(t, err)

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetDocument, Slot: "signature", Present: true})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetDocument, Slot: "photo", Present: true})
	next := apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	assert.Equal(t, wizard.StepCategories, next.Step)
}

/*
TestCategories_PruneCascades verifies that narrowing the category choice
prunes products of dropped categories together with their details.
*/
func TestCategories_PruneCascades(t *testing.T) {
	draft := walkToCategories(t)

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1, 2}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetExistingProducts, IDs: []int{10, 20}})

	// Details were stubbed for both chosen products.
	assert.Len(t, draft.ProductionDetails, 2)
	assert.Equal(t, "Silk Saree", draft.ProductionDetails[10].ProductName)

	// Dropping category 2 removes product 20 and its detail entry.
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionPrevious})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1}})

	assert.Equal(t, []int{10}, draft.ExistingProductIDs)
	assert.Len(t, draft.ProductionDetails, 1)
	assert.NotContains(t, draft.ProductionDetails, 20)
}

/*
TestProducts_RestrictedToChosenCategories verifies that S4 refuses products
outside the chosen categories or outside the offered universe.
*/
func TestProducts_RestrictedToChosenCategories(t *testing.T) {
	draft := walkToCategories(t)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})

	// Product 20 belongs to category 2, which is not chosen.
	_, err := wizard.Apply(draft, wizard.Action{Type: wizard.ActionSetExistingProducts, IDs: []int{20}}, testNow)
	require.Error(t, err)

	// Product 99 is not offered at all.
	_, err = wizard.Apply(draft, wizard.Action{Type: wizard.ActionSetExistingProducts, IDs: []int{99}}, testNow)
	require.Error(t, err)
}

// walkToSubmit drives a fresh new-mode draft all the way to the submit step.
func walkToSubmit(t *testing.T) wizard.Draft {
	t.Helper()
	draft := walkToCategories(t)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetExistingProducts, IDs: []int{10}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetProductionDetail, Detail: &registry.ProductionDetail{
		ProductID: 10, Quantity: 120, Unit: "kg", Area: 2.5, YearsOfProduction: 6,
		Turnover: 80000, TurnoverUnit: "INR",
	}})
	return apply(t, draft, wizard.Action{Type: wizard.ActionNext})
}

/*
TestProductionDetails_GateSubmit verifies that S5 blocks until every chosen
existing product carries a complete detail.
*/
func TestProductionDetails_GateSubmit(t *testing.T) {
	draft := walkToCategories(t)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetExistingProducts, IDs: []int{10}})
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionNext})

	// The stub entry created by the selection sync is incomplete.
	_, err := wizard.Apply(draft, wizard.Action{Type: wizard.ActionNext}, testNow)
	require.Error(t, err)

	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetProductionDetail, Detail: &registry.ProductionDetail{
		ProductID: 10, Quantity: 120, Unit: "kg", Area: 2.5, YearsOfProduction: 6,
		Turnover: 80000, TurnoverUnit: "INR",
	}})
	next := apply(t, draft, wizard.Action{Type: wizard.ActionNext})
	assert.Equal(t, wizard.StepSubmit, next.Step)
}

/*
TestSubmitResult_Outcomes verifies the submit error mapping: duplicate
identity returns to S0, catalog conflict returns to the conflicting step
with ids surfaced, success completes the run.
*/
func TestSubmitResult_Outcomes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		draft := walkToSubmit(t)
		next := apply(t, draft, wizard.Action{
			Type: wizard.ActionSubmitResult, Sequence: draft.Sequence, Outcome: wizard.SubmitSucceeded,
		})
		assert.Equal(t, wizard.StepDone, next.Step)
	})

	t.Run("duplicate_identity", func(t *testing.T) {
		draft := walkToSubmit(t)
		next := apply(t, draft, wizard.Action{
			Type: wizard.ActionSubmitResult, Sequence: draft.Sequence, Outcome: wizard.SubmitDuplicateIdentity,
		})
		assert.Equal(t, wizard.StepIdentityCheck, next.Step)
		assert.False(t, next.Verified)
	})

	t.Run("catalog_conflict", func(t *testing.T) {
		draft := walkToSubmit(t)
		next := apply(t, draft, wizard.Action{
			Type: wizard.ActionSubmitResult, Sequence: draft.Sequence,
			Outcome: wizard.SubmitCatalogConflict, ConflictKind: "category", ConflictingIDs: []int{1},
		})
		assert.Equal(t, wizard.StepCategories, next.Step)
		assert.Equal(t, []int{1}, next.ConflictingIDs)
	})

	t.Run("stale_result_dropped", func(t *testing.T) {
		draft := walkToSubmit(t)
		next := apply(t, draft, wizard.Action{
			Type: wizard.ActionSubmitResult, Sequence: draft.Sequence - 1, Outcome: wizard.SubmitSucceeded,
		})
		assert.Equal(t, wizard.StepSubmit, next.Step)
	})
}

/*
TestApply_DoesNotMutatePrevious verifies draft immutability: reducers never
alias the previous value's maps or slices.
*/
func TestApply_DoesNotMutatePrevious(t *testing.T) {
	draft := walkToCategories(t)
	draft = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{1, 2}})

	before := append([]int(nil), draft.CategoryIDs...)
	_ = apply(t, draft, wizard.Action{Type: wizard.ActionSetCategories, IDs: []int{2}})

	assert.Equal(t, before, draft.CategoryIDs)
}
