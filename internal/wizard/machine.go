// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	"time"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	"github.com/taibuivan/bhugol/internal/platform/validate"
)

// knownSlots is the closed set of document slot names the wizard tracks.
var knownSlots = map[string]bool{
	constants.SlotAadharCard:        true,
	constants.SlotPanCard:           true,
	constants.SlotProofOfProduction: true,
	constants.SlotSignature:         true,
	constants.SlotPhoto:             true,
}

/*
Apply runs one action against the draft and returns the successor draft.

Description: Pure and deterministic — no clocks except the supplied now, no
I/O. Illegal actions (data entry on the wrong step, Next with a failing
validator, forking to additional mode without a registered identity) return
a VALIDATION_ERROR and leave the draft unchanged. Stale asynchronous results
are not errors: they return the draft unchanged.

Parameters:
  - draft: Draft (current state)
  - action: Action
  - now: time.Time (stamped into UpdatedAt on every applied action)

Returns:
  - Draft: The successor state (== draft when a stale result is dropped)
  - error: VALIDATION_ERROR for illegal actions
*/
func Apply(draft Draft, action Action, now time.Time) (Draft, error) {
	next := draft.clone()
	next.UpdatedAt = now

	switch action.Type {
	case ActionNext:
		return applyNext(next)
	case ActionPrevious:
		return applyPrevious(next)
	case ActionSetIdentity:
		return applySetIdentity(next, action)
	case ActionChooseMode:
		return applyChooseMode(next, action)
	case ActionSetPersonalInfo:
		return applySetPersonalInfo(next, action)
	case ActionSetDocument:
		return applySetDocument(next, action)
	case ActionSetCategories:
		return applySetCategories(next, action)
	case ActionSetExistingProducts:
		return applySetExistingProducts(next, action)
	case ActionSetSelectedProducts:
		return applySetSelectedProducts(next, action)
	case ActionSetProductionDetail:
		return applySetProductionDetail(next, action)
	case ActionVerifyResult:
		return applyVerifyResult(draft, next, action)
	case ActionSubmitResult:
		return applySubmitResult(draft, next, action)
	default:
		return draft, validate.RequiredError("type", "Unknown wizard action")
	}
}

// # Navigation

func applyNext(draft Draft) (Draft, error) {
	position := indexOf(draft.Step)
	if position < 0 || draft.Step == StepSubmit || draft.Step == StepDone {
		return draft, validate.RequiredError("step", "No forward transition from this step")
	}
	if !StepValid(draft, draft.Step) {
		return draft, validate.RequiredError("step", "Current step is incomplete")
	}

	draft.Step = stepOrder[position+1]
	draft.Sequence++
	return draft, nil
}

// applyPrevious steps back one screen. Returning to the identity check
// resets the branch decision and everything derived from the verify result,
// but keeps the data entered on later steps.
func applyPrevious(draft Draft) (Draft, error) {
	position := indexOf(draft.Step)
	if position <= 0 || draft.Step == StepDone {
		return draft, validate.RequiredError("step", "No backward transition from this step")
	}

	draft.Step = stepOrder[position-1]
	draft.Sequence++

	if draft.Step == StepIdentityCheck {
		draft.Mode = ModeNew
		draft.Verified = false
		draft.IsRegistered = false
		draft.FirstPriorID = ""
		draft.BaseRegistrationID = ""
		draft.OfferedCategories = nil
		draft.OfferedProducts = nil
		draft.InheritedSlots = nil
		draft.ConflictingIDs = nil
	}
	return draft, nil
}

// # Identity Check (S0)

func applySetIdentity(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepIdentityCheck {
		return draft, validate.RequiredError("step", "Identity can only change on the identity check step")
	}

	draft.AadharNumber = action.AadharNumber
	draft.VoterID = action.VoterID

	// Any edit invalidates an earlier verification.
	draft.Verified = false
	draft.IsRegistered = false
	draft.FirstPriorID = ""
	draft.BaseRegistrationID = ""
	draft.OfferedCategories = nil
	draft.OfferedProducts = nil
	draft.InheritedSlots = nil
	draft.Sequence++
	return draft, nil
}

// applyVerifyResult folds a completed verification into the draft. The
// previous draft is returned untouched when the result is stale or the
// applicant has already left the identity check.
func applyVerifyResult(previous, draft Draft, action Action) (Draft, error) {
	if action.Sequence != previous.Sequence || previous.Step != StepIdentityCheck {
		return previous, nil
	}
	if action.VerifyResult == nil {
		return previous, validate.RequiredError("verifyResult", "Missing verification result")
	}

	result := action.VerifyResult
	draft.Verified = true
	draft.IsRegistered = result.IsRegistered
	draft.OfferedCategories = result.AvailableCategories
	draft.OfferedProducts = result.AvailableProducts

	if len(result.ExistingRegistrations) > 0 {
		first := result.ExistingRegistrations[0]
		draft.FirstPriorID = first.ID
		inherited := make(map[string]bool, len(first.DocumentSlots))
		for _, slot := range first.DocumentSlots {
			inherited[slot] = true
		}
		draft.InheritedSlots = inherited
	}
	draft.Sequence++
	return draft, nil
}

func applyChooseMode(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepIdentityCheck {
		return draft, validate.RequiredError("step", "Mode can only change on the identity check step")
	}
	if !draft.Verified {
		return draft, validate.RequiredError("mode", "Verify the identity before choosing a mode")
	}

	if action.Additional {
		if !draft.IsRegistered {
			return draft, validate.RequiredError("mode", "Additional registration requires a prior registration")
		}
		draft.Mode = ModeAdditional
		draft.BaseRegistrationID = draft.FirstPriorID
	} else {
		draft.Mode = ModeNew
		draft.BaseRegistrationID = ""
	}
	draft.Sequence++
	return draft, nil
}

// # Data Entry (S1–S5)

func applySetPersonalInfo(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepPersonalInfo {
		return draft, validate.RequiredError("step", "Personal info can only change on the personal info step")
	}
	if action.PersonalInfo == nil {
		return draft, validate.RequiredError("personalInfo", "Missing personal info payload")
	}
	draft.PersonalInfo = *action.PersonalInfo
	draft.Sequence++
	return draft, nil
}

func applySetDocument(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepDocuments {
		return draft, validate.RequiredError("step", "Documents can only change on the documents step")
	}
	if !knownSlots[action.Slot] {
		return draft, validate.RequiredError("slot", "Unknown document slot")
	}

	if draft.FreshSlots == nil {
		draft.FreshSlots = make(map[string]bool, len(knownSlots))
	}
	if action.Present {
		draft.FreshSlots[action.Slot] = true
	} else {
		delete(draft.FreshSlots, action.Slot)
	}
	draft.Sequence++
	return draft, nil
}

// applySetCategories replaces the chosen category set and prunes every
// product (and its production detail) whose category is no longer chosen.
func applySetCategories(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepCategories {
		return draft, validate.RequiredError("step", "Categories can only change on the category step")
	}

	offered := draft.offeredCategorySet()
	for _, id := range action.IDs {
		if _, ok := offered[id]; !ok {
			return draft, validate.RequiredError("ids", "Category is not available for this identity")
		}
	}
	draft.CategoryIDs = append([]int(nil), action.IDs...)

	chosen := make(map[int]struct{}, len(draft.CategoryIDs))
	for _, id := range draft.CategoryIDs {
		chosen[id] = struct{}{}
	}
	productCategory := draft.offeredProductIndex()

	keep := func(ids []int) []int {
		kept := ids[:0]
		for _, id := range ids {
			if _, ok := chosen[productCategory[id]]; ok {
				kept = append(kept, id)
			}
		}
		return kept
	}
	draft.ExistingProductIDs = keep(draft.ExistingProductIDs)
	draft.SelectedProductIDs = keep(draft.SelectedProductIDs)
	draft.ProductionDetails = syncDetails(draft.ProductionDetails, draft.ExistingProductIDs, draft.OfferedProducts)
	draft.ConflictingIDs = nil
	draft.Sequence++
	return draft, nil
}

// applySetExistingProducts replaces the existing-product selection and keeps
// the production detail map in lockstep: an entry per chosen product, none
// orphaned.
func applySetExistingProducts(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepExistingProducts {
		return draft, validate.RequiredError("step", "Existing products can only change on the product step")
	}

	if err := checkProductChoice(draft, action.IDs); err != nil {
		return draft, err
	}
	draft.ExistingProductIDs = append([]int(nil), action.IDs...)
	draft.ProductionDetails = syncDetails(draft.ProductionDetails, draft.ExistingProductIDs, draft.OfferedProducts)
	draft.ConflictingIDs = nil
	draft.Sequence++
	return draft, nil
}

// applySetSelectedProducts replaces the future-production selection. Allowed
// on the production details step, where the remaining catalog is offered.
func applySetSelectedProducts(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepProductionDetails {
		return draft, validate.RequiredError("step", "Selected products can only change on the production details step")
	}

	if err := checkProductChoice(draft, action.IDs); err != nil {
		return draft, err
	}
	existing := make(map[int]struct{}, len(draft.ExistingProductIDs))
	for _, id := range draft.ExistingProductIDs {
		existing[id] = struct{}{}
	}
	for _, id := range action.IDs {
		if _, ok := existing[id]; ok {
			return draft, validate.RequiredError("ids", "Product is already chosen as an existing product")
		}
	}
	draft.SelectedProductIDs = append([]int(nil), action.IDs...)
	draft.ConflictingIDs = nil
	draft.Sequence++
	return draft, nil
}

func applySetProductionDetail(draft Draft, action Action) (Draft, error) {
	if draft.Step != StepProductionDetails {
		return draft, validate.RequiredError("step", "Production details can only change on the production details step")
	}
	if action.Detail == nil {
		return draft, validate.RequiredError("detail", "Missing production detail payload")
	}

	chosen := false
	for _, id := range draft.ExistingProductIDs {
		if id == action.Detail.ProductID {
			chosen = true
			break
		}
	}
	if !chosen {
		return draft, validate.RequiredError("detail", "Production details belong to a chosen existing product")
	}

	if draft.ProductionDetails == nil {
		draft.ProductionDetails = make(map[int]registry.ProductionDetail)
	}
	draft.ProductionDetails[action.Detail.ProductID] = *action.Detail
	draft.Sequence++
	return draft, nil
}

// # Submission

// applySubmitResult folds the builder's answer into the draft. Duplicate
// identity sends the run back to the identity check (the applicant must
// re-verify and fork to additional mode); a catalog conflict returns to the
// step owning the conflicting ids and surfaces them. Stale results are
// dropped.
func applySubmitResult(previous, draft Draft, action Action) (Draft, error) {
	if action.Sequence != previous.Sequence || previous.Step != StepSubmit {
		return previous, nil
	}

	switch action.Outcome {
	case SubmitSucceeded:
		draft.Step = StepDone
	case SubmitDuplicateIdentity:
		draft.Step = StepIdentityCheck
		draft.Mode = ModeNew
		draft.Verified = false
		draft.IsRegistered = false
		draft.FirstPriorID = ""
		draft.BaseRegistrationID = ""
		draft.OfferedCategories = nil
		draft.OfferedProducts = nil
		draft.InheritedSlots = nil
	case SubmitCatalogConflict:
		if action.ConflictKind == "category" {
			draft.Step = StepCategories
		} else {
			draft.Step = StepExistingProducts
		}
		draft.ConflictingIDs = append([]int(nil), action.ConflictingIDs...)
	default:
		return previous, validate.RequiredError("outcome", "Unknown submit outcome")
	}
	draft.Sequence++
	return draft, nil
}

// # Helpers

// checkProductChoice rejects product ids outside the offered universe or
// outside the chosen categories.
func checkProductChoice(draft Draft, ids []int) error {
	productCategory := draft.offeredProductIndex()
	chosen := make(map[int]struct{}, len(draft.CategoryIDs))
	for _, id := range draft.CategoryIDs {
		chosen[id] = struct{}{}
	}

	for _, id := range ids {
		categoryID, offered := productCategory[id]
		if !offered {
			return validate.RequiredError("ids", "Product is not available for this identity")
		}
		if _, ok := chosen[categoryID]; !ok {
			return validate.RequiredError("ids", "Product belongs to a category that is not chosen")
		}
	}
	return nil
}

// syncDetails reconciles the detail map with the existing-product selection:
// new ids get a stub entry (pre-filled with the product name), removed ids
// lose theirs.
func syncDetails(details map[int]registry.ProductionDetail, existingIDs []int, offered []catalog.Product) map[int]registry.ProductionDetail {
	names := make(map[int]string, len(offered))
	for _, product := range offered {
		names[product.ID] = product.Name
	}

	synced := make(map[int]registry.ProductionDetail, len(existingIDs))
	for _, id := range existingIDs {
		if detail, ok := details[id]; ok {
			synced[id] = detail
			continue
		}
		synced[id] = registry.ProductionDetail{ProductID: id, ProductName: names[id]}
	}
	return synced
}
