// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	"strings"

	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/platform/constants"
)

// StepValid reports whether the given step's data is complete on this draft.
//
// Validators are pure and side-effect-free; they are safe to re-run on every
// action. Next from a step is permitted iff its validator passes.
func StepValid(draft Draft, step Step) bool {
	switch step {
	case StepIdentityCheck:
		return identityCheckValid(draft)
	case StepPersonalInfo:
		return personalInfoValid(draft)
	case StepDocuments:
		return documentsValid(draft)
	case StepCategories:
		return categoriesValid(draft)
	case StepExistingProducts:
		return existingProductsValid(draft)
	case StepProductionDetails:
		return productionDetailsValid(draft)
	default:
		return false
	}
}

// identityCheckValid requires a completed verification of a well-formed
// identity. An edit to either field clears Verified, so a passing validator
// always describes the current values.
func identityCheckValid(draft Draft) bool {
	if !draft.Verified {
		return false
	}
	_, err := registry.NewIdentity(draft.AadharNumber, draft.VoterID)
	return err == nil
}

func personalInfoValid(draft Draft) bool {
	info := draft.PersonalInfo
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Address) == "" ||
		strings.TrimSpace(info.Gender) == "" ||
		strings.TrimSpace(info.Phone) == "" {
		return false
	}
	if info.Age <= 0 {
		return false
	}
	_, err := registry.NewIdentity(draft.AadharNumber, draft.VoterID)
	return err == nil
}

// documentsValid requires every mandatory slot to be covered, freshly
// supplied or inherited from the base registration.
func documentsValid(draft Draft) bool {
	for _, slot := range []string{constants.SlotAadharCard, constants.SlotSignature, constants.SlotPhoto} {
		if !draft.SlotSatisfied(slot) {
			return false
		}
	}
	return true
}

func categoriesValid(draft Draft) bool {
	if len(draft.CategoryIDs) == 0 {
		return false
	}
	offered := draft.offeredCategorySet()
	for _, id := range draft.CategoryIDs {
		if _, ok := offered[id]; !ok {
			return false
		}
	}
	return true
}

func existingProductsValid(draft Draft) bool {
	if len(draft.ExistingProductIDs) == 0 {
		return false
	}
	return checkProductChoice(draft, draft.ExistingProductIDs) == nil
}

// productionDetailsValid requires a complete detail per chosen existing
// product. Selected (future) products carry no details but must still be a
// legal choice.
func productionDetailsValid(draft Draft) bool {
	for _, id := range draft.ExistingProductIDs {
		detail, ok := draft.ProductionDetails[id]
		if !ok || !detail.IsComplete() {
			return false
		}
	}
	return checkProductChoice(draft, draft.SelectedProductIDs) == nil
}
