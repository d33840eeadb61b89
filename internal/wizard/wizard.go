// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wizard implements the intake state machine that drives registration
data collection.

# Design

The wizard is a pure state machine: the [Draft] is an immutable value and
every transition is a `(Draft, Action) -> Draft` reducer with no side
effects. The [Service] owns the side-effectful edges (verification calls,
submission, Redis persistence) and feeds their outcomes back into the
machine as result actions.

One machine serves both intake modes. A successful identity check either
keeps the run in new mode or forks it into additional mode, which restricts
the offered category/product universes to the availability diff and marks
document slots held by the base registration as inherited.

Asynchronous results (verify, submit) carry the draft's sequence number from
the moment the call was issued. Any result arriving with a stale sequence is
dropped, so a slow verification can never overwrite a draft the applicant
has already moved past.
*/
package wizard

import (
	"time"

	"github.com/taibuivan/bhugol/internal/core/catalog"
	"github.com/taibuivan/bhugol/internal/core/registry"
)

// Step identifies one wizard screen.
type Step string

const (
	StepIdentityCheck     Step = "identityCheck"
	StepPersonalInfo      Step = "personalInfo"
	StepDocuments         Step = "documents"
	StepCategories        Step = "categories"
	StepExistingProducts  Step = "existingProducts"
	StepProductionDetails Step = "productionDetails"
	StepSubmit            Step = "submit"
	StepDone              Step = "done"
)

// stepOrder is the forward path through the wizard.
var stepOrder = []Step{
	StepIdentityCheck,
	StepPersonalInfo,
	StepDocuments,
	StepCategories,
	StepExistingProducts,
	StepProductionDetails,
	StepSubmit,
	StepDone,
}

// indexOf returns the position of a step on the forward path, or -1.
func indexOf(step Step) int {
	for position, candidate := range stepOrder {
		if candidate == step {
			return position
		}
	}
	return -1
}

// Mode selects between a first-time and a follow-up registration run.
type Mode string

const (
	ModeNew        Mode = "new"
	ModeAdditional Mode = "additional"
)

// Draft is the complete state of one wizard run.
//
// # Immutability
//
// Reducers never mutate a Draft in place; they work on a deep copy and
// return it. Two drafts therefore never share backing maps or slices.
type Draft struct {
	ID       string `json:"id"`
	Step     Step   `json:"step"`
	Mode     Mode   `json:"mode"`
	Sequence uint64 `json:"sequence"`

	// # Identity check (S0)

	AadharNumber string `json:"aadharNumber,omitempty"`
	VoterID      string `json:"voterId,omitempty"`

	Verified     bool `json:"verified"`
	IsRegistered bool `json:"isRegistered"`

	// FirstPriorID is the oldest prior registration's id from the verify
	// result; it becomes BaseRegistrationID when the run forks to additional.
	FirstPriorID       string `json:"firstPriorId,omitempty"`
	BaseRegistrationID string `json:"baseRegistrationId,omitempty"`

	// OfferedCategories/OfferedProducts are the S3/S4 universes fixed by the
	// identity check: the full catalog in new mode, the availability diff in
	// additional mode.
	OfferedCategories []catalog.Category `json:"offeredCategories,omitempty"`
	OfferedProducts   []catalog.Product  `json:"offeredProducts,omitempty"`

	// InheritedSlots marks document slots already held by the base
	// registration (additional mode only).
	InheritedSlots map[string]bool `json:"inheritedSlots,omitempty"`

	// # Collected data (S1–S5)

	PersonalInfo registry.PersonalInfo `json:"personalInfo"`

	// FreshSlots marks document slots the applicant has supplied in this run.
	FreshSlots map[string]bool `json:"freshSlots,omitempty"`

	CategoryIDs        []int `json:"categoryIds,omitempty"`
	ExistingProductIDs []int `json:"existingProductIds,omitempty"`
	SelectedProductIDs []int `json:"selectedProductIds,omitempty"`

	// ProductionDetails is keyed by product id and kept in sync with
	// ExistingProductIDs: entries are created and removed together with the
	// selection, never left orphaned.
	ProductionDetails map[int]registry.ProductionDetail `json:"productionDetails,omitempty"`

	// ConflictingIDs surfaces the ids named by a commit-time catalog
	// conflict so the applicant can correct the selection.
	ConflictingIDs []int `json:"conflictingIds,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDraft returns the initial draft for a fresh wizard run.
func NewDraft(id string, now time.Time) Draft {
	return Draft{
		ID:        id,
		Step:      StepIdentityCheck,
		Mode:      ModeNew,
		UpdatedAt: now,
	}
}

// clone returns a deep copy so reducers never alias the previous value.
func (draft Draft) clone() Draft {
	next := draft

	next.OfferedCategories = append([]catalog.Category(nil), draft.OfferedCategories...)
	next.OfferedProducts = append([]catalog.Product(nil), draft.OfferedProducts...)
	next.CategoryIDs = append([]int(nil), draft.CategoryIDs...)
	next.ExistingProductIDs = append([]int(nil), draft.ExistingProductIDs...)
	next.SelectedProductIDs = append([]int(nil), draft.SelectedProductIDs...)
	next.ConflictingIDs = append([]int(nil), draft.ConflictingIDs...)

	if draft.InheritedSlots != nil {
		next.InheritedSlots = make(map[string]bool, len(draft.InheritedSlots))
		for slot, present := range draft.InheritedSlots {
			next.InheritedSlots[slot] = present
		}
	}
	if draft.FreshSlots != nil {
		next.FreshSlots = make(map[string]bool, len(draft.FreshSlots))
		for slot, present := range draft.FreshSlots {
			next.FreshSlots[slot] = present
		}
	}
	if draft.ProductionDetails != nil {
		next.ProductionDetails = make(map[int]registry.ProductionDetail, len(draft.ProductionDetails))
		for id, detail := range draft.ProductionDetails {
			next.ProductionDetails[id] = detail
		}
	}
	return next
}

// offeredCategorySet collapses the offered categories into an id set.
func (draft Draft) offeredCategorySet() map[int]struct{} {
	set := make(map[int]struct{}, len(draft.OfferedCategories))
	for _, category := range draft.OfferedCategories {
		set[category.ID] = struct{}{}
	}
	return set
}

// offeredProductIndex maps offered product id → owning category id.
func (draft Draft) offeredProductIndex() map[int]int {
	index := make(map[int]int, len(draft.OfferedProducts))
	for _, product := range draft.OfferedProducts {
		index[product.ID] = product.CategoryID
	}
	return index
}

// SlotSatisfied reports whether a document slot is covered, either by a
// fresh upload in this run or by inheritance from the base registration.
func (draft Draft) SlotSatisfied(slot string) bool {
	if draft.FreshSlots[slot] {
		return true
	}
	return draft.Mode == ModeAdditional && draft.InheritedSlots[slot]
}
