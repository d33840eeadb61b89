// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	"github.com/taibuivan/bhugol/internal/core/registry"
	"github.com/taibuivan/bhugol/internal/core/verification"
)

// ActionType discriminates wizard actions.
type ActionType string

const (
	// Navigation.
	ActionNext     ActionType = "next"
	ActionPrevious ActionType = "previous"

	// Data entry, gated to the step it belongs to.
	ActionSetIdentity         ActionType = "setIdentity"
	ActionChooseMode          ActionType = "chooseMode"
	ActionSetPersonalInfo     ActionType = "setPersonalInfo"
	ActionSetDocument         ActionType = "setDocument"
	ActionSetCategories       ActionType = "setCategories"
	ActionSetExistingProducts ActionType = "setExistingProducts"
	ActionSetSelectedProducts ActionType = "setSelectedProducts"
	ActionSetProductionDetail ActionType = "setProductionDetail"

	// Asynchronous results, applied by the service with a sequence token.
	ActionVerifyResult ActionType = "verifyResult"
	ActionSubmitResult ActionType = "submitResult"
)

// SubmitOutcome classifies what the registration builder answered.
type SubmitOutcome string

const (
	SubmitSucceeded         SubmitOutcome = "succeeded"
	SubmitDuplicateIdentity SubmitOutcome = "duplicateIdentity"
	SubmitCatalogConflict   SubmitOutcome = "catalogConflict"
)

// Action is one wizard input. Exactly the fields relevant to its Type are
// populated; the rest stay at their zero values.
type Action struct {
	Type ActionType `json:"type"`

	// setIdentity
	AadharNumber string `json:"aadharNumber,omitempty"`
	VoterID      string `json:"voterId,omitempty"`

	// chooseMode
	Additional bool `json:"additional,omitempty"`

	// setPersonalInfo
	PersonalInfo *registry.PersonalInfo `json:"personalInfo,omitempty"`

	// setDocument
	Slot    string `json:"slot,omitempty"`
	Present bool   `json:"present,omitempty"`

	// setCategories / setExistingProducts / setSelectedProducts
	IDs []int `json:"ids,omitempty"`

	// setProductionDetail
	Detail *registry.ProductionDetail `json:"detail,omitempty"`

	// verifyResult / submitResult: the draft sequence captured when the
	// asynchronous call was issued. A mismatch drops the result.
	Sequence uint64 `json:"sequence,omitempty"`

	// verifyResult
	VerifyResult *verification.Result `json:"verifyResult,omitempty"`

	// submitResult
	Outcome        SubmitOutcome `json:"outcome,omitempty"`
	ConflictKind   string        `json:"conflictKind,omitempty"`
	ConflictingIDs []int         `json:"conflictingIds,omitempty"`
}
