package registry

import (
	"time"
)

// PersonalInfo is the applicant profile captured during intake.
type PersonalInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Phone   string `json:"phone"`
}

// ProductionDetail holds per-product production data for one registration.
type ProductionDetail struct {
	ProductID         int     `json:"productId"`
	ProductName       string  `json:"productName,omitempty"`
	Quantity          float64 `json:"annualProduction"`
	Unit              string  `json:"unit"`
	Area              float64 `json:"areaOfProduction"`
	YearsOfProduction int     `json:"yearsOfProduction"`
	Turnover          float64 `json:"annualTurnover"`
	TurnoverUnit      string  `json:"turnoverUnit"`
	Notes             string  `json:"additionalNotes,omitempty"`
}

// IsComplete reports whether all mandatory production fields are populated.
// Notes are optional.
func (detail ProductionDetail) IsComplete() bool {
	return detail.Quantity > 0 &&
		detail.Unit != "" &&
		detail.Area > 0 &&
		detail.YearsOfProduction > 0 &&
		detail.Turnover > 0 &&
		detail.TurnoverUnit != ""
}

// DocumentBundleRef holds opaque storage references for the five document
// slots. An empty string means the slot is absent. For additional
// registrations these are reference copies of the base bundle — never new
// bytes.
type DocumentBundleRef struct {
	AadharCard        string `json:"aadharCard,omitempty"`
	PanCard           string `json:"panCard,omitempty"`
	ProofOfProduction string `json:"proofOfProduction,omitempty"`
	Signature         string `json:"signature,omitempty"`
	Photo             string `json:"photo,omitempty"`
}

// HasMandatory reports whether the three mandatory slots resolve to a
// present reference (aadharCard, signature, photo).
func (bundle DocumentBundleRef) HasMandatory() bool {
	return bundle.AadharCard != "" && bundle.Signature != "" && bundle.Photo != ""
}

// Slots returns the bundle as a slot-name → reference map, omitting empty slots.
func (bundle DocumentBundleRef) Slots() map[string]string {
	slots := make(map[string]string, 5)
	if bundle.AadharCard != "" {
		slots["aadharCard"] = bundle.AadharCard
	}
	if bundle.PanCard != "" {
		slots["panCard"] = bundle.PanCard
	}
	if bundle.ProofOfProduction != "" {
		slots["proofOfProduction"] = bundle.ProofOfProduction
	}
	if bundle.Signature != "" {
		slots["signature"] = bundle.Signature
	}
	if bundle.Photo != "" {
		slots["photo"] = bundle.Photo
	}
	return slots
}

// Registration is one committed enrollment claiming a set of categories and
// products for one identity.
//
// # Immutability
//
// A registration is created atomically at submission time and never modified
// afterwards. Corrections happen through program-office workflows outside
// this service.
type Registration struct {
	ID           string       `json:"id"`
	Identity     Identity     `json:"identity"`
	PersonalInfo PersonalInfo `json:"personalInfo"`

	CategoryIDs []int `json:"categoryIds"`

	// ExistingProductIDs are products the applicant already produces;
	// SelectedProductIDs are products chosen for future production.
	// The claimed product set is the union of the two.
	ExistingProductIDs []int `json:"existingProductIds"`
	SelectedProductIDs []int `json:"selectedProductIds"`

	ProductionDetails []ProductionDetail `json:"productionDetails"`
	Documents         DocumentBundleRef  `json:"documents"`

	// BaseRegistrationID links an additional registration to the prior
	// registration whose documents it reuses. Empty for a first registration.
	BaseRegistrationID string `json:"baseRegistrationId,omitempty"`
	ReusedFiles        bool   `json:"reusedFiles,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ProductIDs returns the full claimed product set (existing ∪ selected),
// preserving order and dropping duplicates.
func (registration Registration) ProductIDs() []int {
	seen := make(map[int]struct{}, len(registration.ExistingProductIDs)+len(registration.SelectedProductIDs))
	ids := make([]int, 0, len(registration.ExistingProductIDs)+len(registration.SelectedProductIDs))
	for _, id := range registration.ExistingProductIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range registration.SelectedProductIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
