package schema

// GIDocumentBundleTable represents the 'gi.documentbundle' table
//
// One row per registration. Columns hold opaque storage references returned
// by the document store — never file bytes. Additional registrations point
// at the same references as their base registration.
type GIDocumentBundleTable struct {
	Table             string
	RegistrationID    string
	AadharCard        string
	PanCard           string
	ProofOfProduction string
	Signature         string
	Photo             string
}

// GIDocumentBundle is the schema definition for gi.documentbundle
var GIDocumentBundle = GIDocumentBundleTable{
	Table:             "gi.documentbundle",
	RegistrationID:    "registrationid",
	AadharCard:        "aadharcard",
	PanCard:           "pancard",
	ProofOfProduction: "proofofproduction",
	Signature:         "signature",
	Photo:             "photo",
}
