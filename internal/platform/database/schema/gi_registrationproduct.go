package schema

// GIRegistrationProductTable represents the 'gi.registrationproduct' junction table
//
// Kind distinguishes products the applicant already produces ("existing")
// from products selected for future production ("selected").
type GIRegistrationProductTable struct {
	Table          string
	RegistrationID string
	ProductID      string
	Kind           string
}

// GIRegistrationProduct is the schema definition for gi.registrationproduct
var GIRegistrationProduct = GIRegistrationProductTable{
	Table:          "gi.registrationproduct",
	RegistrationID: "registrationid",
	ProductID:      "productid",
	Kind:           "kind",
}
