package schema

// GIProductionDetailTable represents the 'gi.productiondetail' table
type GIProductionDetailTable struct {
	Table             string
	RegistrationID    string
	ProductID         string
	Quantity          string
	Unit              string
	Area              string
	YearsOfProduction string
	Turnover          string
	TurnoverUnit      string
	Notes             string
}

// GIProductionDetail is the schema definition for gi.productiondetail
var GIProductionDetail = GIProductionDetailTable{
	Table:             "gi.productiondetail",
	RegistrationID:    "registrationid",
	ProductID:         "productid",
	Quantity:          "quantity",
	Unit:              "unit",
	Area:              "area",
	YearsOfProduction: "yearsofproduction",
	Turnover:          "turnover",
	TurnoverUnit:      "turnoverunit",
	Notes:             "notes",
}
