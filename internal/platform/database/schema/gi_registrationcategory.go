package schema

// GIRegistrationCategoryTable represents the 'gi.registrationcategory' junction table
type GIRegistrationCategoryTable struct {
	Table          string
	RegistrationID string
	CategoryID     string
}

// GIRegistrationCategory is the schema definition for gi.registrationcategory
var GIRegistrationCategory = GIRegistrationCategoryTable{
	Table:          "gi.registrationcategory",
	RegistrationID: "registrationid",
	CategoryID:     "categoryid",
}
