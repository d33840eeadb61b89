package schema

// GIRegistrationTable represents the 'gi.registration' table
type GIRegistrationTable struct {
	Table              string
	ID                 string
	AadharNumber       string
	VoterID            string
	Name               string
	Address            string
	Age                string
	Gender             string
	Phone              string
	BaseRegistrationID string
	ReusedFiles        string
	CreatedAt          string
}

// GIRegistration is the schema definition for gi.registration
var GIRegistration = GIRegistrationTable{
	Table:              "gi.registration",
	ID:                 "id",
	AadharNumber:       "aadharnumber",
	VoterID:            "voterid",
	Name:               "name",
	Address:            "address",
	Age:                "age",
	Gender:             "gender",
	Phone:              "phone",
	BaseRegistrationID: "baseregistrationid",
	ReusedFiles:        "reusedfiles",
	CreatedAt:          "createdat",
}

func (t GIRegistrationTable) Columns() []string {
	return []string{
		t.ID, t.AadharNumber, t.VoterID, t.Name, t.Address, t.Age,
		t.Gender, t.Phone, t.BaseRegistrationID, t.ReusedFiles, t.CreatedAt,
	}
}
