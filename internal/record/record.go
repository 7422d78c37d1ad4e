package record

// Record is one contact entry submitted through the form or a spreadsheet row.
// ID is assigned by the store on first save.
type Record struct {
	ID               string `json:"id" form:"-" bson:"_id,omitempty"`
	FirstName        string `json:"firstName" form:"firstName" bson:"firstName"`
	LastName         string `json:"lastName" form:"lastName" bson:"lastName"`
	PhoneNumber      string `json:"phoneNumber" form:"phoneNumber" bson:"phoneNumber"`
	Email            string `json:"email" form:"email" bson:"email"`
	AdditionalFields string `json:"additionalFields" form:"additionalFields" bson:"additionalFields"`
}
