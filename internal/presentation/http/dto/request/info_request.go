package request

// UpdateInfoRequest is the request body for the café profile. The first PUT
// creates the singleton, later PUTs replace it.
type UpdateInfoRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	GSTNumber    string `json:"gst_number"`
	Logo         string `json:"logo"`
	Website      string `json:"website"`
	Email        string `json:"email" binding:"omitempty,email"`
	OpeningHours string `json:"opening_hours"`
}
