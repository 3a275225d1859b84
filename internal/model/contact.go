package model

// ContactRequest is the body for the contact-form passthrough.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
