package model

// User is the identity attached to a request. It is materialized from the
// claims of an externally issued token; there is no users table.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
