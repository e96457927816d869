package model

// Location represents a physical site where equipment is installed.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
