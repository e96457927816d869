package model

// Technician represents a person qualified to perform maintenance tasks.
type Technician struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Active    bool   `json:"active"`
}
