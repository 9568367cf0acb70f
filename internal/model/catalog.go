package model

// Editor is a staff member who can be assigned to a reservation.
type Editor struct {
	ID       uint64 `json:"editor_id"` // editors.id
	FullName string `json:"fullName"`  // editors.full_name
	Contact  string `json:"contact"`   // editors.contact
	Address  string `json:"address"`   // editors.address
}

// Service is a bookable catalog entry.
type Service struct {
	ID   uint64 `json:"service_id"`  // services.id
	Name string `json:"serviceName"` // services.name
}
