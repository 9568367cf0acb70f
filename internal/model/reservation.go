package model

import "time"

// Reservation is a customer's booking for a print-shop service at a
// scheduled time. Editor and ServiceType hold the editor's full name and the
// service name as plain strings; they are not foreign keys.
//
// Fields:
//
//	ID          – client or server generated 13 digit identifier.
//	FirstName   – customer first name.
//	MiddleName  – customer middle name.
//	LastName    – customer last name.
//	ServiceType – name of the booked service.
//	Schedule    – appointment time, UTC.
//	Description – free text from the customer.
//	Editor      – full name of the assigned editor.
//	Status      – empty until staff set it; empty reads as Pending.
type Reservation struct {
	ID          string    `json:"reservation_id"`   // reservations.reservation_id
	FirstName   string    `json:"firstName"`        // reservations.first_name
	MiddleName  string    `json:"middleName"`       // reservations.middle_name
	LastName    string    `json:"lastName"`         // reservations.last_name
	ServiceType string    `json:"serviceType"`      // reservations.service_type
	Schedule    time.Time `json:"schedule"`         // reservations.schedule
	Description string    `json:"description"`      // reservations.description
	Editor      string    `json:"editor"`           // reservations.editor
	Status      Status    `json:"status,omitempty"` // reservations.status (nullable)
}

// EffectiveStatus returns the stored status, or StatusPending when none has
// been written yet.
func (r Reservation) EffectiveStatus() Status {
	if r.Status == "" {
		return StatusPending
	}
	return r.Status
}
