// Package queue defines message payloads exchanged over the message broker.
package queue

// QueueName is the durable queue reservation lifecycle events go to.
const QueueName = "reservation.events"

// Event types published on QueueName.
const (
	EventCreated       = "reservation.created"
	EventStatusChanged = "reservation.status_changed"
	EventDeleted       = "reservation.deleted"
)

// ReservationEvent is published after a reservation is created, changes
// status or is deleted. Status is empty for created and deleted events.
type ReservationEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
