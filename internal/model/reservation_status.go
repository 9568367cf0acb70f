package model

import "fmt"

// Status is the lifecycle state of a reservation. A reservation created by a
// customer carries no stored status until staff act on it; that absent value
// reads as StatusPending.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusDone      Status = "Done"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus converts a raw status string into a Status. Matching is exact.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusDone, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// allowedTransitions lists the moves staff can make from each state. It is
// only consulted when strict transitions are switched on.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusApproved: true},
	StatusApproved:  {StatusDone: true, StatusCancelled: true},
	StatusCancelled: {StatusApproved: true}, // re-approval of a cancelled booking
	StatusDone:      {},
}

// CanTransition reports whether from -> to is an allowed move. Writing the
// same state again is always allowed.
func CanTransition(from, to Status) bool {
	if from == "" {
		from = StatusPending
	}
	if from == to {
		return true
	}
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// IsLive reports whether a reservation in this state is still usable by the
// customer, i.e. Pending or Approved.
func (s Status) IsLive() bool {
	return s == "" || s == StatusPending || s == StatusApproved
}
