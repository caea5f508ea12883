package booking

import (
	"fmt"

	"stayhub/internal/pkg/errs"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusNoShow     Status = "no_show"
	StatusCompleted  Status = "completed"
)

var ErrInvalidTransition = errs.New("invalid booking transition")

// allowedTransitions is the single source of truth for the lifecycle.
// Every status check elsewhere must go through CanTransitionTo.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut: {StatusCompleted},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled,
		StatusCheckedIn, StatusCheckedOut, StatusNoShow, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && s.IsValid()
}

// Occupying reports whether a booking in this status still holds its dates.
// Rejected, cancelled and no-show bookings release the calendar.
func (s Status) Occupying() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NewStatus parses a persisted status string.
func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.New(fmt.Sprintf("unknown booking status %q", s))
	}
	return st, nil
}

// invalidTransition builds an error naming both sides of the refused move so
// race losers and misuse are distinguishable in logs.
func invalidTransition(from, to Status) error {
	return errs.Mark(fmt.Errorf("transition %s -> %s not permitted", from, to), ErrInvalidTransition)
}
