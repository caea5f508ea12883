package booking

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid actor role")

type Role string

const (
	RoleGuest  Role = "guest"
	RoleHost   Role = "host"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is the authenticated party attempting a lifecycle transition.
// Role dispatch lives here as an explicit capability check instead of being
// spread across call sites.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var SystemActor = Actor{ID: uuid.Nil, Role: RoleSystem}

// CanTransition answers whether the actor may request the target state for
// the booking. It is a capability check only; whether the transition is
// legal from the current state is the entity's own guard.
func (a Actor) CanTransition(b *Booking, target Status) bool {
	switch a.Role {
	case RoleAdmin, RoleSystem:
		return true
	case RoleHost:
		// Hosts run the front desk, so every target is role-allowed. The
		// entity does not know the listing, so whether the booking belongs
		// to one of the actor's listings is checked by the use case.
		switch target {
		case StatusConfirmed, StatusRejected, StatusCancelled,
			StatusCheckedIn, StatusCheckedOut, StatusCompleted, StatusNoShow:
			return true
		}
		return false
	case RoleGuest:
		// Guests may only cancel their own booking.
		return target == StatusCancelled && b.GuestID() == a.ID
	default:
		return false
	}
}
