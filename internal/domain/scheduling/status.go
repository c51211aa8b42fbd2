package scheduling

import (
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	// StatusRescheduled is declared for API compatibility; a reschedule
	// returns the appointment to REQUESTED.
	StatusRescheduled Status = "RESCHEDULED"
)

func InitialStatus() Status {
	return StatusRequested
}

// Terminal reports whether no transition leaves the status.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Actor
// ===============================

// Actor is the authenticated party attempting a transition, as resolved at
// the HTTP boundary. ProviderID is zero for non-providers.
type Actor struct {
	UserID     uint
	ProviderID uint
	Role       models.Role
}

func (a Actor) ownsAsProvider(ap *models.Appointment) bool {
	return a.Role == models.RoleProvider && a.ProviderID == ap.ProviderID
}

func (a Actor) ownsAsClient(ap *models.Appointment) bool {
	return a.UserID == ap.ClientID
}

// Party reports whether the actor is one of the two sides of the appointment.
func (a Actor) Party(ap *models.Appointment) bool {
	return a.ownsAsClient(ap) || a.ownsAsProvider(ap)
}

// ===============================
// Transitions
// ===============================

// Confirm moves REQUESTED to CONFIRMED. Only the owning provider may
// confirm; anyone else gets forbidden, a wrong state gets
// invalid_transition. The appointment is left untouched on failure.
func Confirm(ap *models.Appointment, actor Actor, now time.Time) error {
	if !actor.ownsAsProvider(ap) {
		return httperr.ErrBusiness("forbidden")
	}
	if Status(ap.Status) != StatusRequested {
		return httperr.ErrBusiness("invalid_transition")
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

// Cancel moves REQUESTED or CONFIRMED to CANCELLED. Either party may cancel.
func Cancel(ap *models.Appointment, actor Actor, now time.Time) error {
	if !actor.Party(ap) {
		return httperr.ErrBusiness("forbidden")
	}
	switch Status(ap.Status) {
	case StatusRequested, StatusConfirmed:
	default:
		return httperr.ErrBusiness("invalid_transition")
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete moves CONFIRMED to COMPLETED. Only the owning provider.
func Complete(ap *models.Appointment, actor Actor, now time.Time) error {
	if !actor.ownsAsProvider(ap) {
		return httperr.ErrBusiness("forbidden")
	}
	if Status(ap.Status) != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CanReschedule gates a reschedule attempt; the new slot must then pass the
// conflict check before anything is written.
func CanReschedule(ap *models.Appointment, actor Actor) error {
	if !actor.Party(ap) {
		return httperr.ErrBusiness("forbidden")
	}
	switch Status(ap.Status) {
	case StatusRequested, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness("invalid_transition")
}
