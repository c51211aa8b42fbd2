package scheduling

import (
	"context"
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/audit"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/timezone"
)

// TransitionAppointment drives the status state machine: confirm, cancel,
// complete. Each transition is all-or-nothing and leaves an audit note on
// the appointment naming who acted.
type TransitionAppointment struct {
	deps Deps
}

func NewTransitionAppointment(deps Deps) *TransitionAppointment {
	return &TransitionAppointment{deps: deps}
}

type transitionSpec struct {
	apply  func(ap *models.Appointment, actor domain.Actor, now time.Time) error
	action string
	note   string // note text, suffixed with the actor's name
	title  string
}

var transitions = map[string]transitionSpec{
	"confirm": {
		apply:  domain.Confirm,
		action: "appointment_confirmed",
		note:   "Appointment confirmed by ",
		title:  "Appointment confirmed",
	},
	"cancel": {
		apply:  domain.Cancel,
		action: "appointment_cancelled",
		note:   "Appointment cancelled by ",
		title:  "Appointment cancelled",
	},
	"complete": {
		apply:  domain.Complete,
		action: "appointment_completed",
		note:   "Appointment marked as completed by ",
		title:  "Appointment completed",
	},
}

func (uc *TransitionAppointment) Confirm(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.run(ctx, appointmentID, actor, "confirm")
}

func (uc *TransitionAppointment) Cancel(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.run(ctx, appointmentID, actor, "cancel")
}

func (uc *TransitionAppointment) Complete(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.run(ctx, appointmentID, actor, "complete")
}

func (uc *TransitionAppointment) run(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
	name string,
) (*models.Appointment, error) {

	step := transitions[name]

	ap, err := uc.deps.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(ap.Provider.Timezone)
	if err := step.apply(ap, actor, now); err != nil {
		return nil, err
	}

	actorName := uc.actorName(ctx, actor)
	note := &models.AppointmentNote{
		AppointmentID: ap.ID,
		UserID:        actor.UserID,
		Note:          step.note + actorName,
	}
	if err := uc.deps.Repo.UpdateWithNote(ctx, ap, note); err != nil {
		return nil, err
	}

	// cancelling frees the slot for new bookings
	if uc.deps.Cache != nil && domain.Status(ap.Status) == domain.StatusCancelled {
		uc.deps.Cache.Invalidate(ctx, ap.ProviderID)
	}

	uc.deps.dispatchAudit(audit.Event{
		UserID:   &actor.UserID,
		Action:   step.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.deps.dispatchNotify(notify.Event{
		UserIDs:           []uint{ap.ClientID, ap.Provider.UserID},
		Type:              models.NotificationAppointment,
		Title:             step.title,
		Content:           step.note + actorName,
		RelatedObjectID:   &ap.ID,
		RelatedObjectType: "appointment",
	})

	return ap, nil
}

func (uc *TransitionAppointment) actorName(ctx context.Context, actor domain.Actor) string {
	user, err := uc.deps.Repo.GetUser(ctx, actor.UserID)
	if err != nil {
		return "unknown user"
	}
	return user.Name
}
