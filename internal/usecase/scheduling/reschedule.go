package scheduling

import (
	"context"
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/audit"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
)

type RescheduleInput struct {
	AppointmentID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:mm
	EndTime   string // HH:mm
}

// RescheduleAppointment moves a REQUESTED or CONFIRMED appointment to a new
// slot, re-running the full conflict check with the appointment excluded
// from the overlap scan. The result always returns to REQUESTED so the
// provider re-confirms the new time.
type RescheduleAppointment struct {
	deps    Deps
	checker *SlotChecker
}

func NewRescheduleAppointment(deps Deps) *RescheduleAppointment {
	return &RescheduleAppointment{
		deps:    deps,
		checker: NewSlotChecker(deps.Repo),
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
	actor domain.Actor,
) (*models.Appointment, error) {

	ap, err := uc.deps.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(ap, actor); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = domain.DateOnly(date)

	startMin, endMin, err := domain.ParseClockRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	query := SlotQuery{
		ProviderID:           ap.ProviderID,
		ServiceCategoryID:    ap.ServiceCategoryID,
		Date:                 date,
		StartMin:             startMin,
		EndMin:               endMin,
		ExcludeAppointmentID: ap.ID,
	}
	if err := uc.checker.CheckBookable(ctx, query); err != nil {
		return nil, err
	}

	ap.AppointmentDate = date
	ap.StartTime = in.StartTime
	ap.EndTime = in.EndTime
	ap.Status = string(domain.StatusRequested)
	ap.ConfirmedAt = nil

	actorName := "unknown user"
	if user, err := uc.deps.Repo.GetUser(ctx, actor.UserID); err == nil {
		actorName = user.Name
	}
	note := &models.AppointmentNote{
		AppointmentID: ap.ID,
		UserID:        actor.UserID,
		Note:          "Appointment rescheduled by " + actorName + " to " + in.Date + " " + in.StartTime,
	}

	if err := uc.deps.Repo.SaveChecked(ctx, ap, note, OverlapGuard(startMin, endMin)); err != nil {
		return nil, err
	}

	if uc.deps.Cache != nil {
		uc.deps.Cache.Invalidate(ctx, ap.ProviderID)
	}

	uc.deps.dispatchAudit(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.deps.dispatchNotify(notify.Event{
		UserIDs:           []uint{ap.ClientID, ap.Provider.UserID},
		Type:              models.NotificationAppointment,
		Title:             "Appointment rescheduled",
		Content:           note.Note,
		RelatedObjectID:   &ap.ID,
		RelatedObjectType: "appointment",
	})

	return ap, nil
}
